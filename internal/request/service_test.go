package request

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/auditlog"
	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/user"
)

// memRepo serializes WithEventLock on a single mutex, mirroring the row lock.
type memRepo struct {
	mu     sync.Mutex
	events map[uint]*event.Event
	reqs   map[uint]*Request
	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{events: map[uint]*event.Event{}, reqs: map[uint]*Request{}}
}

func (m *memRepo) Create(_ context.Context, r *Request) error {
	m.nextID++
	r.ID = m.nextID
	cp := *r
	m.reqs[r.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uint) (*Request, error) {
	r, ok := m.reqs[id]
	if !ok {
		return nil, apierror.NotFound("Request with id=%d was not found", id)
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) Save(_ context.Context, r *Request) error {
	cp := *r
	m.reqs[r.ID] = &cp
	return nil
}

func (m *memRepo) SaveAll(ctx context.Context, reqs []Request) error {
	for i := range reqs {
		_ = m.Save(ctx, &reqs[i])
	}
	return nil
}

func (m *memRepo) list(keep func(*Request) bool) []Request {
	var out []Request
	for id := uint(1); id <= m.nextID; id++ {
		if r, ok := m.reqs[id]; ok && keep(r) {
			out = append(out, *r)
		}
	}
	return out
}

func (m *memRepo) ListByRequester(_ context.Context, requesterID uint) ([]Request, error) {
	return m.list(func(r *Request) bool { return r.RequesterID == requesterID }), nil
}

func (m *memRepo) ListByEvent(_ context.Context, eventID uint) ([]Request, error) {
	return m.list(func(r *Request) bool { return r.EventID == eventID }), nil
}

func (m *memRepo) ListByIDs(_ context.Context, ids []uint) ([]Request, error) {
	want := map[uint]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return m.list(func(r *Request) bool { return want[r.ID] }), nil
}

func (m *memRepo) HasActive(_ context.Context, requesterID, eventID uint) (bool, error) {
	found := m.list(func(r *Request) bool {
		return r.RequesterID == requesterID && r.EventID == eventID && r.Status != StatusCanceled
	})
	return len(found) > 0, nil
}

func (m *memRepo) CountConfirmed(_ context.Context, eventID uint) (int64, error) {
	found := m.list(func(r *Request) bool { return r.EventID == eventID && r.Status == StatusConfirmed })
	return int64(len(found)), nil
}

func (m *memRepo) WithEventLock(_ context.Context, eventID uint, fn func(tx Repository, e *event.Event) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[eventID]
	if !ok {
		return apierror.NotFound("Event with id=%d was not found", eventID)
	}
	cp := *e
	return fn(m, &cp)
}

func (m *memRepo) GetEvent(_ context.Context, id uint) (*event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, apierror.NotFound("Event with id=%d was not found", id)
	}
	cp := *e
	return &cp, nil
}

type eventsView struct{ repo *memRepo }

func (v eventsView) GetByID(ctx context.Context, id uint) (*event.Event, error) {
	return v.repo.GetEvent(ctx, id)
}

type fakeUsers struct{}

func (fakeUsers) GetByID(_ context.Context, id uint) (*user.User, error) {
	if id > 10 {
		return nil, apierror.NotFound("User with id=%d was not found", id)
	}
	return &user.User{ID: id}, nil
}

const initiator = uint(1)

func newService(repo *memRepo) *Service {
	svc := NewService(repo, eventsView{repo}, fakeUsers{}, auditlog.Nop{}, zap.NewNop())
	svc.Clock = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func addEvent(repo *memRepo, id uint, limit int, moderation bool, state event.State) {
	repo.events[id] = &event.Event{
		ID:                id,
		InitiatorID:       initiator,
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		State:             state,
	}
}

func TestCreateRequestPreconditions(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 0, true, event.StatePublished)
	addEvent(repo, 2, 0, true, event.StatePending)
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, initiator, 1)
	require.ErrorIs(t, err, apierror.ErrConflict)

	_, err = svc.Create(ctx, 2, 2)
	require.ErrorIs(t, err, apierror.ErrConflict)

	_, err = svc.Create(ctx, 2, 99)
	require.ErrorIs(t, err, apierror.ErrNotFound)

	_, err = svc.Create(ctx, 42, 1)
	require.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestCreateRequestAutoConfirmsWithoutLimit(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 0, true, event.StatePublished)
	svc := newService(repo)

	dto, err := svc.Create(context.Background(), 2, 1)

	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, dto.Status)
}

func TestDuplicateRequestUntilCanceled(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 5, true, event.StatePublished)
	svc := newService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, 2, 1)
	require.NoError(t, err)
	require.Equal(t, StatusPending, first.Status)

	_, err = svc.Create(ctx, 2, 1)
	require.ErrorIs(t, err, apierror.ErrConflict)

	_, err = svc.Cancel(ctx, 3, first.ID)
	require.ErrorIs(t, err, apierror.ErrConflict)

	canceled, err := svc.Cancel(ctx, 2, first.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCanceled, canceled.Status)

	second, err := svc.Create(ctx, 2, 1)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestRejectedRequestCannotBeCanceled(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 5, true, event.StatePublished)
	svc := newService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, 2, 1)
	require.NoError(t, err)
	_, err = svc.UpdateStatuses(ctx, initiator, 1, EventRequestStatusUpdateRequest{
		RequestIds: []uint{first.ID},
		Status:     StatusRejected,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, 2, first.ID)
	require.ErrorIs(t, err, apierror.ErrConflict)
	require.Equal(t, StatusRejected, repo.reqs[first.ID].Status)

	_, err = svc.Create(ctx, 2, 1)
	require.ErrorIs(t, err, apierror.ErrConflict)
}

func TestLimitReachedWithoutModeration(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 1, false, event.StatePublished)
	svc := newService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, 2, 1)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, first.Status)

	_, err = svc.Create(ctx, 3, 1)
	require.ErrorIs(t, err, apierror.ErrConflict)
}

func TestBulkConfirmRejectsOverflow(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 1, true, event.StatePublished)
	svc := newService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, 2, 1)
	require.NoError(t, err)
	b, err := svc.Create(ctx, 3, 1)
	require.NoError(t, err)
	require.Equal(t, StatusPending, b.Status)

	result, err := svc.UpdateStatuses(ctx, initiator, 1, EventRequestStatusUpdateRequest{
		RequestIds: []uint{a.ID, b.ID, a.ID},
		Status:     StatusConfirmed,
	})
	require.NoError(t, err)
	require.Len(t, result.ConfirmedRequests, 1)
	require.Equal(t, a.ID, result.ConfirmedRequests[0].ID)
	require.Len(t, result.RejectedRequests, 1)
	require.Equal(t, b.ID, result.RejectedRequests[0].ID)
	require.Equal(t, StatusRejected, repo.reqs[b.ID].Status)

	c, err := svc.Create(ctx, 4, 1)
	require.ErrorIs(t, err, apierror.ErrConflict)
	require.Nil(t, c)
}

func TestBulkConfirmWhenFull(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 1, true, event.StatePublished)
	repo.reqs[1] = &Request{ID: 1, EventID: 1, RequesterID: 2, Status: StatusConfirmed}
	repo.reqs[2] = &Request{ID: 2, EventID: 1, RequesterID: 3, Status: StatusPending}
	repo.nextID = 2
	svc := newService(repo)

	_, err := svc.UpdateStatuses(context.Background(), initiator, 1, EventRequestStatusUpdateRequest{
		RequestIds: []uint{2},
		Status:     StatusConfirmed,
	})

	require.ErrorIs(t, err, apierror.ErrConflict)
	require.Equal(t, StatusPending, repo.reqs[2].Status)
}

func TestRejectConfirmedConflicts(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 3, true, event.StatePublished)
	repo.reqs[1] = &Request{ID: 1, EventID: 1, RequesterID: 2, Status: StatusConfirmed}
	repo.reqs[2] = &Request{ID: 2, EventID: 1, RequesterID: 3, Status: StatusPending}
	repo.nextID = 2
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.UpdateStatuses(ctx, initiator, 1, EventRequestStatusUpdateRequest{
		RequestIds: []uint{2, 1},
		Status:     StatusRejected,
	})
	require.ErrorIs(t, err, apierror.ErrConflict)
	require.Equal(t, StatusPending, repo.reqs[2].Status)

	result, err := svc.UpdateStatuses(ctx, initiator, 1, EventRequestStatusUpdateRequest{
		RequestIds: []uint{2},
		Status:     StatusRejected,
	})
	require.NoError(t, err)
	require.Empty(t, result.ConfirmedRequests)
	require.Len(t, result.RejectedRequests, 1)
}

func TestBulkUpdateOwnershipAndMembership(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 3, true, event.StatePublished)
	addEvent(repo, 2, 3, true, event.StatePublished)
	repo.reqs[1] = &Request{ID: 1, EventID: 2, RequesterID: 3, Status: StatusPending}
	repo.nextID = 1
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.UpdateStatuses(ctx, 5, 1, EventRequestStatusUpdateRequest{RequestIds: []uint{1}, Status: StatusConfirmed})
	require.ErrorIs(t, err, apierror.ErrConflict)

	_, err = svc.UpdateStatuses(ctx, initiator, 1, EventRequestStatusUpdateRequest{RequestIds: []uint{1}, Status: StatusConfirmed})
	require.ErrorIs(t, err, apierror.ErrNotFound)

	_, err = svc.UpdateStatuses(ctx, initiator, 1, EventRequestStatusUpdateRequest{RequestIds: []uint{1}, Status: StatusCanceled})
	require.ErrorIs(t, err, apierror.ErrValidation)
}

func TestConcurrentCreatesRespectLimit(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 3, false, event.StatePublished)
	svc := newService(repo)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for u := uint(2); u <= 9; u++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), userID, 1)
			errs <- err
		}(u)
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, apierror.ErrConflict)
		conflicts++
	}
	require.Equal(t, 3, ok)
	require.Equal(t, 5, conflicts)
}

func TestListByEventHidesForeignEvents(t *testing.T) {
	repo := newMemRepo()
	addEvent(repo, 1, 0, true, event.StatePublished)
	svc := newService(repo)

	_, err := svc.ListByEvent(context.Background(), 4, 1)
	require.ErrorIs(t, err, apierror.ErrNotFound)

	list, err := svc.ListByEvent(context.Background(), initiator, 1)
	require.NoError(t, err)
	require.Empty(t, list)
}
