package compilation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/utils"
)

type memRepo struct {
	comps  map[uint]*Compilation
	nextID uint
}

func (m *memRepo) Create(_ context.Context, c *Compilation) error {
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.comps[c.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uint) (*Compilation, error) {
	c, ok := m.comps[id]
	if !ok {
		return nil, apierror.NotFound("Compilation with id=%d was not found", id)
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) Update(_ context.Context, c *Compilation, replaceEvents bool) error {
	stored := m.comps[c.ID]
	stored.Title, stored.Pinned = c.Title, c.Pinned
	if replaceEvents {
		stored.Events = c.Events
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.comps[id]; !ok {
		return apierror.NotFound("Compilation with id=%d was not found", id)
	}
	delete(m.comps, id)
	return nil
}

func (m *memRepo) List(_ context.Context, pinned *bool, _, _ int) ([]Compilation, error) {
	var out []Compilation
	for id := uint(1); id <= m.nextID; id++ {
		c, ok := m.comps[id]
		if !ok || (pinned != nil && c.Pinned != *pinned) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

type fakeEvents map[uint]event.Event

func (f fakeEvents) ListByIDs(_ context.Context, ids []uint) ([]event.Event, error) {
	var out []event.Event
	for _, id := range ids {
		e, ok := f[id]
		if !ok {
			return nil, apierror.NotFound("Event with id=%d was not found", id)
		}
		out = append(out, e)
	}
	return out, nil
}

func (f fakeEvents) ShortDtos(_ context.Context, events []event.Event) ([]event.EventShortDto, error) {
	out := make([]event.EventShortDto, 0, len(events))
	for _, e := range events {
		out = append(out, event.ToShortDto(e))
	}
	return out, nil
}

func newService() (*Service, *memRepo) {
	repo := &memRepo{comps: map[uint]*Compilation{}}
	events := fakeEvents{1: {ID: 1, Title: "One"}, 2: {ID: 2, Title: "Two"}}
	return NewService(repo, events, zap.NewNop()), repo
}

func TestCreateCompilation(t *testing.T) {
	svc, _ := newService()
	pinned := true

	dto, err := svc.Create(context.Background(), NewCompilationRequest{Title: " Summer ", Pinned: &pinned, Events: []uint{1, 2}})

	require.NoError(t, err)
	require.Equal(t, "Summer", dto.Title)
	require.True(t, dto.Pinned)
	require.Len(t, dto.Events, 2)
}

func TestCreateCompilationUnknownEvent(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Create(context.Background(), NewCompilationRequest{Title: "x", Events: []uint{1, 9}})

	require.ErrorIs(t, err, apierror.ErrNotFound)
	require.Empty(t, repo.comps)
}

func TestUpdateCompilationKeepsEventsWhenOmitted(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	dto, err := svc.Create(ctx, NewCompilationRequest{Title: "x", Events: []uint{1}})
	require.NoError(t, err)

	title := "renamed"
	updated, err := svc.Update(ctx, dto.ID, UpdateCompilationRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)
	require.Len(t, updated.Events, 1)

	cleared, err := svc.Update(ctx, dto.ID, UpdateCompilationRequest{Events: []uint{}})
	require.NoError(t, err)
	require.Empty(t, cleared.Events)
}

func TestListCompilationsPinnedFilter(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	yes, no := true, false
	_, err := svc.Create(ctx, NewCompilationRequest{Title: "a", Pinned: &yes})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewCompilationRequest{Title: "b", Pinned: &no})
	require.NoError(t, err)

	pinned, err := svc.List(ctx, &yes, utils.Page{Size: 10})
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	require.Equal(t, "a", pinned[0].Title)

	all, err := svc.List(ctx, nil, utils.Page{Size: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.ErrorIs(t, svc.Delete(ctx, 99), apierror.ErrNotFound)
}
