package request

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/auditlog"
	"github.com/sharath018/ewm-backend/internal/category"
	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/user"
)

var repoNow = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&user.User{}, &category.Category{}, &event.Event{}, &Request{}))

	for id, name := range map[uint]string{1: "ann", 2: "bob", 3: "cat", 4: "dan"} {
		require.NoError(t, db.Create(&user.User{ID: id, Name: name, Email: name + "@example.com"}).Error)
	}
	require.NoError(t, db.Create(&category.Category{ID: 1, Name: "Concerts"}).Error)
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, limit int, moderation bool) uint {
	t.Helper()
	e := &event.Event{
		Title:             "Open air",
		Annotation:        "An annotation long enough to pass",
		Description:       "A description long enough to pass",
		CategoryID:        1,
		InitiatorID:       initiator,
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		State:             event.StatePublished,
		CreatedOn:         repoNow,
		EventDate:         repoNow.Add(48 * time.Hour),
	}
	require.NoError(t, db.Omit("Category", "Initiator").Create(e).Error)
	return e.ID
}

func newDBService(db *gorm.DB) *Service {
	svc := NewService(NewRepository(db), event.NewRepository(db), user.NewRepository(db), auditlog.Nop{}, zap.NewNop())
	svc.Clock = func() time.Time { return repoNow }
	return svc
}

func TestRepositoryActiveIndexAllowsRequestAfterCancel(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db, 5, true)

	first := &Request{Created: repoNow, EventID: eventID, RequesterID: 2, Status: StatusPending}
	require.NoError(t, repo.Create(ctx, first))

	// the unique index holds even when the service check is bypassed
	dup := &Request{Created: repoNow, EventID: eventID, RequesterID: 2, Status: StatusPending}
	require.ErrorIs(t, repo.Create(ctx, dup), apierror.ErrConflict)

	active, err := repo.HasActive(ctx, 2, eventID)
	require.NoError(t, err)
	require.True(t, active)

	first.Status = StatusCanceled
	require.NoError(t, repo.Save(ctx, first))

	active, err = repo.HasActive(ctx, 2, eventID)
	require.NoError(t, err)
	require.False(t, active)

	second := &Request{Created: repoNow, EventID: eventID, RequesterID: 2, Status: StatusPending}
	require.NoError(t, repo.Create(ctx, second))
	require.NotEqual(t, first.ID, second.ID)

	reqs, err := repo.ListByRequester(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	require.Equal(t, StatusCanceled, reqs[0].Status)
	require.Equal(t, StatusPending, reqs[1].Status)
}

func TestServiceDuplicateThenCancelOnDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := newDBService(db)
	ctx := context.Background()
	eventID := seedEvent(t, db, 5, true)

	first, err := svc.Create(ctx, 2, eventID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 2, eventID)
	require.ErrorIs(t, err, apierror.ErrConflict)

	_, err = svc.Cancel(ctx, 2, first.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 2, eventID)
	require.NoError(t, err)
}

func TestWithEventLockBulkConfirmOnDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := newDBService(db)
	repo := NewRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db, 2, true)

	var ids []uint
	for _, requester := range []uint{2, 3, 4} {
		dto, err := svc.Create(ctx, requester, eventID)
		require.NoError(t, err)
		require.Equal(t, StatusPending, dto.Status)
		ids = append(ids, dto.ID)
	}

	result, err := svc.UpdateStatuses(ctx, initiator, eventID, EventRequestStatusUpdateRequest{
		RequestIds: ids,
		Status:     StatusConfirmed,
	})
	require.NoError(t, err)
	require.Len(t, result.ConfirmedRequests, 2)
	require.Len(t, result.RejectedRequests, 1)
	require.Equal(t, ids[2], result.RejectedRequests[0].ID)

	confirmed, err := repo.CountConfirmed(ctx, eventID)
	require.NoError(t, err)
	require.Equal(t, int64(2), confirmed)

	stored, err := repo.GetByID(ctx, ids[2])
	require.NoError(t, err)
	require.Equal(t, StatusRejected, stored.Status)

	// full event: a further bulk confirm conflicts without touching rows
	_, err = svc.UpdateStatuses(ctx, initiator, eventID, EventRequestStatusUpdateRequest{
		RequestIds: []uint{ids[2]},
		Status:     StatusConfirmed,
	})
	require.ErrorIs(t, err, apierror.ErrConflict)

	err = repo.WithEventLock(ctx, eventID+100, func(Repository, *event.Event) error { return nil })
	require.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestWithEventLockRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	eventID := seedEvent(t, db, 0, false)

	err := repo.WithEventLock(ctx, eventID, func(tx Repository, e *event.Event) error {
		require.Equal(t, eventID, e.ID)
		if err := tx.Create(ctx, &Request{Created: repoNow, EventID: eventID, RequesterID: 2, Status: StatusConfirmed}); err != nil {
			return err
		}
		return apierror.Conflict("abort")
	})
	require.ErrorIs(t, err, apierror.ErrConflict)

	reqs, err := repo.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Empty(t, reqs)
}

func TestConcurrentCreatesOnDatabaseRespectLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newDBService(db)
	ctx := context.Background()
	eventID := seedEvent(t, db, 1, false)

	var wg sync.WaitGroup
	for _, requester := range []uint{2, 3, 4} {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, _ = svc.Create(ctx, id, eventID)
		}(requester)
	}
	wg.Wait()

	confirmed, err := NewRepository(db).CountConfirmed(ctx, eventID)
	require.NoError(t, err)
	require.Equal(t, int64(1), confirmed)
}
