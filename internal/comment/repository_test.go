package comment

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/category"
	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/user"
)

var repoNow = time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (Repository, uint) {
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

	require.NoError(t, db.AutoMigrate(&user.User{}, &category.Category{}, &event.Event{}, &Comment{}))

	require.NoError(t, db.Create(&user.User{ID: 1, Name: "Ann", Email: "ann@example.com"}).Error)
	require.NoError(t, db.Create(&category.Category{ID: 1, Name: "Concerts"}).Error)
	e := &event.Event{
		Title:       "Open air",
		Annotation:  "An annotation long enough to pass",
		Description: "A description long enough to pass",
		CategoryID:  1,
		InitiatorID: 1,
		State:       event.StatePublished,
		CreatedOn:   repoNow,
		EventDate:   repoNow.Add(48 * time.Hour),
	}
	require.NoError(t, db.Omit("Category", "Initiator").Create(e).Error)
	return NewRepository(db), e.ID
}

func addComment(t *testing.T, repo Repository, eventID uint, text string, at time.Time) *Comment {
	t.Helper()
	c := &Comment{Text: text, AuthorID: 1, EventID: eventID, Created: at}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestRepositoryCreateLoadsAuthor(t *testing.T) {
	repo, eventID := newTestRepo(t)

	c := addComment(t, repo, eventID, "See you there", repoNow)

	require.NotZero(t, c.ID)
	require.Equal(t, "Ann", c.Author.Name)

	edited := repoNow.Add(time.Minute)
	c.Text = "See you all there"
	c.LastUpdatedOn = &edited
	require.NoError(t, repo.UpdateText(context.Background(), c))

	stored, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, "See you all there", stored.Text)
	require.NotNil(t, stored.LastUpdatedOn)
}

func TestRepositoryDeleteMissingIsNotFound(t *testing.T) {
	repo, eventID := newTestRepo(t)
	ctx := context.Background()
	c := addComment(t, repo, eventID, "Short lived", repoNow)

	require.NoError(t, repo.Delete(ctx, c.ID))
	require.ErrorIs(t, repo.Delete(ctx, c.ID), apierror.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, 999), apierror.ErrNotFound)

	_, err := repo.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestRepositorySearchIsLiteralAndCaseInsensitive(t *testing.T) {
	repo, eventID := newTestRepo(t)
	ctx := context.Background()

	literal := addComment(t, repo, eventID, "Sold out: 100% of seats gone", repoNow)
	addComment(t, repo, eventID, "Only 1000 seats, hurry", repoNow.Add(time.Minute))
	underscore := addComment(t, repo, eventID, "tag snake_case here", repoNow.Add(2*time.Minute))

	found, err := repo.Search(ctx, "100%", 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, literal.ID, found[0].ID)

	found, err = repo.Search(ctx, "SNAKE_CASE", 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, underscore.ID, found[0].ID)

	found, err = repo.Search(ctx, "SEATS", 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestRepositoryListByEventPagesOldestFirst(t *testing.T) {
	repo, eventID := newTestRepo(t)
	ctx := context.Background()

	first := addComment(t, repo, eventID, "first", repoNow)
	second := addComment(t, repo, eventID, "second", repoNow.Add(time.Minute))
	addComment(t, repo, eventID, "third", repoNow.Add(2*time.Minute))

	page, err := repo.ListByEvent(ctx, eventID, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, first.ID, page[0].ID)
	require.Equal(t, second.ID, page[1].ID)

	mine, err := repo.ListByAuthor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	require.Equal(t, "third", mine[0].Text)
}
