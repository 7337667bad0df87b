package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/utils"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&User{}))
	return NewService(NewRepository(db), zap.NewNop())
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc := newTestService(t)

	dto, err := svc.Create(context.Background(), NewUserRequest{Name: "  Ann  ", Email: " Ann@Example.COM "})

	require.NoError(t, err)
	require.NotZero(t, dto.ID)
	require.Equal(t, "Ann", dto.Name)
	require.Equal(t, "ann@example.com", dto.Email)
}

func TestListFiltersByIDsAndPages(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, email := range []string{"a@ewm.io", "b@ewm.io", "c@ewm.io"} {
		_, err := svc.Create(ctx, NewUserRequest{Name: email, Email: email})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, nil, utils.Page{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)

	picked, err := svc.List(ctx, []uint{1, 3}, utils.Page{From: 0, Size: 10})
	require.NoError(t, err)
	require.Equal(t, []uint{1, 3}, []uint{picked[0].ID, picked[1].ID})

	second, err := svc.List(ctx, nil, utils.Page{From: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, uint(3), second[0].ID)

	none, err := svc.List(ctx, []uint{99}, utils.Page{From: 0, Size: 10})
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestDeleteAndLookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	dto, err := svc.Create(ctx, NewUserRequest{Name: "Bob", Email: "bob@ewm.io"})
	require.NoError(t, err)

	u, err := svc.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	require.Equal(t, "Bob", u.Name)

	require.NoError(t, svc.Delete(ctx, dto.ID))

	err = svc.Delete(ctx, dto.ID)
	require.True(t, errors.Is(err, apierror.ErrNotFound))

	_, err = svc.GetByID(ctx, dto.ID)
	require.True(t, errors.Is(err, apierror.ErrNotFound))
}
