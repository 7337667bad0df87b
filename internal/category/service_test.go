package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/utils"
)

type memRepo struct {
	cats   map[uint]Category
	events map[uint]int64
	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{cats: map[uint]Category{}, events: map[uint]int64{}}
}

func (m *memRepo) nameTaken(name string, except uint) bool {
	for id, c := range m.cats {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (m *memRepo) Create(_ context.Context, c *Category) error {
	if m.nameTaken(c.Name, 0) {
		return apierror.Conflict("Category with name %s already exists", c.Name)
	}
	m.nextID++
	c.ID = m.nextID
	m.cats[c.ID] = *c
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uint) (*Category, error) {
	c, ok := m.cats[id]
	if !ok {
		return nil, apierror.NotFound("Category with id=%d was not found", id)
	}
	return &c, nil
}

func (m *memRepo) List(_ context.Context, offset, limit int) ([]Category, error) {
	var out []Category
	for id := uint(1); id <= m.nextID; id++ {
		if c, ok := m.cats[id]; ok {
			out = append(out, c)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, c *Category) error {
	if m.nameTaken(c.Name, c.ID) {
		return apierror.Conflict("Category with name %s already exists", c.Name)
	}
	m.cats[c.ID] = *c
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uint) error {
	delete(m.cats, id)
	return nil
}

func (m *memRepo) CountEvents(_ context.Context, id uint) (int64, error) {
	return m.events[id], nil
}

func TestCreateTrimsAndRejectsDuplicates(t *testing.T) {
	svc := NewService(newMemRepo(), zap.NewNop())
	ctx := context.Background()

	dto, err := svc.Create(ctx, CategoryRequest{Name: "  Concerts "})
	require.NoError(t, err)
	require.Equal(t, "Concerts", dto.Name)

	_, err = svc.Create(ctx, CategoryRequest{Name: "Concerts"})
	require.True(t, errors.Is(err, apierror.ErrConflict))
}

func TestUpdateKeepsSameNameAndDetectsClash(t *testing.T) {
	svc := NewService(newMemRepo(), zap.NewNop())
	ctx := context.Background()
	a, _ := svc.Create(ctx, CategoryRequest{Name: "Art"})
	_, _ = svc.Create(ctx, CategoryRequest{Name: "Music"})

	same, err := svc.Update(ctx, a.ID, CategoryRequest{Name: "Art"})
	require.NoError(t, err)
	require.Equal(t, "Art", same.Name)

	_, err = svc.Update(ctx, a.ID, CategoryRequest{Name: "Music"})
	require.True(t, errors.Is(err, apierror.ErrConflict))

	_, err = svc.Update(ctx, 99, CategoryRequest{Name: "Film"})
	require.True(t, errors.Is(err, apierror.ErrNotFound))
}

func TestDeleteRefusesWhileEventsReferenceCategory(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()
	c, _ := svc.Create(ctx, CategoryRequest{Name: "Sport"})
	repo.events[c.ID] = 2

	err := svc.Delete(ctx, c.ID)
	require.True(t, errors.Is(err, apierror.ErrConflict))

	repo.events[c.ID] = 0
	require.NoError(t, svc.Delete(ctx, c.ID))

	_, err = svc.Get(ctx, c.ID)
	require.True(t, errors.Is(err, apierror.ErrNotFound))

	err = svc.Delete(ctx, c.ID)
	require.True(t, errors.Is(err, apierror.ErrNotFound))
}

func TestListNeverReturnsNil(t *testing.T) {
	svc := NewService(newMemRepo(), zap.NewNop())

	out, err := svc.List(context.Background(), utils.Page{From: 0, Size: 10})

	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}
