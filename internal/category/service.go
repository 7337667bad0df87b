package category

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/utils"
)

// Service wraps category reference data
type Service struct {
	Repo Repository
	Log  *zap.Logger
}

func NewService(r Repository, log *zap.Logger) *Service {
	return &Service{Repo: r, Log: log}
}

func (s *Service) Create(ctx context.Context, req CategoryRequest) (*CategoryDto, error) {
	c := &Category{Name: strings.TrimSpace(req.Name)}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := ToDto(*c)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, id uint, req CategoryRequest) (*CategoryDto, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if c.Name != name {
		c.Name = name
		if err := s.Repo.Update(ctx, c); err != nil {
			return nil, err
		}
	}

	dto := ToDto(*c)
	return &dto, nil
}

// Delete refuses while any event still references the category.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.Repo.CountEvents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apierror.Conflict("The category is not empty")
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.Info("category deleted", zap.Uint("category_id", id))
	return nil
}

func (s *Service) List(ctx context.Context, page utils.Page) ([]CategoryDto, error) {
	categories, err := s.Repo.List(ctx, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}
	out := make([]CategoryDto, 0, len(categories))
	for _, c := range categories {
		out = append(out, ToDto(c))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*CategoryDto, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToDto(*c)
	return &dto, nil
}

// GetByID is used by the event service to resolve category references.
func (s *Service) GetByID(ctx context.Context, id uint) (*Category, error) {
	return s.Repo.GetByID(ctx, id)
}
