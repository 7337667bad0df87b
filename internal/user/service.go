package user

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/utils"
)

// Service wraps admin user management
type Service struct {
	Repo Repository
	Log  *zap.Logger
}

func NewService(r Repository, log *zap.Logger) *Service {
	return &Service{Repo: r, Log: log}
}

func (s *Service) Create(ctx context.Context, req NewUserRequest) (*UserDto, error) {
	u := &User{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Log.Info("user created", zap.Uint("user_id", u.ID))
	dto := ToDto(*u)
	return &dto, nil
}

func (s *Service) List(ctx context.Context, ids []uint, page utils.Page) ([]UserDto, error) {
	users, err := s.Repo.List(ctx, ids, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}

	out := make([]UserDto, 0, len(users))
	for _, u := range users {
		out = append(out, ToDto(u))
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

// GetByID is used by the other services to resolve actors.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.Repo.GetByID(ctx, id)
}
