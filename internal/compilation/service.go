package compilation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/utils"
)

type EventSource interface {
	ListByIDs(ctx context.Context, ids []uint) ([]event.Event, error)
	ShortDtos(ctx context.Context, events []event.Event) ([]event.EventShortDto, error)
}

// Service wraps admin-curated event compilations
type Service struct {
	Repo   Repository
	Events EventSource
	Log    *zap.Logger
}

func NewService(r Repository, events EventSource, log *zap.Logger) *Service {
	return &Service{Repo: r, Events: events, Log: log}
}

// ===========================
// 🎯 Create Compilation
func (s *Service) Create(ctx context.Context, req NewCompilationRequest) (*CompilationDto, error) {
	events, err := s.Events.ListByIDs(ctx, req.Events)
	if err != nil {
		return nil, err
	}

	c := &Compilation{
		Title:  strings.TrimSpace(req.Title),
		Pinned: req.Pinned != nil && *req.Pinned,
		Events: events,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Log.Info("compilation created", zap.Uint("compilation_id", c.ID), zap.Int("events", len(events)))
	return s.toDto(ctx, *c)
}

// ===========================
// 🛠 Update Compilation
func (s *Service) Update(ctx context.Context, id uint, req UpdateCompilationRequest) (*CompilationDto, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = strings.TrimSpace(*req.Title)
	}
	if req.Pinned != nil {
		c.Pinned = *req.Pinned
	}
	replace := req.Events != nil
	if replace {
		if c.Events, err = s.Events.ListByIDs(ctx, req.Events); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Update(ctx, c, replace); err != nil {
		return nil, err
	}
	return s.toDto(ctx, *c)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.Info("compilation deleted", zap.Uint("compilation_id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id uint) (*CompilationDto, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDto(ctx, *c)
}

func (s *Service) List(ctx context.Context, pinned *bool, page utils.Page) ([]CompilationDto, error) {
	comps, err := s.Repo.List(ctx, pinned, page.Offset(), page.Limit())
	if err != nil {
		return nil, err
	}
	out := make([]CompilationDto, 0, len(comps))
	for _, c := range comps {
		dto, err := s.toDto(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

func (s *Service) toDto(ctx context.Context, c Compilation) (*CompilationDto, error) {
	events, err := s.Events.ShortDtos(ctx, c.Events)
	if err != nil {
		return nil, err
	}
	return &CompilationDto{ID: c.ID, Events: events, Pinned: c.Pinned, Title: c.Title}, nil
}
