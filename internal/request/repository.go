package request

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/event"
)

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id uint) (*Request, error)
	Save(ctx context.Context, r *Request) error
	SaveAll(ctx context.Context, reqs []Request) error
	ListByRequester(ctx context.Context, requesterID uint) ([]Request, error)
	ListByEvent(ctx context.Context, eventID uint) ([]Request, error)
	ListByIDs(ctx context.Context, ids []uint) ([]Request, error)
	HasActive(ctx context.Context, requesterID, eventID uint) (bool, error)
	CountConfirmed(ctx context.Context, eventID uint) (int64, error)

	// WithEventLock runs fn in one transaction holding the event row lock,
	// so capacity checks and writes for an event are serialized.
	WithEventLock(ctx context.Context, eventID uint, fn func(tx Repository, e *event.Event) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("User with id=%d already has a request for event with id=%d", req.RequesterID, req.EventID)
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Request with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) Save(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Model(&Request{}).
		Where("id = ?", req.ID).
		Update("status", req.Status).Error
}

func (r *repository) SaveAll(ctx context.Context, reqs []Request) error {
	for i := range reqs {
		if err := r.Save(ctx, &reqs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) ListByRequester(ctx context.Context, requesterID uint) ([]Request, error) {
	var reqs []Request
	err := r.db.WithContext(ctx).Where("requester_id = ?", requesterID).Order("id ASC").Find(&reqs).Error
	return reqs, err
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]Request, error) {
	var reqs []Request
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id ASC").Find(&reqs).Error
	return reqs, err
}

func (r *repository) ListByIDs(ctx context.Context, ids []uint) ([]Request, error) {
	var reqs []Request
	if len(ids) == 0 {
		return reqs, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&reqs).Error
	return reqs, err
}

func (r *repository) HasActive(ctx context.Context, requesterID, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Request{}).
		Where("requester_id = ? AND event_id = ? AND status <> ?", requesterID, eventID, StatusCanceled).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountConfirmed(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Request{}).
		Where("event_id = ? AND status = ?", eventID, StatusConfirmed).
		Count(&count).Error
	return count, err
}

// ===========================
// 🔒 Event-scoped transaction
func (r *repository) WithEventLock(ctx context.Context, eventID uint, fn func(tx Repository, e *event.Event) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e event.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, eventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Event with id=%d was not found", eventID)
		}
		if err != nil {
			return err
		}
		return fn(&repository{db: tx}, &e)
	})
}
