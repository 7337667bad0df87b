package compilation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/internal/event"
)

type Repository interface {
	Create(ctx context.Context, c *Compilation) error
	GetByID(ctx context.Context, id uint) (*Compilation, error)
	Update(ctx context.Context, c *Compilation, replaceEvents bool) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, pinned *bool, offset, limit int) ([]Compilation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withEvents(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("events.id ASC") }).
		Preload("Events.Category").
		Preload("Events.Initiator")
}

// Create stores the compilation and its event links without touching the events.
func (r *repository) Create(ctx context.Context, c *Compilation) error {
	return r.db.WithContext(ctx).Omit("Events.*").Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Compilation, error) {
	var c Compilation
	err := r.withEvents(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Compilation with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Compilation, replaceEvents bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Compilation{}).
			Where("id = ?", c.ID).
			Updates(map[string]interface{}{"title": c.Title, "pinned": c.Pinned}).Error
		if err != nil {
			return err
		}
		if !replaceEvents {
			return nil
		}
		events := c.Events
		if events == nil {
			events = []event.Event{}
		}
		return tx.Model(c).Omit("Events.*").Association("Events").Replace(events)
	})
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c := &Compilation{ID: id}
		if err := tx.Model(c).Association("Events").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&Compilation{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apierror.NotFound("Compilation with id=%d was not found", id)
		}
		return nil
	})
}

func (r *repository) List(ctx context.Context, pinned *bool, offset, limit int) ([]Compilation, error) {
	var comps []Compilation
	query := r.withEvents(ctx)
	if pinned != nil {
		query = query.Where("pinned = ?", *pinned)
	}
	err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&comps).Error
	return comps, err
}
