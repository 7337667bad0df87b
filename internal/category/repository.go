package category

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/ewm-backend/internal/apierror"
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context, offset, limit int) ([]Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uint) error
	CountEvents(ctx context.Context, id uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("Category with name %s already exists", c.Name)
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var c Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Category with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, offset, limit int) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&categories).Error
	return categories, err
}

func (r *repository) Update(ctx context.Context, c *Category) error {
	err := r.db.WithContext(ctx).Save(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("Category with name %s already exists", c.Name)
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Category{}, id).Error
}

// ===========================
// 🔢 Count events still pointing at the category
func (r *repository) CountEvents(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("events").
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}
