package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/ewm-backend/internal/apierror"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, ids []uint, offset, limit int) ([]User, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierror.Conflict("User with email %s already exists", u.Email)
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("User with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context, ids []uint, offset, limit int) ([]User, error) {
	var users []User
	query := r.db.WithContext(ctx).Model(&User{})
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.NotFound("User with id=%d was not found", id)
	}
	return nil
}
