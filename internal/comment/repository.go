package comment

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/utils"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uint) (*Comment, error)
	UpdateText(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id uint) error
	ListByAuthor(ctx context.Context, authorID uint) ([]Comment, error)
	ListByEvent(ctx context.Context, eventID uint, offset, limit int) ([]Comment, error)
	Search(ctx context.Context, text string, offset, limit int) ([]Comment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("Author").First(c, c.ID).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).Preload("Author").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Comment with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) UpdateText(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Model(&Comment{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"text":            c.Text,
			"last_updated_on": c.LastUpdatedOn,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.NotFound("Comment with id=%d was not found", id)
	}
	return nil
}

func (r *repository) ListByAuthor(ctx context.Context, authorID uint) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("author_id = ?", authorID).
		Order("created DESC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint, offset, limit int) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("event_id = ?", eventID).
		Order("created ASC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

// Search matches text case-insensitively anywhere in the comment body.
func (r *repository) Search(ctx context.Context, text string, offset, limit int) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where(utils.LowerLike("text"), utils.ContainsPattern(text)).
		Order("created DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}
