package event

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/ewm-backend/internal/apierror"
	"github.com/sharath018/ewm-backend/utils"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	ListByInitiator(ctx context.Context, initiatorID uint, offset, limit int) ([]Event, error)
	ListByIDs(ctx context.Context, ids []uint) ([]Event, error)
	SearchPublic(ctx context.Context, f PublicFilter) ([]Event, error)
	SearchAdmin(ctx context.Context, f AdminFilter) ([]Event, error)
	UpdateIfState(ctx context.Context, e *Event, expected State) error
	CountConfirmed(ctx context.Context, ids []uint) (map[uint]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Initiator")
}

// ===========================
// 🎯 Create Event
func (r *repository) Create(ctx context.Context, e *Event) error {
	if err := r.db.WithContext(ctx).Omit("Category", "Initiator").Create(e).Error; err != nil {
		return err
	}
	return r.withRefs(ctx).First(e, e.ID).Error
}

// ===========================
// 🔍 Get Event By ID
func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.withRefs(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Event with id=%d was not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListByInitiator(ctx context.Context, initiatorID uint, offset, limit int) ([]Event, error) {
	var events []Event
	err := r.withRefs(ctx).
		Where("initiator_id = ?", initiatorID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *repository) ListByIDs(ctx context.Context, ids []uint) ([]Event, error) {
	var events []Event
	if len(ids) == 0 {
		return events, nil
	}
	err := r.withRefs(ctx).Where("id IN ?", ids).Order("id ASC").Find(&events).Error
	return events, err
}

// ===========================
// 🌐 Public search over published events
func (r *repository) SearchPublic(ctx context.Context, f PublicFilter) ([]Event, error) {
	var events []Event

	query := r.withRefs(ctx).Where("state = ?", StatePublished)

	if f.Text != "" {
		like := utils.ContainsPattern(f.Text)
		query = query.Where("("+utils.LowerLike("annotation")+" OR "+utils.LowerLike("description")+")", like, like)
	}
	if len(f.Categories) > 0 {
		query = query.Where("category_id IN ?", f.Categories)
	}
	if f.Paid != nil {
		query = query.Where("paid = ?", *f.Paid)
	}
	if f.RangeStart != nil {
		query = query.Where("event_date >= ?", *f.RangeStart)
	}
	if f.RangeEnd != nil {
		query = query.Where("event_date <= ?", *f.RangeEnd)
	}
	if f.OnlyAvailable {
		query = query.Where(`(participant_limit = 0 OR participant_limit > (
			SELECT COUNT(*) FROM requests WHERE requests.event_id = events.id AND requests.status = 'CONFIRMED'))`)
	}

	if f.Sort == SortEventDate {
		query = query.Order("event_date ASC")
	}
	query = query.Order("id ASC")

	err := query.Offset(f.Offset).Limit(f.Limit).Find(&events).Error
	return events, err
}

// ===========================
// 🛡️ Admin search over all events
func (r *repository) SearchAdmin(ctx context.Context, f AdminFilter) ([]Event, error) {
	var events []Event

	query := r.withRefs(ctx)
	if len(f.Users) > 0 {
		query = query.Where("initiator_id IN ?", f.Users)
	}
	if len(f.States) > 0 {
		query = query.Where("state IN ?", f.States)
	}
	if len(f.Categories) > 0 {
		query = query.Where("category_id IN ?", f.Categories)
	}
	if f.RangeStart != nil {
		query = query.Where("event_date >= ?", *f.RangeStart)
	}
	if f.RangeEnd != nil {
		query = query.Where("event_date <= ?", *f.RangeEnd)
	}

	err := query.Order("id ASC").Offset(f.Offset).Limit(f.Limit).Find(&events).Error
	return events, err
}

// ===========================
// ✏️ Conditional update
// UpdateIfState writes e only while the stored row is still in the expected state.
func (r *repository) UpdateIfState(ctx context.Context, e *Event, expected State) error {
	res := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ? AND state = ?", e.ID, expected).
		Updates(map[string]interface{}{
			"title":              e.Title,
			"annotation":         e.Annotation,
			"description":        e.Description,
			"category_id":        e.CategoryID,
			"location_lat":       e.Location.Lat,
			"location_lon":       e.Location.Lon,
			"paid":               e.Paid,
			"participant_limit":  e.ParticipantLimit,
			"request_moderation": e.RequestModeration,
			"state":              e.State,
			"published_on":       e.PublishedOn,
			"event_date":         e.EventDate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.Conflict("Event with id=%d is no longer in state %s", e.ID, expected)
	}
	return nil
}

// CountConfirmed returns the CONFIRMED request count per event id.
func (r *repository) CountConfirmed(ctx context.Context, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID uint
		Total   int64
	}
	err := r.db.WithContext(ctx).
		Table("requests").
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ? AND status = ?", ids, "CONFIRMED").
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.EventID] = row.Total
	}
	return counts, nil
}
