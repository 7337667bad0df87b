package event

import (
	"time"

	"github.com/sharath018/ewm-backend/internal/category"
	"github.com/sharath018/ewm-backend/internal/user"
	"github.com/sharath018/ewm-backend/utils"
)

type State string

const (
	StatePending   State = "PENDING"
	StatePublished State = "PUBLISHED"
	StateCanceled  State = "CANCELED"
)

func (s State) Valid() bool {
	return s == StatePending || s == StatePublished || s == StateCanceled
}

// State actions accepted on PATCH
const (
	ActionSendToReview = "SEND_TO_REVIEW"
	ActionCancelReview = "CANCEL_REVIEW"
	ActionPublish      = "PUBLISH_EVENT"
	ActionReject       = "REJECT_EVENT"
)

// Sort orders for the public search
const (
	SortEventDate = "EVENT_DATE"
	SortViews     = "VIEWS"
)

const (
	userLeadTime  = 2 * time.Hour
	adminLeadTime = 1 * time.Hour
)

type Location struct {
	Lat float64 `gorm:"column:lat;not null" json:"lat"`
	Lon float64 `gorm:"column:lon;not null" json:"lon"`
}

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID                uint              `gorm:"primaryKey"`
	Title             string            `gorm:"type:varchar(120);not null"`
	Annotation        string            `gorm:"type:varchar(2000);not null"`
	Description       string            `gorm:"type:text;not null"`
	CategoryID        uint              `gorm:"not null;index"`
	Category          category.Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	InitiatorID       uint              `gorm:"not null;index"`
	Initiator         user.User         `gorm:"foreignKey:InitiatorID;constraint:OnDelete:CASCADE"`
	Location          Location          `gorm:"embedded;embeddedPrefix:location_"`
	Paid              bool              `gorm:"not null"`
	ParticipantLimit  int               `gorm:"not null"`
	RequestModeration bool              `gorm:"not null"`
	State             State             `gorm:"type:varchar(20);not null;index"`
	CreatedOn         time.Time         `gorm:"not null"`
	PublishedOn       *time.Time
	EventDate         time.Time `gorm:"not null;index"`

	ConfirmedRequests int64 `gorm:"-"`
	Views             int64 `gorm:"-"`
}

// HasFreeSlots reports whether another request can still be confirmed.
func (e *Event) HasFreeSlots() bool {
	return e.ParticipantLimit == 0 || e.ConfirmedRequests < int64(e.ParticipantLimit)
}

// ============================
// 🟡 Create Event Request
type NewEventRequest struct {
	Annotation        string          `json:"annotation" binding:"required,min=20,max=2000"`
	Category          uint            `json:"category" binding:"required,gt=0"`
	Description       string          `json:"description" binding:"required,min=20,max=7000"`
	EventDate         *utils.DateTime `json:"eventDate" binding:"required"`
	Location          *Location       `json:"location" binding:"required"`
	Paid              *bool           `json:"paid"`
	ParticipantLimit  *int            `json:"participantLimit" binding:"omitempty,min=0"`
	RequestModeration *bool           `json:"requestModeration"`
	Title             string          `json:"title" binding:"required,min=3,max=120"`
}

// ============================
// 🟠 Update Event Request (shared field patch)
type UpdateEventFields struct {
	Annotation        *string         `json:"annotation" binding:"omitempty,min=20,max=2000"`
	Category          *uint           `json:"category" binding:"omitempty,gt=0"`
	Description       *string         `json:"description" binding:"omitempty,min=20,max=7000"`
	EventDate         *utils.DateTime `json:"eventDate"`
	Location          *Location       `json:"location"`
	Paid              *bool           `json:"paid"`
	ParticipantLimit  *int            `json:"participantLimit" binding:"omitempty,min=0"`
	RequestModeration *bool           `json:"requestModeration"`
	Title             *string         `json:"title" binding:"omitempty,min=3,max=120"`
}

type UpdateEventUserRequest struct {
	UpdateEventFields
	StateAction *string `json:"stateAction" binding:"omitempty,oneof=SEND_TO_REVIEW CANCEL_REVIEW"`
}

type UpdateEventAdminRequest struct {
	UpdateEventFields
	StateAction *string `json:"stateAction" binding:"omitempty,oneof=PUBLISH_EVENT REJECT_EVENT"`
}

// ============================
// 🔍 Search filters
type PublicFilter struct {
	Text          string
	Categories    []uint
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          string
	Offset        int
	Limit         int
}

type AdminFilter struct {
	Users      []uint
	States     []State
	Categories []uint
	RangeStart *time.Time
	RangeEnd   *time.Time
	Offset     int
	Limit      int
}

// ============================
// 📦 Transfer objects
type EventFullDto struct {
	ID                uint                 `json:"id"`
	Annotation        string               `json:"annotation"`
	Category          category.CategoryDto `json:"category"`
	ConfirmedRequests int64                `json:"confirmedRequests"`
	CreatedOn         utils.DateTime       `json:"createdOn"`
	Description       string               `json:"description"`
	EventDate         utils.DateTime       `json:"eventDate"`
	Initiator         user.UserShortDto    `json:"initiator"`
	Location          Location             `json:"location"`
	Paid              bool                 `json:"paid"`
	ParticipantLimit  int                  `json:"participantLimit"`
	PublishedOn       *utils.DateTime      `json:"publishedOn"`
	RequestModeration bool                 `json:"requestModeration"`
	State             State                `json:"state"`
	Title             string               `json:"title"`
	Views             int64                `json:"views"`
}

type EventShortDto struct {
	ID                uint                 `json:"id"`
	Annotation        string               `json:"annotation"`
	Category          category.CategoryDto `json:"category"`
	ConfirmedRequests int64                `json:"confirmedRequests"`
	EventDate         utils.DateTime       `json:"eventDate"`
	Initiator         user.UserShortDto    `json:"initiator"`
	Paid              bool                 `json:"paid"`
	Title             string               `json:"title"`
	Views             int64                `json:"views"`
}

func ToFullDto(e Event) EventFullDto {
	return EventFullDto{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          category.ToDto(e.Category),
		ConfirmedRequests: e.ConfirmedRequests,
		CreatedOn:         utils.NewDateTime(e.CreatedOn),
		Description:       e.Description,
		EventDate:         utils.NewDateTime(e.EventDate),
		Initiator:         user.ToShortDto(e.Initiator),
		Location:          e.Location,
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		PublishedOn:       utils.DateTimePtr(e.PublishedOn),
		RequestModeration: e.RequestModeration,
		State:             e.State,
		Title:             e.Title,
		Views:             e.Views,
	}
}

func ToShortDto(e Event) EventShortDto {
	return EventShortDto{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          category.ToDto(e.Category),
		ConfirmedRequests: e.ConfirmedRequests,
		EventDate:         utils.NewDateTime(e.EventDate),
		Initiator:         user.ToShortDto(e.Initiator),
		Paid:              e.Paid,
		Title:             e.Title,
		Views:             e.Views,
	}
}
