package request

import (
	"time"

	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/user"
	"github.com/sharath018/ewm-backend/utils"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCanceled  Status = "CANCELED"
)

// ============================
// 🔷 GORM Participation Request Model
// At most one non-canceled request per (requester, event).
type Request struct {
	ID          uint        `gorm:"primaryKey"`
	Created     time.Time   `gorm:"not null"`
	EventID     uint        `gorm:"not null;index;uniqueIndex:idx_requests_active,where:status <> 'CANCELED'"`
	Event       event.Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	RequesterID uint        `gorm:"not null;index;uniqueIndex:idx_requests_active,where:status <> 'CANCELED'"`
	Requester   user.User   `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	Status      Status      `gorm:"type:varchar(20);not null;index"`
}

// ============================
// 🟡 Bulk status change
type EventRequestStatusUpdateRequest struct {
	RequestIds []uint `json:"requestIds" binding:"required,min=1,dive,gt=0"`
	Status     Status `json:"status" binding:"required,oneof=CONFIRMED REJECTED"`
}

type ParticipationRequestDto struct {
	ID        uint           `json:"id"`
	Created   utils.DateTime `json:"created"`
	Event     uint           `json:"event"`
	Requester uint           `json:"requester"`
	Status    Status         `json:"status"`
}

type EventRequestStatusUpdateResult struct {
	ConfirmedRequests []ParticipationRequestDto `json:"confirmedRequests"`
	RejectedRequests  []ParticipationRequestDto `json:"rejectedRequests"`
}

func ToDto(r Request) ParticipationRequestDto {
	return ParticipationRequestDto{
		ID:        r.ID,
		Created:   utils.NewDateTime(r.Created),
		Event:     r.EventID,
		Requester: r.RequesterID,
		Status:    r.Status,
	}
}

func toDtos(reqs []Request) []ParticipationRequestDto {
	out := make([]ParticipationRequestDto, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ToDto(r))
	}
	return out
}
