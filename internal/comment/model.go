package comment

import (
	"time"

	"github.com/sharath018/ewm-backend/internal/event"
	"github.com/sharath018/ewm-backend/internal/user"
	"github.com/sharath018/ewm-backend/utils"
)

const (
	MaxTextLength = 1500
	editWindow    = time.Hour
)

// ============================
// 🔷 GORM Comment Model
type Comment struct {
	ID            uint        `gorm:"primaryKey"`
	Text          string      `gorm:"type:varchar(1500);not null"`
	AuthorID      uint        `gorm:"not null;index"`
	Author        user.User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	EventID       uint        `gorm:"not null;index"`
	Event         event.Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Created       time.Time   `gorm:"not null"`
	LastUpdatedOn *time.Time
}

// ============================
// 🟡 Create / Update Comment Request
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentDto struct {
	ID            uint              `json:"id"`
	Text          string            `json:"text"`
	Author        user.UserShortDto `json:"author"`
	EventID       uint              `json:"eventId"`
	Created       utils.DateTime    `json:"created"`
	LastUpdatedOn *utils.DateTime   `json:"lastUpdatedOn"`
}

func ToDto(c Comment) CommentDto {
	return CommentDto{
		ID:            c.ID,
		Text:          c.Text,
		Author:        user.ToShortDto(c.Author),
		EventID:       c.EventID,
		Created:       utils.NewDateTime(c.Created),
		LastUpdatedOn: utils.DateTimePtr(c.LastUpdatedOn),
	}
}

func toDtos(comments []Comment) []CommentDto {
	out := make([]CommentDto, 0, len(comments))
	for _, c := range comments {
		out = append(out, ToDto(c))
	}
	return out
}
