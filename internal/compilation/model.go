package compilation

import "github.com/sharath018/ewm-backend/internal/event"

// ============================
// 🔷 GORM Compilation Model
type Compilation struct {
	ID     uint          `gorm:"primaryKey"`
	Title  string        `gorm:"type:varchar(50);not null"`
	Pinned bool          `gorm:"not null"`
	Events []event.Event `gorm:"many2many:compilation_events;constraint:OnDelete:CASCADE"`
}

// ============================
// 🟡 Create Compilation Request
type NewCompilationRequest struct {
	Events []uint `json:"events" binding:"omitempty,dive,gt=0"`
	Pinned *bool  `json:"pinned"`
	Title  string `json:"title" binding:"required,min=1,max=50"`
}

// ============================
// 🟠 Update Compilation Request
// A nil Events list leaves the compilation's events unchanged.
type UpdateCompilationRequest struct {
	Events []uint  `json:"events" binding:"omitempty,dive,gt=0"`
	Pinned *bool   `json:"pinned"`
	Title  *string `json:"title" binding:"omitempty,min=1,max=50"`
}

type CompilationDto struct {
	ID     uint                  `json:"id"`
	Events []event.EventShortDto `json:"events"`
	Pinned bool                  `json:"pinned"`
	Title  string                `json:"title"`
}
