package category

// ============================
// 🔷 GORM Category Model
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

// ============================
// 🟡 Create / Update Category Request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

type CategoryDto struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func ToDto(c Category) CategoryDto {
	return CategoryDto{ID: c.ID, Name: c.Name}
}
