package user

// ============================
// 🔷 GORM User Model
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(250);not null" json:"name"`
	Email string `gorm:"type:varchar(254);not null;uniqueIndex" json:"email"`
}

// ============================
// 🟡 Create User Request
type NewUserRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=250"`
	Email string `json:"email" binding:"required,email,min=6,max=254"`
}

type UserDto struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserShortDto struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func ToDto(u User) UserDto {
	return UserDto{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ToShortDto(u User) UserShortDto {
	return UserShortDto{ID: u.ID, Name: u.Name}
}
