package models

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null"`
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
	IsStaff      bool     `gorm:"default:false"`

	// Relations
	Jobs         []Job         `gorm:"foreignKey:CompanyID"`
	Applications []Application `gorm:"foreignKey:ApplicantID"`
}

func (u *User) IsCompany() bool {
	return u.Role == UserRoleCompany
}

func (u *User) IsSeeker() bool {
	return u.Role == UserRoleSeeker
}
