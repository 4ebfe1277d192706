package models

type Job struct {
	BaseModel
	Title       string  `gorm:"not null"`
	Description string  `gorm:"type:text;not null"`
	Location    string  `gorm:"size:100;not null"`
	JobType     JobType `gorm:"type:varchar(20);not null"`
	CompanyID   string  `gorm:"type:uuid;not null;index"`

	// Relations
	Company      *User         `gorm:"foreignKey:CompanyID"`
	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}
