package models

// Application is a seeker's application to one job. The composite
// unique index is the authoritative guard against double-applying;
// the service level pre-check only exists for a friendlier message.
type Application struct {
	BaseModel
	JobID       string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant"`
	ApplicantID string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant"`
	CoverLetter string            `gorm:"type:text"`
	ResumePath  string            // storage reference, empty when none was uploaded
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending'"`

	// Relations
	Job       *Job  `gorm:"foreignKey:JobID"`
	Applicant *User `gorm:"foreignKey:ApplicantID"`
}
