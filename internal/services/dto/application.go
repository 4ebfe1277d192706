package dto

import "time"

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,is-application-status"`
}

type ApplicantSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	JobType  string `json:"job_type"`
	Company  string `json:"company,omitempty"`
}

type ApplicationResponse struct {
	ID          string            `json:"id"`
	Job         JobSummary        `json:"job"`
	Applicant   *ApplicantSummary `json:"applicant,omitempty"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	ResumeURL   string            `json:"resume_url,omitempty"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ApplicantsListResponse struct {
	Job          JobSummary            `json:"job"`
	Applications []ApplicationResponse `json:"applications"`
}
