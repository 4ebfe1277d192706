package dto

import "time"

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required" validate:"required,max=255"`
	Description string `json:"description" binding:"required" validate:"required"`
	Location    string `json:"location" binding:"required" validate:"required,max=100"`
	JobType     string `json:"job_type" binding:"required" validate:"required,is-job-type"`
}

// UpdateJobRequest mirrors the create form: every field is submitted
// again on edit.
type UpdateJobRequest struct {
	Title       string `json:"title" binding:"required" validate:"required,max=255"`
	Description string `json:"description" binding:"required" validate:"required"`
	Location    string `json:"location" binding:"required" validate:"required,max=100"`
	JobType     string `json:"job_type" binding:"required" validate:"required,is-job-type"`
}

type SearchJobsRequest struct {
	Search   string `form:"search" json:"search"`
	Location string `form:"location" json:"location"`
	JobType  string `form:"job_type" json:"job_type" validate:"omitempty,is-job-type"`
	Page     int    `form:"page" json:"page"`
}

type CompanySummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type JobResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	JobType     string         `json:"job_type"`
	Company     CompanySummary `json:"company"`
	CreatedAt   time.Time      `json:"created_at"`
}

type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}

type JobTypeCount struct {
	JobType string `json:"job_type"`
	Count   int64  `json:"count"`
}

type HomepageResponse struct {
	FeaturedJobs   []JobResponse  `json:"featured_jobs"`
	TotalJobs      int64          `json:"total_jobs"`
	TotalCompanies int64          `json:"total_companies"`
	JobTypeCounts  []JobTypeCount `json:"job_type_counts"`
	JobTypeChoices []string       `json:"job_type_choices"`
}

type JobDetailResponse struct {
	Job         JobResponse   `json:"job"`
	RelatedJobs []JobResponse `json:"related_jobs"`
	HasApplied  bool          `json:"has_applied"`
}

type MyJobsResponse struct {
	Jobs                []JobResponse `json:"jobs"`
	TotalJobs           int64         `json:"total_jobs"`
	TotalApplications   int64         `json:"total_applications"`
	PendingApplications int64         `json:"pending_applications"`
}
