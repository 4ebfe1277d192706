package dto

type DashboardResponse struct {
	Role           string        `json:"role"`
	TotalJobs      int64         `json:"total_jobs"`
	TotalCompanies int64         `json:"total_companies"`
	FeaturedJobs   []JobResponse `json:"featured_jobs"`
	JobTypeChoices []string      `json:"job_type_choices"`
}
