package services

import (
	"context"
	"errors"

	"jobboard_backend/internal/appErrors"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
)

const (
	jobsPerPage      = 10
	featuredJobCount = 6
	relatedJobCount  = 3
)

type JobService struct {
	jobRepo  repositories.JobRepository
	appRepo  repositories.ApplicationRepository
	userRepo repositories.UserRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
	}
}

// SearchJobs lists jobs newest-first with the optional filters, paged
// at 10 per page. A page past the end degrades to the last valid page.
func (s *JobService) SearchJobs(ctx context.Context, req *dto.SearchJobsRequest) (*dto.JobListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	filter := repositories.JobFilter{
		Search:   req.Search,
		Location: req.Location,
		JobType:  models.JobType(req.JobType),
		Limit:    jobsPerPage,
	}

	filter.Offset = (page - 1) * jobsPerPage
	jobs, total, err := s.jobRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	pages := int((total + jobsPerPage - 1) / jobsPerPage)
	if pages > 0 && page > pages {
		// Past the end: serve the last page instead.
		page = pages
		filter.Offset = (page - 1) * jobsPerPage
		jobs, total, err = s.jobRepo.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
	}

	return &dto.JobListResponse{
		Jobs:  toJobResponses(jobs),
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

// Homepage returns the six most recent jobs matching the filters plus
// unfiltered board-wide statistics.
func (s *JobService) Homepage(ctx context.Context, req *dto.SearchJobsRequest) (*dto.HomepageResponse, error) {
	filter := repositories.JobFilter{
		Search:   req.Search,
		Location: req.Location,
		JobType:  models.JobType(req.JobType),
	}

	featured, err := s.jobRepo.FindLatest(ctx, filter, featuredJobCount)
	if err != nil {
		return nil, err
	}

	totalJobs, err := s.jobRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalCompanies, err := s.jobRepo.CountDistinctCompanies(ctx)
	if err != nil {
		return nil, err
	}

	typeCounts, err := s.jobRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	counts := make([]dto.JobTypeCount, 0, len(typeCounts))
	for _, tc := range typeCounts {
		counts = append(counts, dto.JobTypeCount{JobType: string(tc.JobType), Count: tc.Count})
	}

	return &dto.HomepageResponse{
		FeaturedJobs:   toJobResponses(featured),
		TotalJobs:      totalJobs,
		TotalCompanies: totalCompanies,
		JobTypeCounts:  counts,
		JobTypeChoices: jobTypeChoices(),
	}, nil
}

// GetJob returns the job, up to three related jobs (same company or
// same type) and, for an authenticated viewer, whether they already
// applied.
func (s *JobService) GetJob(ctx context.Context, jobID, viewerID string) (*dto.JobDetailResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, err
	}

	related, err := s.jobRepo.FindRelated(ctx, job, relatedJobCount)
	if err != nil {
		return nil, err
	}

	hasApplied := false
	if viewerID != "" {
		hasApplied, err = s.appRepo.ExistsForJobAndApplicant(ctx, job.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.JobDetailResponse{
		Job:         toJobResponse(job),
		RelatedJobs: toJobResponses(related),
		HasApplied:  hasApplied,
	}, nil
}

// CreateJob persists a new posting owned by the caller. Only company
// accounts may post.
func (s *JobService) CreateJob(ctx context.Context, companyID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	company, err := s.userRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	if !company.IsCompany() {
		return nil, appErrors.ErrCompanyRoleRequired
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		JobType:     models.JobType(req.JobType),
		CompanyID:   company.ID,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "company_id", company.ID)

	job.Company = company
	resp := toJobResponse(job)
	return &resp, nil
}

// MyJobs lists the company's own postings with application statistics.
func (s *JobService) MyJobs(ctx context.Context, companyID string) (*dto.MyJobsResponse, error) {
	company, err := s.userRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	if !company.IsCompany() {
		return nil, appErrors.ErrForbidden
	}

	jobs, err := s.jobRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	totalApplications, err := s.appRepo.CountForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	pendingApplications, err := s.appRepo.CountPendingForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	for i := range jobs {
		jobs[i].Company = company
	}

	return &dto.MyJobsResponse{
		Jobs:                toJobResponses(jobs),
		TotalJobs:           int64(len(jobs)),
		TotalApplications:   totalApplications,
		PendingApplications: pendingApplications,
	}, nil
}

// UpdateJob edits a posting. The lookup is scoped by owner, so a
// non-owner gets not-found rather than learning the job exists.
func (s *JobService) UpdateJob(ctx context.Context, jobID, companyID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByIDForCompany(ctx, jobID, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, err
	}

	job.Title = req.Title
	job.Description = req.Description
	job.Location = req.Location
	job.JobType = models.JobType(req.JobType)

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	resp := toJobResponse(job)
	return &resp, nil
}

// DeleteJob removes a posting and all of its applications. Owner only,
// same scoped lookup as UpdateJob.
func (s *JobService) DeleteJob(ctx context.Context, jobID, companyID string) error {
	job, err := s.jobRepo.FindByIDForCompany(ctx, jobID, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return appErrors.ErrJobNotFound
		}
		return err
	}

	return s.jobRepo.Delete(ctx, job.ID)
}

func jobTypeChoices() []string {
	choices := make([]string, 0, len(models.JobTypes))
	for _, t := range models.JobTypes {
		choices = append(choices, string(t))
	}
	return choices
}

func toJobResponse(job *models.Job) dto.JobResponse {
	resp := dto.JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		JobType:     string(job.JobType),
		CreatedAt:   job.CreatedAt,
	}
	if job.Company != nil {
		resp.Company = dto.CompanySummary{
			ID:       job.Company.ID,
			Username: job.Company.Username,
		}
	} else {
		resp.Company = dto.CompanySummary{ID: job.CompanyID}
	}
	return resp
}

func toJobResponses(jobs []models.Job) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobResponse(&jobs[i]))
	}
	return out
}
