package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"jobboard_backend/internal/appErrors"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"

	"github.com/google/uuid"
)

// ResumeUpload carries an uploaded resume into Apply. Nil means the
// applicant attached nothing.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type ApplicationService struct {
	appRepo  repositories.ApplicationRepository
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	store    storage.Storage
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
) *ApplicationService {
	return &ApplicationService{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		store:    store,
	}
}

// Apply submits an application for the job. Company accounts are
// rejected, as is a second application by the same seeker. The
// existence pre-check only shapes the message; the unique index on
// (job_id, applicant_id) is what actually prevents a concurrent
// double-submit.
func (s *ApplicationService) Apply(ctx context.Context, jobID, applicantID, coverLetter string, resume *ResumeUpload) (*dto.ApplicationResponse, error) {
	applicant, err := s.userRepo.FindByID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	if applicant.IsCompany() {
		return nil, appErrors.ErrCompaniesCannotApply
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, err
	}

	exists, err := s.appRepo.ExistsForJobAndApplicant(ctx, job.ID, applicant.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErrors.ErrAlreadyApplied
	}

	resumePath := ""
	if resume != nil {
		resumePath, err = s.storeResume(ctx, resume)
		if err != nil {
			return nil, err
		}
	}

	app := &models.Application{
		JobID:       job.ID,
		ApplicantID: applicant.ID,
		CoverLetter: coverLetter,
		ResumePath:  resumePath,
		Status:      models.ApplicationStatusPending,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		if resumePath != "" {
			if delErr := s.store.Delete(ctx, resumePath); delErr != nil {
				logger.CtxWarn(ctx, "failed to clean up resume after rejected application", "path", resumePath, "error", delErr)
			}
		}
		if errors.Is(err, repositories.ErrApplicationAlreadyExists) {
			return nil, appErrors.ErrAlreadyApplied
		}
		return nil, err
	}

	logger.CtxInfo(ctx, "application submitted", "application_id", app.ID, "job_id", job.ID)

	app.Job = job
	app.Applicant = applicant
	resp := s.toApplicationResponse(ctx, app, false)
	return &resp, nil
}

// MyApplications lists the seeker's own applications.
func (s *ApplicationService) MyApplications(ctx context.Context, applicantID string) ([]dto.ApplicationResponse, error) {
	applicant, err := s.userRepo.FindByID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	if applicant.IsCompany() {
		return nil, appErrors.ErrSeekerRoleRequired
	}

	apps, err := s.appRepo.FindByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, s.toApplicationResponse(ctx, &apps[i], false))
	}
	return out, nil
}

// ListApplicants returns every application for the job. Only the
// owning company may look.
func (s *ApplicationService) ListApplicants(ctx context.Context, jobID, requesterID string) (*dto.ApplicantsListResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, err
	}

	if job.CompanyID != requesterID {
		return nil, appErrors.NewForbiddenError("You don't have permission to view this")
	}

	apps, err := s.appRepo.FindByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ApplicantsListResponse{
		Job: dto.JobSummary{
			ID:       job.ID,
			Title:    job.Title,
			Location: job.Location,
			JobType:  string(job.JobType),
		},
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, s.toApplicationResponse(ctx, &apps[i], true))
	}
	return resp, nil
}

// UpdateStatus overwrites the application status. Only the company
// owning the parent job may do this, and only with one of the four
// known values. No transition history is kept.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, requesterID string, status string) error {
	newStatus := models.ApplicationStatus(status)
	if !newStatus.Valid() {
		return appErrors.ErrInvalidApplicationStatus
	}

	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return appErrors.ErrApplicationNotFound
		}
		return err
	}

	job := app.Job
	if job == nil {
		job, err = s.jobRepo.FindByID(ctx, app.JobID)
		if err != nil {
			return err
		}
	}

	if job.CompanyID != requesterID {
		return appErrors.NewForbiddenError("You don't have permission to do this")
	}

	return s.appRepo.UpdateStatus(ctx, app.ID, newStatus)
}

// Withdraw hard-deletes the application. Applicant only (scoped
// lookup), and only while it is still pending.
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, requesterID string) error {
	app, err := s.appRepo.FindByIDForApplicant(ctx, applicationID, requesterID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return appErrors.ErrApplicationNotFound
		}
		return err
	}

	if app.Status != models.ApplicationStatusPending {
		return appErrors.ErrApplicationNotPending
	}

	if err := s.appRepo.Delete(ctx, app.ID); err != nil {
		return err
	}

	if app.ResumePath != "" {
		if err := s.store.Delete(ctx, app.ResumePath); err != nil {
			logger.CtxWarn(ctx, "failed to delete resume of withdrawn application", "path", app.ResumePath, "error", err)
		}
	}
	return nil
}

func (s *ApplicationService) storeResume(ctx context.Context, resume *ResumeUpload) (string, error) {
	cfg := config.GetConfig()

	if resume.Size > cfg.Upload.MaxSize {
		return "", appErrors.NewBadRequestError(
			fmt.Sprintf("Resume exceeds the maximum size of %d bytes", cfg.Upload.MaxSize))
	}

	allowed := false
	for _, t := range cfg.Upload.AllowedTypes {
		if resume.ContentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", appErrors.NewBadRequestError("Resume must be a PDF or Word document")
	}

	path := fmt.Sprintf("resumes/%s/%s", uuid.NewString(), filepath.Base(resume.Filename))
	if err := s.store.Save(ctx, path, resume.Reader, resume.ContentType); err != nil {
		return "", appErrors.Wrap(err, appErrors.CodeStorageError, "Failed to store resume", 500)
	}
	return path, nil
}

func (s *ApplicationService) toApplicationResponse(ctx context.Context, app *models.Application, withApplicant bool) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:          app.ID,
		CoverLetter: app.CoverLetter,
		Status:      string(app.Status),
		CreatedAt:   app.CreatedAt,
	}

	if app.Job != nil {
		resp.Job = dto.JobSummary{
			ID:       app.Job.ID,
			Title:    app.Job.Title,
			Location: app.Job.Location,
			JobType:  string(app.Job.JobType),
		}
		if app.Job.Company != nil {
			resp.Job.Company = app.Job.Company.Username
		}
	} else {
		resp.Job = dto.JobSummary{ID: app.JobID}
	}

	if withApplicant && app.Applicant != nil {
		resp.Applicant = &dto.ApplicantSummary{
			ID:       app.Applicant.ID,
			Username: app.Applicant.Username,
			Email:    app.Applicant.Email,
		}
	}

	if app.ResumePath != "" {
		url, err := s.store.GetSignedURL(ctx, app.ResumePath, 15*time.Minute)
		if err != nil {
			logger.CtxWarn(ctx, "failed to sign resume URL", "path", app.ResumePath, "error", err)
		} else {
			resp.ResumeURL = url
		}
	}

	return resp
}
