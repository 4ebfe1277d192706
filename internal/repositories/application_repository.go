package repositories

import (
	"context"
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application already exists")
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	// FindByIDForApplicant scopes the lookup by owner, collapsing
	// "exists but not yours" into not-found.
	FindByIDForApplicant(ctx context.Context, id, applicantID string) (*models.Application, error)
	ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID string) (bool, error)
	FindByApplicant(ctx context.Context, applicantID string) ([]models.Application, error)
	FindByJob(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	Delete(ctx context.Context, id string) error
	CountForCompany(ctx context.Context, companyID string) (int64, error)
	CountPendingForCompany(ctx context.Context, companyID string) (int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, app *models.Application) error {
	err := r.db.WithContext(ctx).Create(app).Error
	if err != nil {
		// Concurrent double-submit lands here: the unique index on
		// (job_id, applicant_id) rejects the second insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Preload("Job").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByIDForApplicant(ctx context.Context, id, applicantID string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		First(&app, "id = ? AND applicant_id = ?", id, applicantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) FindByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").Preload("Job.Company").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	return r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ApplicationRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id).Error
}

func (r *ApplicationRepositoryImpl) CountForCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountPendingForCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.company_id = ? AND applications.status = ?", companyID, models.ApplicationStatusPending).
		Count(&count).Error
	return count, err
}
