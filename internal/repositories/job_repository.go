package repositories

import (
	"context"
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter holds the optional listing filters. Search matches title,
// description and (for the general listing) the owning company's
// username as a case-insensitive substring; Location is a substring
// match; JobType is exact.
type JobFilter struct {
	Search   string
	Location string
	JobType  models.JobType
	Limit    int
	Offset   int
}

// JobTypeCount is one row of the per-type aggregate.
type JobTypeCount struct {
	JobType models.JobType `json:"job_type"`
	Count   int64          `json:"count"`
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id string) (*models.Job, error)
	// FindByIDForCompany scopes the lookup by owner so a non-owner
	// request is indistinguishable from a missing job.
	FindByIDForCompany(ctx context.Context, id, companyID string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter JobFilter) ([]models.Job, int64, error)
	FindLatest(ctx context.Context, filter JobFilter, limit int) ([]models.Job, error)
	FindByCompany(ctx context.Context, companyID string) ([]models.Job, error)
	FindRelated(ctx context.Context, job *models.Job, limit int) ([]models.Job, error)
	CountAll(ctx context.Context) (int64, error)
	CountDistinctCompanies(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) ([]JobTypeCount, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).Preload("Company").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDForCompany(ctx context.Context, id, companyID string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		First(&job, "id = ? AND company_id = ?", id, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// Delete removes the job and its applications in one transaction.
func (r *JobRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, "id = ?", id).Error
	})
}

// applyFilter builds the WHERE clause shared by Search and FindLatest.
// LOWER(...) LIKE keeps the substring match case-insensitive on both
// supported drivers.
func applyFilter(q *gorm.DB, filter JobFilter, matchCompanyName bool) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		if matchCompanyName {
			q = q.Joins("JOIN users ON users.id = jobs.company_id").
				Where("LOWER(jobs.title) LIKE LOWER(?) OR LOWER(jobs.description) LIKE LOWER(?) OR LOWER(users.username) LIKE LOWER(?)",
					pattern, pattern, pattern)
		} else {
			q = q.Where("LOWER(jobs.title) LIKE LOWER(?) OR LOWER(jobs.description) LIKE LOWER(?)",
				pattern, pattern)
		}
	}
	if filter.Location != "" {
		q = q.Where("LOWER(jobs.location) LIKE LOWER(?)", "%"+filter.Location+"%")
	}
	if filter.JobType != "" {
		q = q.Where("jobs.job_type = ?", filter.JobType)
	}
	return q
}

func (r *JobRepositoryImpl) Search(ctx context.Context, filter JobFilter) ([]models.Job, int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Job{}), filter, true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Job{}), filter, true).
		Preload("Company").
		Order("jobs.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepositoryImpl) FindLatest(ctx context.Context, filter JobFilter, limit int) ([]models.Job, error) {
	var jobs []models.Job
	// Homepage search does not match the company name, following the
	// general behavior of its filter set.
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Job{}), filter, false).
		Preload("Company").
		Order("jobs.created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindRelated(ctx context.Context, job *models.Job, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("(company_id = ? OR job_type = ?) AND id <> ?", job.CompanyID, job.JobType, job.ID).
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) CountDistinctCompanies(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Distinct("company_id").Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) CountByType(ctx context.Context) ([]JobTypeCount, error) {
	var counts []JobTypeCount
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Select("job_type, COUNT(*) AS count").
		Group("job_type").
		Scan(&counts).Error
	return counts, err
}
