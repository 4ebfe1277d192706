package services

import (
	"context"
	"errors"

	"jobboard_backend/internal/appErrors"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
)

type DashboardService struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
}

func NewDashboardService(jobRepo repositories.JobRepository, userRepo repositories.UserRepository) *DashboardService {
	return &DashboardService{jobRepo: jobRepo, userRepo: userRepo}
}

// Dashboard composes the landing view for an authenticated user: their
// role, board totals and the latest postings.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	totalJobs, err := s.jobRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalCompanies, err := s.userRepo.CountByRole(ctx, models.UserRoleCompany)
	if err != nil {
		return nil, err
	}

	featured, err := s.jobRepo.FindLatest(ctx, repositories.JobFilter{}, featuredJobCount)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Role:           string(user.Role),
		TotalJobs:      totalJobs,
		TotalCompanies: totalCompanies,
		FeaturedJobs:   toJobResponses(featured),
		JobTypeChoices: jobTypeChoices(),
	}, nil
}
