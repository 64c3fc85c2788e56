package service

import (
	"context"

	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/repository"
)

// DashboardService assembles the admin dashboard analytics.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
	}
}

// GetDashboardData returns the current dashboard aggregates.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*models.DashboardData, error) {
	return s.dashboardRepo.GetStats(ctx)
}
