package usecase

import (
	"context"
	"fmt"

	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/dto/response"
	"auditorium-booking/internal/lifecycle"

	"go.uber.org/zap"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*response.DashboardStats, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*response.DashboardStats, error) {
	auditoriums, err := s.repo.Auditorium.CountAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count auditoriums: %w", err)
	}

	byStatus, err := s.repo.Booking.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	awaiting, err := s.repo.Booking.CountAwaitingPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("count payment requests: %w", err)
	}

	return &response.DashboardStats{
		TotalAuditoriums:  auditoriums,
		PendingRequests:   byStatus[lifecycle.StatusPending],
		CompletedBookings: byStatus[lifecycle.StatusComplete],
		PaymentRequests:   awaiting,
	}, nil
}
