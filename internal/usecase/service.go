package usecase

import (
	"fmt"
	"time"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/notification"
	"auditorium-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Auditorium AuditoriumService
	Booking    BookingService
	Feedback   FeedbackService
	Dashboard  DashboardService
}

// Clock returns the current time in the auditorium's timezone.
type Clock func() time.Time

func NewService(repo *repository.Repository, notifier notification.Notifier, config *utils.Config, log *zap.Logger) *Service {
	loc := config.App.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	return &Service{
		Auth:       NewAuthService(repo, notifier, config, clock, log),
		User:       NewUserService(repo, log),
		Auditorium: NewAuditoriumService(repo, log),
		Booking:    NewBookingService(repo, notifier, clock, log),
		Feedback:   NewFeedbackService(repo, log),
		Dashboard:  NewDashboardService(repo, log),
	}
}

func validationError(errs map[string]string) error {
	return fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s ID", apperror.ErrValidation, what)
	}
	return id, nil
}
