package wire

import (
	"auditorium-booking/internal/adaptor"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/notification"
	"auditorium-booking/internal/usecase"
	"auditorium-booking/pkg/middleware"
	"auditorium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router from the shared repositories.
func Wiring(
	repo *repository.Repository,
	notifier notification.Notifier,
	checks map[string]adaptor.HealthCheck,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, notifier, config, logger)
	handler := adaptor.NewHandler(service, logger)
	health := adaptor.NewHealthHandler(checks, logger)

	return &App{
		Router:  setupRouter(handler, health, repo, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	health *adaptor.HealthHandler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	authenticated := middleware.Auth(config.JWT.Secret, repo.Session, logger)
	admin := middleware.Admin(repo.User, logger)

	wireAuth(r, handler.Auth, authenticated)
	wireUser(r, handler.User, authenticated, admin)
	wireAuditorium(r, handler.Auditorium, handler.Booking, authenticated, admin)
	wireBooking(r, handler.Booking, authenticated, admin)
	wireFeedback(r, handler.Feedback, authenticated)
	wireDashboard(r, handler.Dashboard, authenticated, admin)

	r.Get("/health", health.Health)

	return r
}
