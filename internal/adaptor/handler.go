package adaptor

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/usecase"
	"auditorium-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Auditorium *AuditoriumHandler
	Booking    *BookingHandler
	Feedback   *FeedbackHandler
	Dashboard  *DashboardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Auditorium: NewAuditoriumHandler(service.Auditorium, log),
		Booking:    NewBookingHandler(service.Booking, log),
		Feedback:   NewFeedbackHandler(service.Feedback, log),
		Dashboard:  NewDashboardHandler(service.Dashboard, log),
	}
}

// decodeAndValidate writes the 400 response itself and reports whether the
// handler should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

func parsePagination(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// handleServiceError maps the apperror taxonomy onto HTTP status codes.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	msg := err.Error()

	switch {
	case errors.Is(err, apperror.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	case errors.Is(err, apperror.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, msg)

	case errors.Is(err, apperror.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, msg)

	case errors.Is(err, apperror.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	case errors.Is(err, apperror.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, msg)

	case errors.Is(err, apperror.ErrDelivery):
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Failed to deliver notification")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
