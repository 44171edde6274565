package adaptor

import (
	"net/http"

	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/usecase"
	"auditorium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FeedbackHandler struct {
	service usecase.FeedbackService
	log     *zap.Logger
}

func NewFeedbackHandler(service usecase.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log.With(zap.String("handler", "feedback")),
	}
}

// CreateFeedback handles POST /api/feedback (protected)
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateFeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	feedback, err := h.service.CreateFeedback(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create feedback")
		return
	}

	utils.ResponseCreated(w, "Feedback submitted", feedback)
}

// GetAllFeedback handles GET /api/feedback
func (h *FeedbackHandler) GetAllFeedback(w http.ResponseWriter, r *http.Request) {
	req := parsePagination(r)

	feedback, err := h.service.GetAllFeedback(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "get feedback")
		return
	}

	utils.ResponseSuccess(w, "success", feedback)
}

// GetAuditoriumFeedback handles GET /api/feedback/{auditoriumId}
func (h *FeedbackHandler) GetAuditoriumFeedback(w http.ResponseWriter, r *http.Request) {
	req := parsePagination(r)

	feedback, err := h.service.GetAuditoriumFeedback(r.Context(), chi.URLParam(r, "auditoriumId"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "get auditorium feedback")
		return
	}

	utils.ResponseSuccess(w, "success", feedback)
}
