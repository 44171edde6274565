package wire

import (
	"net/http"

	"auditorium-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFeedback(r chi.Router, feedbackHandler *adaptor.FeedbackHandler, authenticated func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/feedback", feedbackHandler.GetAllFeedback)
	r.Get("/api/feedback/{auditoriumId}", feedbackHandler.GetAuditoriumFeedback)

	// ==================== PROTECTED ROUTES ====================
	r.With(authenticated).Post("/api/feedback", feedbackHandler.CreateFeedback)
}
