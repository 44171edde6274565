package wire

import (
	"net/http"

	"auditorium-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuditorium(
	r chi.Router,
	auditoriumHandler *adaptor.AuditoriumHandler,
	bookingHandler *adaptor.BookingHandler,
	authenticated, admin func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/auditoriums", auditoriumHandler.GetAuditoriums)
	r.Get("/api/auditoriums/{id}", auditoriumHandler.GetAuditoriumByID)
	r.Get("/api/auditoriums/{id}/price", auditoriumHandler.GetPrice)

	// Busy slots for one day: ?date=2025-07-01
	r.Get("/api/auditoriums/{id}/bookings", bookingHandler.GetExistingBookings)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/auditoriums", func(r chi.Router) {
		r.Use(authenticated)
		r.Use(admin)

		r.Post("/", auditoriumHandler.CreateAuditorium)
		r.Put("/{id}", auditoriumHandler.UpdateAuditorium)
		r.Delete("/{id}", auditoriumHandler.DeleteAuditorium)
	})
}
