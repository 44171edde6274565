package wire

import (
	"net/http"

	"auditorium-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, authenticated, admin func(http.Handler) http.Handler) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(authenticated)

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// Owner only; the service checks the booking belongs to the caller
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
		r.Post("/api/bookings/{id}/pay", bookingHandler.PayBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(authenticated)
		r.Use(admin)

		r.Get("/", bookingHandler.GetAllBookings) // ?status=pending&page=1
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Put("/{id}/review", bookingHandler.ReviewBooking)
	})
}
