package wire

import (
	"net/http"

	"auditorium-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, authenticated, admin func(http.Handler) http.Handler) {
	// ==================== PROTECTED USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(authenticated)

		r.Get("/api/me", userHandler.GetProfile)
		r.Put("/api/user/update", userHandler.UpdateProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(authenticated, admin).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)       // GET /api/admin/users?page=1&per_page=10
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/admin/users/{user-id}
	})
}
