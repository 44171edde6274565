package wire

import (
	"net/http"

	"auditorium-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, authenticated func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/signup", authHandler.Signup)
	r.Post("/api/verify-otp", authHandler.VerifySignup)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/check-existence", authHandler.CheckExistence)

	// Password reset: OTP, then a short-lived reset ticket
	r.Post("/api/send-reset-otp", authHandler.SendResetOTP)
	r.Post("/api/verify-reset-otp", authHandler.VerifyResetOTP)
	r.Post("/api/reset-password", authHandler.ResetPassword)

	// ==================== PROTECTED ROUTES ====================
	r.With(authenticated).Post("/api/logout", authHandler.Logout)
}
