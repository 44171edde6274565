package adaptor

import (
	"net/http"

	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/usecase"
	"auditorium-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Signup(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "signup")
		return
	}

	utils.ResponseSuccess(w, "OTP sent to email", nil)
}

// VerifySignup handles POST /api/verify-otp
func (h *AuthHandler) VerifySignup(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.VerifySignup(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "verify signup")
		return
	}

	utils.ResponseCreated(w, "Account created", user)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	meta := usecase.SessionMeta{
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
	}

	resp, err := h.service.Login(r.Context(), &req, meta)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		handleServiceError(h.log, w, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// CheckExistence handles POST /api/check-existence
func (h *AuthHandler) CheckExistence(w http.ResponseWriter, r *http.Request) {
	var req request.CheckExistenceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.CheckExistence(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "check existence")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// SendResetOTP handles POST /api/send-reset-otp
func (h *AuthHandler) SendResetOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendResetOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.SendResetOTP(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "send reset otp")
		return
	}

	utils.ResponseSuccess(w, "If the email is registered, an OTP has been sent", nil)
}

// VerifyResetOTP handles POST /api/verify-reset-otp
func (h *AuthHandler) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ticket, err := h.service.VerifyResetOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "verify reset otp")
		return
	}

	utils.ResponseSuccess(w, "OTP verified", ticket)
}

// ResetPassword handles POST /api/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password updated", nil)
}
