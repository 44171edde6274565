package middleware

import (
	"errors"
	"net/http"
	"strings"

	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/pkg/utils"

	"go.uber.org/zap"
)

// Auth accepts a bearer JWT only while the session named by its jti is
// still valid, so logout takes effect before the token expires.
func Auth(secret string, sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseToken(secret, strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					utils.ResponseUnauthorized(w, "Token expired")
					return
				}
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}
			sessionID, err := claims.SessionID()
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), sessionID)
			if err != nil {
				logger.Error("Failed to validate session",
					zap.String("session_id", sessionID.String()),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil || session.UserID != userID {
				logger.Warn("Invalid or expired session", zap.String("session_id", sessionID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			ctx = utils.SetSessionContext(ctx, sessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin re-reads the role from the database rather than trusting the token.
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Admin check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || user.Role != entity.RoleAdmin || !user.IsActive {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
