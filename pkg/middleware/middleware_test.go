package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auditorium-booking/internal/data/entity"
	"auditorium-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-jwt-secret"

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepository) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository only records FindByID; the admin check reads nothing else.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return nil, nil
}

func (m *MockUserRepository) ExistsEmailOrPhone(ctx context.Context, email, phone string) (bool, bool, error) {
	return false, false, nil
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *entity.User) error {
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func signedToken(t *testing.T, userID, sessionID uuid.UUID, role string, now time.Time) string {
	t.Helper()
	token, _, err := utils.GenerateToken(utils.JWTConfig{Secret: testSecret, ExpiryHours: 1}, userID, sessionID, role, now)
	require.NoError(t, err)
	return token
}

// echoUser writes the authenticated user and role back so tests can see the context.
func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := utils.GetUserIDFromContext(r.Context())
		role, _ := utils.GetRoleFromContext(r.Context())
		sid, _ := utils.GetSessionIDFromContext(r.Context())
		utils.ResponseSuccess(w, "ok", map[string]string{
			"user_id":    userID.String(),
			"role":       role,
			"session_id": sid.String(),
		})
	})
}

func TestAuth_ValidSession(t *testing.T) {
	sessions := new(MockSessionRepository)
	userID, sid := uuid.New(), uuid.New()
	sessions.On("FindValidSession", mock.Anything, sid).Return(&entity.Session{UserID: userID, Token: sid}, nil)

	h := Auth(testSecret, sessions, zap.NewNop())(echoUser())
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID, sid, "user", time.Now()))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body.Data["user_id"])
	assert.Equal(t, "user", body.Data["role"])
	assert.Equal(t, sid.String(), body.Data["session_id"])
}

func TestAuth_Rejections(t *testing.T) {
	userID, sid := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		header  func(t *testing.T) string
		session *entity.Session
	}{
		{name: "missing header", header: func(t *testing.T) string { return "" }},
		{name: "wrong scheme", header: func(t *testing.T) string {
			return "Token " + signedToken(t, userID, sid, "user", time.Now())
		}},
		{name: "garbage token", header: func(t *testing.T) string { return "Bearer not.a.jwt" }},
		{name: "expired token", header: func(t *testing.T) string {
			return "Bearer " + signedToken(t, userID, sid, "user", time.Now().Add(-2*time.Hour))
		}},
		{name: "revoked session", header: func(t *testing.T) string {
			return "Bearer " + signedToken(t, userID, sid, "user", time.Now())
		}},
		{name: "session of another user", header: func(t *testing.T) string {
			return "Bearer " + signedToken(t, userID, sid, "user", time.Now())
		}, session: &entity.Session{UserID: uuid.New()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(MockSessionRepository)
			if tt.session != nil {
				sessions.On("FindValidSession", mock.Anything, sid).Return(tt.session, nil)
			} else {
				sessions.On("FindValidSession", mock.Anything, sid).Return(nil, nil)
			}

			h := Auth(testSecret, sessions, zap.NewNop())(echoUser())
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if hdr := tt.header(t); hdr != "" {
				req.Header.Set("Authorization", hdr)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *entity.User
		want int
	}{
		{name: "admin", user: &entity.User{Role: entity.RoleAdmin, IsActive: true}, want: http.StatusOK},
		{name: "regular user", user: &entity.User{Role: entity.RoleUser, IsActive: true}, want: http.StatusForbidden},
		{name: "deleted user", user: nil, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			userID := uuid.New()
			if tt.user != nil {
				users.On("FindByID", mock.Anything, userID).Return(tt.user, nil)
			} else {
				users.On("FindByID", mock.Anything, userID).Return(nil, nil)
			}

			h := Admin(users, zap.NewNop())(echoUser())
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			req = req.WithContext(utils.SetUserContext(req.Context(), userID, "admin"))
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAdmin_Unauthenticated(t *testing.T) {
	h := Admin(new(MockUserRepository), zap.NewNop())(echoUser())
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_AllowList(t *testing.T) {
	h := CORS(CORSConfig{AllowOrigins: []string{"https://app.example.com"}})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	allowed := httptest.NewRequest(http.MethodGet, "/", nil)
	allowed.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, allowed)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, other)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestLogger_PassesThroughStatus(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "missing")
	}))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
