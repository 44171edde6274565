package usecase

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/notification"
	"auditorium-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var authNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type authFixture struct {
	users    *MockUserRepository
	sessions *MockSessionRepository
	otps     *MockOTPRepository
	notifier *MockNotifier
	config   *utils.Config
	svc      AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    new(MockUserRepository),
		sessions: new(MockSessionRepository),
		otps:     new(MockOTPRepository),
		notifier: new(MockNotifier),
		config: &utils.Config{
			JWT: utils.JWTConfig{Secret: "test-jwt-secret", ExpiryHours: 24},
			OTP: utils.OTPConfig{
				Length:         6,
				SignupTTL:      10 * time.Minute,
				ResetTTL:       3 * time.Minute,
				ResetTicketTTL: 10 * time.Minute,
			},
		},
	}
	repo := &repository.Repository{
		User:    f.users,
		Session: f.sessions,
		OTP:     f.otps,
	}
	f.svc = NewAuthService(repo, f.notifier, f.config, func() time.Time { return authNow }, zap.NewNop())
	return f
}

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func signupRequest() *request.SignupRequest {
	return &request.SignupRequest{
		Name:     "Ayu Lestari",
		Email:    "Ayu@Example.com",
		Phone:    "081234567890",
		Password: "secret123",
	}
}

func TestAuthService_Signup_SendsOTP(t *testing.T) {
	f := newAuthFixture()

	f.users.On("ExistsEmailOrPhone", mock.Anything, "ayu@example.com", "081234567890").Return(false, false, nil)
	f.otps.On("Save", mock.Anything, mock.MatchedBy(func(o *entity.OTP) bool {
		return o.Purpose == entity.OTPPurposeSignup &&
			o.Email == "ayu@example.com" &&
			sixDigits.MatchString(o.Code) &&
			o.Signup != nil &&
			o.Signup.Name == "Ayu Lestari" &&
			utils.CheckPasswordHash("secret123", o.Signup.PasswordHash)
	}), 10*time.Minute).Return(nil)
	f.notifier.On("Send", mock.Anything, mock.MatchedBy(func(m notification.Message) bool {
		return m.To == "ayu@example.com" && regexp.MustCompile(`code is \d{6}\. It expires in 10 minutes`).MatchString(m.Body)
	})).Return(nil)

	err := f.svc.Signup(context.Background(), signupRequest())

	require.NoError(t, err)
	f.otps.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestAuthService_Signup_Taken(t *testing.T) {
	tests := []struct {
		name       string
		emailTaken bool
		phoneTaken bool
	}{
		{name: "email", emailTaken: true},
		{name: "phone", phoneTaken: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			f.users.On("ExistsEmailOrPhone", mock.Anything, mock.Anything, mock.Anything).
				Return(tt.emailTaken, tt.phoneTaken, nil)

			err := f.svc.Signup(context.Background(), signupRequest())

			assert.ErrorIs(t, err, apperror.ErrConflict)
			f.otps.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Signup_DeliveryFailureDropsOTP(t *testing.T) {
	f := newAuthFixture()
	f.users.On("ExistsEmailOrPhone", mock.Anything, mock.Anything, mock.Anything).Return(false, false, nil)
	f.otps.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Send", mock.Anything, mock.Anything).Return(fmt.Errorf("smtp down"))
	f.otps.On("Delete", mock.Anything, entity.OTPPurposeSignup, "ayu@example.com").Return(nil)

	err := f.svc.Signup(context.Background(), signupRequest())

	assert.ErrorIs(t, err, apperror.ErrDelivery)
	f.otps.AssertExpectations(t)
}

func TestAuthService_Signup_Invalid(t *testing.T) {
	f := newAuthFixture()
	req := signupRequest()
	req.Phone = "12ab"

	err := f.svc.Signup(context.Background(), req)

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAuthService_VerifySignup_CreatesUser(t *testing.T) {
	f := newAuthFixture()
	otp := &entity.OTP{
		Purpose: entity.OTPPurposeSignup,
		Email:   "ayu@example.com",
		Signup: &entity.SignupPayload{
			Name:         "Ayu Lestari",
			Email:        "ayu@example.com",
			Phone:        "081234567890",
			PasswordHash: "hash",
		},
	}
	f.otps.On("Verify", mock.Anything, entity.OTPPurposeSignup, "ayu@example.com", "123456").Return(otp, nil)
	f.users.On("ExistsEmailOrPhone", mock.Anything, "ayu@example.com", "081234567890").Return(false, false, nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleUser && u.IsActive && u.PasswordHash == "hash" && u.CreatedAt.Equal(authNow)
	})).Return(nil)

	resp, err := f.svc.VerifySignup(context.Background(), &request.VerifyOTPRequest{Email: "ayu@example.com", OTP: "123456"})

	require.NoError(t, err)
	assert.Equal(t, "Ayu Lestari", resp.Name)
	assert.Equal(t, entity.RoleUser, resp.Role)
	f.users.AssertExpectations(t)
}

func TestAuthService_VerifySignup_WrongCode(t *testing.T) {
	f := newAuthFixture()
	f.otps.On("Verify", mock.Anything, entity.OTPPurposeSignup, "ayu@example.com", "000000").
		Return(nil, fmt.Errorf("%w: invalid OTP", apperror.ErrValidation))

	_, err := f.svc.VerifySignup(context.Background(), &request.VerifyOTPRequest{Email: "ayu@example.com", OTP: "000000"})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func testUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Name:         "Ayu",
		Email:        "ayu@example.com",
		PasswordHash: hash,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
}

func TestAuthService_Login_IssuesToken(t *testing.T) {
	f := newAuthFixture()
	// tokens are checked against the wall clock when parsed
	now := time.Now()
	f.svc = NewAuthService(&repository.Repository{User: f.users, Session: f.sessions},
		f.notifier, f.config, func() time.Time { return now }, zap.NewNop())

	user := testUser(t, "secret123")
	var session *entity.Session
	f.users.On("FindByEmail", mock.Anything, "ayu@example.com").Return(user, nil)
	f.sessions.On("Create", mock.Anything, mock.AnythingOfType("*entity.Session")).
		Run(func(args mock.Arguments) { session = args.Get(1).(*entity.Session) }).
		Return(nil)

	resp, err := f.svc.Login(context.Background(),
		&request.LoginRequest{Email: "AYU@example.com", Password: "secret123"},
		SessionMeta{UserAgent: "test", IPAddress: "127.0.0.1"})

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "127.0.0.1", *session.IPAddress)

	claims, err := utils.ParseToken("test-jwt-secret", resp.Token)
	require.NoError(t, err)
	sid, err := claims.SessionID()
	require.NoError(t, err)
	assert.Equal(t, session.Token, sid)
	assert.Equal(t, "user", claims.Role)
}

func TestAuthService_Login_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		user     func(t *testing.T) *entity.User
		password string
		wantErr  error
	}{
		{
			name:     "unknown email",
			user:     func(t *testing.T) *entity.User { return nil },
			password: "secret123",
			wantErr:  apperror.ErrUnauthorized,
		},
		{
			name:     "wrong password",
			user:     func(t *testing.T) *entity.User { return testUser(t, "secret123") },
			password: "nope",
			wantErr:  apperror.ErrUnauthorized,
		},
		{
			name: "inactive",
			user: func(t *testing.T) *entity.User {
				u := testUser(t, "secret123")
				u.IsActive = false
				return u
			},
			password: "secret123",
			wantErr:  apperror.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			u := tt.user(t)
			if u == nil {
				f.users.On("FindByEmail", mock.Anything, "ayu@example.com").Return(nil, nil)
			} else {
				f.users.On("FindByEmail", mock.Anything, "ayu@example.com").Return(u, nil)
			}

			_, err := f.svc.Login(context.Background(),
				&request.LoginRequest{Email: "ayu@example.com", Password: tt.password}, SessionMeta{})

			assert.ErrorIs(t, err, tt.wantErr)
			f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_CheckExistence(t *testing.T) {
	f := newAuthFixture()
	f.users.On("ExistsEmailOrPhone", mock.Anything, "ayu@example.com", "081234567890").Return(true, false, nil)

	resp, err := f.svc.CheckExistence(context.Background(),
		&request.CheckExistenceRequest{Email: "ayu@example.com", Phone: "081234567890"})

	require.NoError(t, err)
	assert.False(t, resp.EmailAvailable)
	assert.True(t, resp.PhoneAvailable)
}

func TestAuthService_SendResetOTP_UnknownEmail(t *testing.T) {
	f := newAuthFixture()
	f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	err := f.svc.SendResetOTP(context.Background(), &request.SendResetOTPRequest{Email: "ghost@example.com"})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	f.otps.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ResetFlow(t *testing.T) {
	f := newAuthFixture()
	user := testUser(t, "old-password")

	f.users.On("FindByEmail", mock.Anything, "ayu@example.com").Return(user, nil)
	f.otps.On("Save", mock.Anything, mock.MatchedBy(func(o *entity.OTP) bool {
		return o.Purpose == entity.OTPPurposeReset && o.Signup == nil
	}), 3*time.Minute).Return(nil)
	f.notifier.On("Send", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.SendResetOTP(context.Background(), &request.SendResetOTPRequest{Email: "ayu@example.com"}))

	var ticket string
	f.otps.On("Verify", mock.Anything, entity.OTPPurposeReset, "ayu@example.com", "654321").
		Return(&entity.OTP{Purpose: entity.OTPPurposeReset, Email: "ayu@example.com"}, nil)
	f.otps.On("SaveResetTicket", mock.Anything, "ayu@example.com", mock.AnythingOfType("string"), 10*time.Minute).
		Run(func(args mock.Arguments) { ticket = args.String(2) }).
		Return(nil)

	tr, err := f.svc.VerifyResetOTP(context.Background(), &request.VerifyOTPRequest{Email: "ayu@example.com", OTP: "654321"})
	require.NoError(t, err)
	assert.Equal(t, ticket, tr.ResetToken)
	assert.Equal(t, authNow.Add(10*time.Minute), tr.ExpiresAt)

	f.otps.On("ConsumeResetTicket", mock.Anything, "ayu@example.com", ticket).Return(nil)
	f.users.On("UpdatePassword", mock.Anything, user.ID, mock.MatchedBy(func(hash string) bool {
		return utils.CheckPasswordHash("new-password", hash)
	})).Return(nil)
	f.sessions.On("RevokeAllUserSessions", mock.Anything, user.ID).Return(nil)

	err = f.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:       "ayu@example.com",
		ResetToken:  ticket,
		NewPassword: "new-password",
	})

	require.NoError(t, err)
	f.users.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
	f.otps.AssertExpectations(t)
}

func TestAuthService_ResetPassword_BadTicket(t *testing.T) {
	f := newAuthFixture()
	f.otps.On("ConsumeResetTicket", mock.Anything, "ayu@example.com", "forged").
		Return(fmt.Errorf("%w: invalid reset ticket", apperror.ErrValidation))

	err := f.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:       "ayu@example.com",
		ResetToken:  "forged",
		NewPassword: "new-password",
	})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture()
	sid := uuid.New()
	f.sessions.On("Revoke", mock.Anything, sid).Return(nil)

	assert.NoError(t, f.svc.Logout(context.Background(), sid))
	f.sessions.AssertExpectations(t)
}
