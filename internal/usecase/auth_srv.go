package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/dto/response"
	"auditorium-booking/internal/notification"
	"auditorium-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) error
	VerifySignup(ctx context.Context, req *request.VerifyOTPRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	CheckExistence(ctx context.Context, req *request.CheckExistenceRequest) (*response.ExistenceResponse, error)
	SendResetOTP(ctx context.Context, req *request.SendResetOTPRequest) error
	VerifyResetOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.ResetTicketResponse, error)
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

// SessionMeta is recorded with a session for the account's audit trail.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type authService struct {
	repo     *repository.Repository
	notifier notification.Notifier
	config   *utils.Config
	now      Clock
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	notifier notification.Notifier,
	config *utils.Config,
	now Clock,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		notifier: notifier,
		config:   config,
		now:      now,
		log:      log.With(zap.String("service", "auth")),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return validationError(errs)
	}
	email := normalizeEmail(req.Email)

	emailTaken, phoneTaken, err := s.repo.User.ExistsEmailOrPhone(ctx, email, req.Phone)
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if emailTaken {
		return fmt.Errorf("%w: email already registered", apperror.ErrConflict)
	}
	if phoneTaken {
		return fmt.Errorf("%w: phone already registered", apperror.ErrConflict)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password: %w", err)
	}

	otp := &entity.OTP{
		Purpose: entity.OTPPurposeSignup,
		Email:   email,
		Signup: &entity.SignupPayload{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			Phone:        req.Phone,
			PasswordHash: hash,
		},
	}
	if err := s.issueOTP(ctx, otp, s.config.OTP.SignupTTL, "Verify your account"); err != nil {
		return err
	}

	s.log.Info("Signup OTP sent", zap.String("email", email))
	return nil
}

func (s *authService) VerifySignup(ctx context.Context, req *request.VerifyOTPRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	email := normalizeEmail(req.Email)

	otp, err := s.repo.OTP.Verify(ctx, entity.OTPPurposeSignup, email, req.OTP)
	if err != nil {
		return nil, err
	}
	if otp.Signup == nil {
		return nil, fmt.Errorf("%w: signup data missing for %s", apperror.ErrValidation, email)
	}

	// the address or phone may have been claimed while the code was pending
	emailTaken, phoneTaken, err := s.repo.User.ExistsEmailOrPhone(ctx, email, otp.Signup.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}
	if emailTaken || phoneTaken {
		return nil, fmt.Errorf("%w: email or phone already registered", apperror.ErrConflict)
	}

	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         otp.Signup.Name,
		Email:        email,
		Phone:        otp.Signup.Phone,
		PasswordHash: otp.Signup.PasswordHash,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%w: account is deactivated", apperror.ErrForbidden)
	}

	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour),
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, expiresAt, err := utils.GenerateToken(s.config.JWT, user.ID, session.Token, string(user.Role), now)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", session.Token.String()))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	s.log.Info("Session revoked", zap.String("session_id", sessionID.String()))
	return nil
}

func (s *authService) CheckExistence(ctx context.Context, req *request.CheckExistenceRequest) (*response.ExistenceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	emailTaken, phoneTaken, err := s.repo.User.ExistsEmailOrPhone(ctx, normalizeEmail(req.Email), req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}

	return &response.ExistenceResponse{
		EmailAvailable: !emailTaken,
		PhoneAvailable: !phoneTaken,
	}, nil
}

func (s *authService) SendResetOTP(ctx context.Context, req *request.SendResetOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	email := normalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: no account for %s", apperror.ErrNotFound, email)
	}

	otp := &entity.OTP{Purpose: entity.OTPPurposeReset, Email: email}
	if err := s.issueOTP(ctx, otp, s.config.OTP.ResetTTL, "Reset your password"); err != nil {
		return err
	}

	s.log.Info("Reset OTP sent", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) VerifyResetOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.ResetTicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	email := normalizeEmail(req.Email)

	if _, err := s.repo.OTP.Verify(ctx, entity.OTPPurposeReset, email, req.OTP); err != nil {
		return nil, err
	}

	ticket := uuid.NewString()
	ttl := s.config.OTP.ResetTicketTTL
	if err := s.repo.OTP.SaveResetTicket(ctx, email, ticket, ttl); err != nil {
		return nil, fmt.Errorf("failed to issue reset ticket: %w", err)
	}

	return &response.ResetTicketResponse{
		ResetToken: ticket,
		ExpiresAt:  s.now().Add(ttl),
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	email := normalizeEmail(req.Email)

	if err := s.repo.OTP.ConsumeResetTicket(ctx, email, req.ResetToken); err != nil {
		return err
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: no account for %s", apperror.ErrNotFound, email)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to process password: %w", err)
	}
	if err := s.repo.User.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
		s.log.Warn("Failed to revoke sessions after password reset",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

// issueOTP stores a fresh code for otp and mails it. The stored code is
// dropped again when delivery fails so the user can ask for a new one.
func (s *authService) issueOTP(ctx context.Context, otp *entity.OTP, ttl time.Duration, subject string) error {
	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		s.log.Error("Failed to generate OTP", zap.Error(err))
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	otp.Code = code
	otp.CreatedAt = s.now()

	if err := s.repo.OTP.Save(ctx, otp, ttl); err != nil {
		return err
	}

	msg := notification.Message{
		To:      otp.Email,
		Subject: subject,
		Body: fmt.Sprintf("Your verification code is %s. It expires in %s.\n",
			code, formatTTL(ttl)),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		if delErr := s.repo.OTP.Delete(ctx, otp.Purpose, otp.Email); delErr != nil {
			s.log.Warn("Failed to drop undelivered OTP", zap.Error(delErr))
		}
		if !errors.Is(err, apperror.ErrDelivery) {
			err = fmt.Errorf("%w: %w", apperror.ErrDelivery, err)
		}
		return err
	}

	return nil
}

func formatTTL(d time.Duration) string {
	if d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}
