package usecase

import (
	"context"
	"time"

	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/lifecycle"
	"auditorium-booking/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsEmailOrPhone(ctx context.Context, email, phone string) (bool, bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
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

type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) Save(ctx context.Context, otp *entity.OTP, ttl time.Duration) error {
	return m.Called(ctx, otp, ttl).Error(0)
}

func (m *MockOTPRepository) Verify(ctx context.Context, purpose entity.OTPPurpose, email, code string) (*entity.OTP, error) {
	args := m.Called(ctx, purpose, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OTP), args.Error(1)
}

func (m *MockOTPRepository) Delete(ctx context.Context, purpose entity.OTPPurpose, email string) error {
	return m.Called(ctx, purpose, email).Error(0)
}

func (m *MockOTPRepository) SaveResetTicket(ctx context.Context, email, ticket string, ttl time.Duration) error {
	return m.Called(ctx, email, ticket, ttl).Error(0)
}

func (m *MockOTPRepository) ConsumeResetTicket(ctx context.Context, email, ticket string) error {
	return m.Called(ctx, email, ticket).Error(0)
}

type MockAuditoriumRepository struct {
	mock.Mock
}

func (m *MockAuditoriumRepository) Create(ctx context.Context, a *entity.Auditorium) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAuditoriumRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Auditorium), args.Error(1)
}

func (m *MockAuditoriumRepository) FindAll(ctx context.Context, limit, offset int, search *string) ([]*entity.Auditorium, error) {
	args := m.Called(ctx, limit, offset, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Auditorium), args.Error(1)
}

func (m *MockAuditoriumRepository) CountAll(ctx context.Context, search *string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditoriumRepository) Update(ctx context.Context, a *entity.Auditorium) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAuditoriumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, status *lifecycle.Status, limit, offset int) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) CountAll(ctx context.Context, status *lifecycle.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) FindActiveByAuditorium(ctx context.Context, auditoriumID uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, auditoriumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindSweepCandidates(ctx context.Context) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) SaveTransition(ctx context.Context, id uuid.UUID, expected lifecycle.Status, t entity.BookingTransition) error {
	return m.Called(ctx, id, expected, t).Error(0)
}

func (m *MockBookingRepository) RecordPayment(ctx context.Context, p *entity.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context) (map[lifecycle.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[lifecycle.Status]int64), args.Error(1)
}

func (m *MockBookingRepository) CountAwaitingPayment(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, f *entity.Feedback) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFeedbackRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.FeedbackDetail, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FeedbackDetail), args.Error(1)
}

func (m *MockFeedbackRepository) FindByAuditoriumID(ctx context.Context, auditoriumID uuid.UUID, limit, offset int) ([]*entity.FeedbackDetail, error) {
	args := m.Called(ctx, auditoriumID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FeedbackDetail), args.Error(1)
}

func (m *MockFeedbackRepository) CountAll(ctx context.Context, auditoriumID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, auditoriumID)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, msg notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}
