package adaptor

import (
	"context"

	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/dto/response"
	"auditorium-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req *request.SignupRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthService) VerifySignup(ctx context.Context, req *request.VerifyOTPRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.UserResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *request.LoginRequest, meta usecase.SessionMeta) (*response.AuthResponse, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockAuthService) CheckExistence(ctx context.Context, req *request.CheckExistenceRequest) (*response.ExistenceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ExistenceResponse), args.Error(1)
}

func (m *MockAuthService) SendResetOTP(ctx context.Context, req *request.SendResetOTPRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthService) VerifyResetOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.ResetTicketResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ResetTicketResponse), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditoriumService struct {
	mock.Mock
}

func (m *MockAuditoriumService) GetAuditoriums(ctx context.Context, req *request.AuditoriumListRequest) (*response.PaginatedResponse[response.AuditoriumResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.AuditoriumResponse]), args.Error(1)
}

func (m *MockAuditoriumService) GetAuditoriumByID(ctx context.Context, auditoriumID string) (*response.AuditoriumResponse, error) {
	args := m.Called(ctx, auditoriumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AuditoriumResponse), args.Error(1)
}

func (m *MockAuditoriumService) GetPrice(ctx context.Context, auditoriumID string) (*response.PriceResponse, error) {
	args := m.Called(ctx, auditoriumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PriceResponse), args.Error(1)
}

func (m *MockAuditoriumService) CreateAuditorium(ctx context.Context, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AuditoriumResponse), args.Error(1)
}

func (m *MockAuditoriumService) UpdateAuditorium(ctx context.Context, auditoriumID string, req *request.UpdateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	args := m.Called(ctx, auditoriumID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AuditoriumResponse), args.Error(1)
}

func (m *MockAuditoriumService) DeleteAuditorium(ctx context.Context, auditoriumID string) error {
	return m.Called(ctx, auditoriumID).Error(0)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) GetExistingBookings(ctx context.Context, auditoriumID, date string) ([]response.BusySlotResponse, error) {
	args := m.Called(ctx, auditoriumID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.BusySlotResponse), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.CancellationResponse, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.CancellationResponse), args.Error(1)
}

func (m *MockBookingService) PayBooking(ctx context.Context, userID uuid.UUID, bookingID string, req *request.PayBookingRequest) (*response.PaymentResponse, error) {
	args := m.Called(ctx, userID, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaymentResponse), args.Error(1)
}

func (m *MockBookingService) GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) ReviewBooking(ctx context.Context, bookingID string, req *request.ReviewBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) CompleteElapsed(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingService) Wait() {}
