package repository

import (
	"auditorium-booking/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	OTP        OTPRepository
	Auditorium AuditoriumRepository
	Booking    BookingRepository
	Payment    PaymentRepository
	Feedback   FeedbackRepository
}

func NewRepository(db database.PgxIface, rdb redis.Cmdable, otpMaxAttempts int, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		OTP:        NewOTPRepository(rdb, otpMaxAttempts, log),
		Auditorium: NewAuditoriumRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Payment:    NewPaymentRepository(db, log),
		Feedback:   NewFeedbackRepository(db, log),
	}
}
