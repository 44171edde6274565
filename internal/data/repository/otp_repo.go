package repository

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// attemptWindow outlives every OTP TTL so a counter never expires before its code.
const attemptWindow = 15 * time.Minute

// OTPRepository keeps one-time codes in redis; expiry is the key TTL.
type OTPRepository interface {
	Save(ctx context.Context, otp *entity.OTP, ttl time.Duration) error
	Verify(ctx context.Context, purpose entity.OTPPurpose, email, code string) (*entity.OTP, error)
	Delete(ctx context.Context, purpose entity.OTPPurpose, email string) error
	SaveResetTicket(ctx context.Context, email, ticket string, ttl time.Duration) error
	ConsumeResetTicket(ctx context.Context, email, ticket string) error
}

type otpRepository struct {
	rdb         redis.Cmdable
	maxAttempts int
	log         *zap.Logger
}

func NewOTPRepository(rdb redis.Cmdable, maxAttempts int, log *zap.Logger) OTPRepository {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &otpRepository{
		rdb:         rdb,
		maxAttempts: maxAttempts,
		log:         log.With(zap.String("repository", "otp")),
	}
}

func otpKey(purpose entity.OTPPurpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func attemptsKey(purpose entity.OTPPurpose, email string) string {
	return otpKey(purpose, email) + ":attempts"
}

func resetTicketKey(email string) string {
	return "otp:reset-ticket:" + email
}

// Save refuses to overwrite a code that has not expired yet.
func (r *otpRepository) Save(ctx context.Context, otp *entity.OTP, ttl time.Duration) error {
	payload, err := json.Marshal(otp)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}

	key := otpKey(otp.Purpose, otp.Email)
	ok, err := r.rdb.SetNX(ctx, key, payload, ttl).Result()
	if err != nil {
		r.log.Error("Failed to save OTP", zap.Error(err), zap.String("email", otp.Email))
		return dbError("save otp", err)
	}
	if !ok {
		return fmt.Errorf("%w: OTP already sent, wait for it to expire", apperror.ErrConflict)
	}

	if err := r.rdb.Del(ctx, attemptsKey(otp.Purpose, otp.Email)).Err(); err != nil {
		r.log.Warn("Failed to reset OTP attempts", zap.Error(err), zap.String("email", otp.Email))
	}

	return nil
}

// Verify deletes the code on a match. Wrong guesses are counted and the code
// is dropped once maxAttempts is reached.
func (r *otpRepository) Verify(ctx context.Context, purpose entity.OTPPurpose, email, code string) (*entity.OTP, error) {
	key := otpKey(purpose, email)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: invalid or expired OTP", apperror.ErrValidation)
	}
	if err != nil {
		r.log.Error("Failed to load OTP", zap.Error(err), zap.String("email", email))
		return nil, dbError("load otp", err)
	}

	var otp entity.OTP
	if err := json.Unmarshal(raw, &otp); err != nil {
		return nil, fmt.Errorf("decode otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		return nil, r.recordFailure(ctx, purpose, email)
	}

	if err := r.rdb.Del(ctx, key, attemptsKey(purpose, email)).Err(); err != nil {
		r.log.Error("Failed to delete OTP", zap.Error(err), zap.String("email", email))
		return nil, dbError("delete otp", err)
	}

	return &otp, nil
}

func (r *otpRepository) recordFailure(ctx context.Context, purpose entity.OTPPurpose, email string) error {
	aKey := attemptsKey(purpose, email)

	n, err := r.rdb.Incr(ctx, aKey).Result()
	if err != nil {
		r.log.Error("Failed to count OTP attempt", zap.Error(err), zap.String("email", email))
		return dbError("count otp attempt", err)
	}
	if n == 1 {
		r.rdb.Expire(ctx, aKey, attemptWindow)
	}

	if n >= int64(r.maxAttempts) {
		r.rdb.Del(ctx, otpKey(purpose, email), aKey)
		r.log.Warn("OTP discarded after too many attempts", zap.String("email", email))
		return fmt.Errorf("%w: too many invalid attempts, request a new OTP", apperror.ErrValidation)
	}

	return fmt.Errorf("%w: invalid OTP", apperror.ErrValidation)
}

func (r *otpRepository) Delete(ctx context.Context, purpose entity.OTPPurpose, email string) error {
	if err := r.rdb.Del(ctx, otpKey(purpose, email), attemptsKey(purpose, email)).Err(); err != nil {
		r.log.Error("Failed to delete OTP", zap.Error(err), zap.String("email", email))
		return dbError("delete otp", err)
	}
	return nil
}

func (r *otpRepository) SaveResetTicket(ctx context.Context, email, ticket string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, resetTicketKey(email), ticket, ttl).Err(); err != nil {
		r.log.Error("Failed to save reset ticket", zap.Error(err), zap.String("email", email))
		return dbError("save reset ticket", err)
	}
	return nil
}

// ConsumeResetTicket is single use: the ticket is removed even on a mismatch.
func (r *otpRepository) ConsumeResetTicket(ctx context.Context, email, ticket string) error {
	stored, err := r.rdb.GetDel(ctx, resetTicketKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: reset not verified or expired", apperror.ErrValidation)
	}
	if err != nil {
		r.log.Error("Failed to load reset ticket", zap.Error(err), zap.String("email", email))
		return dbError("load reset ticket", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(ticket)) != 1 {
		return fmt.Errorf("%w: invalid reset ticket", apperror.ErrValidation)
	}
	return nil
}
