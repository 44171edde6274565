package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	code, err := GenerateOTP(6)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)

	code, err = GenerateOTP(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestGenerateTransactionID(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC)

	id, err := GenerateTransactionID(now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^PAY-20250601-093015-\d{4}$`), id)
}

func TestToken_RoundTrip(t *testing.T) {
	cfg := JWTConfig{Secret: "secret", ExpiryHours: 2}
	userID, sessionID := uuid.New(), uuid.New()
	now := time.Now()

	token, expiresAt, err := GenerateToken(cfg, userID, sessionID, "admin", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(2*time.Hour), expiresAt, time.Second)

	claims, err := ParseToken(cfg.Secret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	gotUser, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)

	gotSession, err := claims.SessionID()
	require.NoError(t, err)
	assert.Equal(t, sessionID, gotSession)
}

func TestParseToken_Rejections(t *testing.T) {
	cfg := JWTConfig{Secret: "secret", ExpiryHours: 1}

	expired, _, err := GenerateToken(cfg, uuid.New(), uuid.New(), "user", time.Now().Add(-3*time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(cfg.Secret, expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	valid, _, err := GenerateToken(cfg, uuid.New(), uuid.New(), "user", time.Now())
	require.NoError(t, err)
	_, err = ParseToken("other-secret", valid)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(cfg.Secret, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Name   string `validate:"required,notblank"`
		Action string `validate:"required,oneof=approve reject"`
	}

	assert.Empty(t, ValidateStruct(sample{Name: "Main Hall", Action: "approve"}))

	errs := ValidateStruct(sample{Name: "   ", Action: "postpone"})
	assert.Equal(t, "Must not be blank", errs["Name"])
	assert.Equal(t, "Must be one of: approve, reject", errs["Action"])
	assert.Contains(t, FormatValidationErrors(errs), "Name: Must not be blank")
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 10},
		{"3", 3},
		{"0", 10},
		{"-2", 10},
		{"abc", 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseInt(tt.in, 10), "input %q", tt.in)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "config-test-secret")
	t.Setenv("OTP_SIGNUP_TTL", "5m")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "config-test-secret", cfg.JWT.Secret)
	assert.Equal(t, 5*time.Minute, cfg.OTP.SignupTTL)
	assert.Equal(t, 3*time.Minute, cfg.OTP.ResetTTL)
	assert.Equal(t, "*/5 * * * *", cfg.Booking.SweepSpec)
	assert.Equal(t, "@hourly", cfg.Booking.SessionCleanupSpec)
	assert.Equal(t, 15*time.Second, cfg.Booking.ShutdownTimeout)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Timezone)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestAppConfig_LocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{}.Location())
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Mars/Olympus"}.Location())
}
