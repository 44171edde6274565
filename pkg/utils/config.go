package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	OTP      OTPConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	Timezone string
}

// Location resolves Timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type OTPConfig struct {
	Length           int
	SignupTTL        time.Duration
	ResetTTL         time.Duration
	ResetTicketTTL   time.Duration
	MaxVerifyAttempt int
}

type BookingConfig struct {
	SweepSpec          string
	SessionCleanupSpec string
	ShutdownTimeout    time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_NAME", "auditorium-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("SMTP_ENABLED", false)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_SIGNUP_TTL", "10m")
	viper.SetDefault("OTP_RESET_TTL", "3m")
	viper.SetDefault("OTP_RESET_TICKET_TTL", "10m")
	viper.SetDefault("OTP_MAX_ATTEMPTS", 5)
	viper.SetDefault("BOOKING_SWEEP_SPEC", "*/5 * * * *")
	viper.SetDefault("SESSION_CLEANUP_SPEC", "@hourly")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	// the environment alone is enough when no .env file is shipped
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Enabled:  viper.GetBool("SMTP_ENABLED"),
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		OTP: OTPConfig{
			Length:           viper.GetInt("OTP_LENGTH"),
			SignupTTL:        viper.GetDuration("OTP_SIGNUP_TTL"),
			ResetTTL:         viper.GetDuration("OTP_RESET_TTL"),
			ResetTicketTTL:   viper.GetDuration("OTP_RESET_TICKET_TTL"),
			MaxVerifyAttempt: viper.GetInt("OTP_MAX_ATTEMPTS"),
		},
		Booking: BookingConfig{
			SweepSpec:          viper.GetString("BOOKING_SWEEP_SPEC"),
			SessionCleanupSpec: viper.GetString("SESSION_CLEANUP_SPEC"),
			ShutdownTimeout:    viper.GetDuration("SHUTDOWN_TIMEOUT"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}
