package entity

import "time"

type OTPPurpose string

const (
	OTPPurposeSignup OTPPurpose = "signup"
	OTPPurposeReset  OTPPurpose = "reset"
)

// OTP is stored as JSON in redis and expires with its key.
type OTP struct {
	Purpose   OTPPurpose     `json:"purpose"`
	Email     string         `json:"email"`
	Code      string         `json:"code"`
	Signup    *SignupPayload `json:"signup,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// SignupPayload holds the pending account until its OTP is verified.
type SignupPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"password_hash"`
}
