package dto

import "time"

// RegisterCitizenRequest payload.
type RegisterCitizenRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginCitizenRequest payload.
type LoginCitizenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OTPRequest asks for a login code for an official's phone.
type OTPRequest struct {
	Phone string `json:"phone"`
}

// OTPVerifyRequest exchanges a code for a token.
type OTPVerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	SubjectID string    `json:"subject_id"`
	Subject   string    `json:"subject"`
}
