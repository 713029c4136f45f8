package models

import "time"

// User is a shop owner. Every other entity is scoped to exactly one user.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ShopName     string    `json:"shop_name"`
	ShopSlug     string    `json:"shop_slug"` // public storefront URL segment
	PasswordHash string    `json:"-"`         // Never expose in JSON
	TOTPEnabled  bool      `json:"totp_enabled"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	ShopName string `json:"shop_name"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication.
// When the owner has 2FA enabled, Token is empty and TempToken carries a
// short-lived token for the verify step.
type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	TempToken   string `json:"temp_token,omitempty"`
	Requires2FA bool   `json:"requires_2fa,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// Verify2FARequest represents the request body for the 2FA login step
type Verify2FARequest struct {
	TempToken string `json:"temp_token"`
	Code      string `json:"code"`
}

// TOTPSetupResponse carries the generated secret and QR code for the
// authenticator app enrolment step
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"` // data URI, PNG
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// VerifyTOTPRequest represents the request body for enabling or checking TOTP
type VerifyTOTPRequest struct {
	Code string `json:"code"`
}

// UpdateUserRequest represents the request body for updating the owner profile
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	ShopName string `json:"shop_name"`
	Password string `json:"password,omitempty"` // Optional
}
