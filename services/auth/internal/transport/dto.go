package transport

import "github.com/Skotchmaster/shoe_shop/internal/models"

type SignupRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=6"`
	Name        string `json:"name"        validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type VerifyEmailRequest struct {
	Code string `json:"code" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type ProfileRequest struct {
	Name        string `json:"name"        validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// TokenResponse is also decoded by pkg/authclient during auto refresh.
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	AccessExp    int64        `json:"accessExp"`
	RefreshExp   int64        `json:"refreshExp"`
	Role         string       `json:"role"`
	User         *models.User `json:"user"`
}

type UserResponse struct {
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}
