package http

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/brandu/auth/internal/auth/domain"
)

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(4, 30)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Nickname, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type ResendEmailRequest struct {
	Email string `json:"email"`
}

func (r ResendEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type FindPasswordRequest struct {
	Email string `json:"email"`
}

func (r FindPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Digit),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 100)),
	)
}

// TokenResponse is the body returned by every flow that issues a pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Nickname      string `json:"nickname"`
	Email         string `json:"email"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	Provider      string `json:"provider"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

func newUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Nickname:      u.Nickname,
		Email:         u.Email,
		AvatarURL:     u.AvatarURL,
		Provider:      string(u.Provider),
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
	}
}
