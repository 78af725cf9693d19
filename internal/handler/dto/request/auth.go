package request

import (
	"strings"

	"airaa-jewels/internal/domain/auth"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (auth.Credentials, error) {
	return auth.NewCredentials(r.Email, r.Password)
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,max=100"`
}

func (r *RegisterRequest) GetDisplayName() string {
	return strings.TrimSpace(r.DisplayName)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
