package auth

import (
	"context"

	"github.com/lfarroc/billarpro-backend/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, username, password string) (string, *user.User, error)
}

// LoginRequest is the payload for authenticating a user.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token and the authenticated account.
type LoginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}
