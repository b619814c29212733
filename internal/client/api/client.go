package api

import (
	"context"
	"encoding/json"

	"github.com/avdeyev/shelfkeeper/internal/client/models"
)

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterRequest is the profile submitted on registration. The password
// confirmation is checked client-side before the request is made, but it
// is still sent so the backend can run its own validation.
type RegisterRequest struct {
	Fullname        string `json:"fullname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Client is the backend boundary. Auth calls serve the session store;
// the generic resource calls serve the management screens, which attach
// their own endpoint paths and interpret their own data shapes.
type Client interface {
	Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error

	// SetToken replaces the bearer token attached to authenticated
	// requests. An empty string detaches it.
	SetToken(token string)

	List(ctx context.Context, path string) ([]json.RawMessage, error)
	Get(ctx context.Context, path, id string) (json.RawMessage, error)
	Create(ctx context.Context, path string, body any) (json.RawMessage, error)
	Update(ctx context.Context, path, id string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path, id string) error
}
