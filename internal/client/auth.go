package client

import (
	"context"

	"zeelx/internal/core/domain"
)

// RegisterInput is the registration payload. The server enforces phone
// uniqueness.
type RegisterInput struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type userData struct {
	User *domain.User `json:"user"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, phone, password string) (*domain.Session, error) {
	var session domain.Session
	if err := c.post(ctx, "/auth/login", loginRequest{Phone: phone, Password: password}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*domain.Session, error) {
	var session domain.Session
	if err := c.post(ctx, "/auth/register", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Me fetches the current user for the attached token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var data userData
	if err := c.get(ctx, "/auth/me", &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.put(ctx, "/auth/change-password", changePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	}, nil)
}
