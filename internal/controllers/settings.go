package controllers

import (
	"context"

	"zeelx/internal/client"
	"zeelx/internal/core/domain"
	"zeelx/internal/session"
)

// SettingsController drives the settings screen.
type SettingsController struct {
	api      *client.Client
	sessions *session.Manager
}

func NewSettingsController(api *client.Client, sessions *session.Manager) *SettingsController {
	return &SettingsController{api: api, sessions: sessions}
}

// ChangePassword rotates the password after client-side checks.
func (c *SettingsController) ChangePassword(ctx context.Context, current, next string) error {
	if len(next) < session.MinPasswordLength {
		return domain.Validationf("newPassword", "must be at least %d characters", session.MinPasswordLength)
	}
	if current == next {
		return domain.Validationf("newPassword", "must differ from the current password")
	}
	return c.api.ChangePassword(ctx, current, next)
}

// Logout ends the session. The local clear always succeeds even when
// the device is offline.
func (c *SettingsController) Logout() {
	c.sessions.Logout()
}
