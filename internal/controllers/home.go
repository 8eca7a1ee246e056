// Package controllers holds per-screen view logic: fetch state through
// the API client, project it with loancalc for display, and run the
// pre-flight checks before any confirming call. Controllers hold no
// state of their own; every view is built from a fresh fetch.
package controllers

import (
	"context"
	"time"

	"zeelx/internal/client"
	"zeelx/internal/core/domain"
	"zeelx/internal/core/loancalc"
	"zeelx/internal/session"
)

// HomeView is the dashboard: who is logged in, their wallet, loans
// still owing money, and aggregate stats.
type HomeView struct {
	User        *domain.User
	Wallet      *domain.Wallet
	ActiveLoans []domain.Loan
	Stats       *domain.LoanStats
}

// HomeController drives the dashboard screen.
type HomeController struct {
	api      *client.Client
	sessions *session.Manager
}

func NewHomeController(api *client.Client, sessions *session.Manager) *HomeController {
	return &HomeController{api: api, sessions: sessions}
}

// Load builds the dashboard. The user cache is refreshed best-effort
// first, so a changed name or limit shows up without blocking on it.
func (c *HomeController) Load(ctx context.Context) (*HomeView, error) {
	c.sessions.RefreshUser(ctx)

	wallet, err := c.api.Wallet(ctx)
	if err != nil {
		return nil, err
	}

	page, err := c.api.MyLoans(ctx, 1, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var active []domain.Loan
	for _, loan := range page.Loans {
		if !loan.Outstanding() {
			continue
		}
		// Display-time derivation; the sweep on the backend may lag.
		if loancalc.IsOverdue(&loan, now) {
			loan.Status = domain.LoanOverdue
		}
		active = append(active, loan)
	}

	return &HomeView{
		User:        c.sessions.User(),
		Wallet:      wallet,
		ActiveLoans: active,
		Stats:       page.Stats,
	}, nil
}
