package controllers

import (
	"context"
	"strings"
	"time"

	"zeelx/internal/client"
	"zeelx/internal/core/domain"
	"zeelx/internal/core/loancalc"
)

// ProfileController drives the KYC profile screens.
type ProfileController struct {
	api *client.Client
}

func NewProfileController(api *client.Client) *ProfileController {
	return &ProfileController{api: api}
}

// Load fetches the profile. A missing profile surfaces as the
// backend's not-found rejection; the form screen treats it as empty.
func (c *ProfileController) Load(ctx context.Context) (*domain.Profile, error) {
	return c.api.Profile(ctx)
}

// Submit validates and submits the KYC form.
func (c *ProfileController) Submit(ctx context.Context, input client.ProfileInput) (*domain.Profile, error) {
	if strings.TrimSpace(input.RegisterNumber) == "" {
		return nil, domain.Validationf("registerNumber", "is required")
	}
	if _, err := time.Parse("2006-01-02", input.DateOfBirth); err != nil {
		return nil, domain.Validationf("dateOfBirth", "must be YYYY-MM-DD")
	}
	switch input.Gender {
	case "male", "female", "other":
	default:
		return nil, domain.Validationf("gender", "must be male, female or other")
	}
	if strings.TrimSpace(input.BankName) == "" || strings.TrimSpace(input.BankAccount) == "" {
		return nil, domain.Validationf("bankAccount", "bank name and account are required")
	}

	return c.api.SubmitProfile(ctx, input)
}

// Verify pays the verification fee from the wallet and asks the
// backend to verify the profile. Pre-flights the fee against the
// balance so an unfundable attempt never leaves the device.
func (c *ProfileController) Verify(ctx context.Context) (*domain.Profile, error) {
	wallet, err := c.api.Wallet(ctx)
	if err != nil {
		return nil, err
	}
	if wallet.Balance < loancalc.VerificationFee {
		return nil, domain.ErrInsufficientFunds
	}
	return c.api.VerifyLoan(ctx)
}
