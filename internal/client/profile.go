package client

import (
	"context"

	"zeelx/internal/core/domain"
)

// ProfileInput is the KYC submission payload. Resubmitting replaces
// the previous answers; the verification flag is backend-owned.
type ProfileInput struct {
	RegisterNumber   string `json:"registerNumber"`
	DateOfBirth      string `json:"dateOfBirth"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	Employment       string `json:"employment"`
	EmergencyContact string `json:"emergencyContact"`
	BankName         string `json:"bankName"`
	BankAccount      string `json:"bankAccount"`
	IDCardFrontURL   string `json:"idCardFrontUrl,omitempty"`
	IDCardBackURL    string `json:"idCardBackUrl,omitempty"`
}

// Profile fetches the current user's KYC profile.
func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	var data profileData
	if err := c.get(ctx, "/profile", &data); err != nil {
		return nil, err
	}
	return data.Profile, nil
}

// SubmitProfile creates or resubmits the KYC profile.
func (c *Client) SubmitProfile(ctx context.Context, input ProfileInput) (*domain.Profile, error) {
	var data profileData
	if err := c.post(ctx, "/profile", input, &data); err != nil {
		return nil, err
	}
	return data.Profile, nil
}
