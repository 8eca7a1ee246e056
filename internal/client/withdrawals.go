package client

import (
	"context"
	"fmt"

	"zeelx/internal/core/domain"
)

// WithdrawalInput asks the backend to move wallet funds to a bank
// account. The amount is held as soon as the request is accepted.
type WithdrawalInput struct {
	Amount      int64  `json:"amount"`
	BankName    string `json:"bankName"`
	BankAccount string `json:"bankAccount"`
}

type withdrawalData struct {
	Withdrawal *domain.Withdrawal `json:"withdrawal"`
	Wallet     *domain.Wallet     `json:"wallet,omitempty"`
}

// WithdrawalPage is one page of the user's withdrawal requests.
type WithdrawalPage struct {
	Withdrawals []domain.Withdrawal `json:"withdrawals"`
	Meta        *PageMeta           `json:"meta,omitempty"`
}

// CreateWithdrawal submits a withdrawal request.
func (c *Client) CreateWithdrawal(ctx context.Context, input WithdrawalInput) (*domain.Withdrawal, error) {
	var data withdrawalData
	if err := c.post(ctx, "/withdrawals", input, &data); err != nil {
		return nil, err
	}
	return data.Withdrawal, nil
}

// MyWithdrawals fetches one page of withdrawal requests, newest first.
func (c *Client) MyWithdrawals(ctx context.Context, page int) (*WithdrawalPage, error) {
	var data WithdrawalPage
	if err := c.get(ctx, fmt.Sprintf("/withdrawals?page=%d", page), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// CancelWithdrawal cancels a pending withdrawal and releases the held
// funds back into the wallet.
func (c *Client) CancelWithdrawal(ctx context.Context, id uint) (*domain.Withdrawal, *domain.Wallet, error) {
	var data withdrawalData
	if err := c.delete(ctx, fmt.Sprintf("/withdrawals/%d", id), &data); err != nil {
		return nil, nil, err
	}
	return data.Withdrawal, data.Wallet, nil
}
