package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"zeelx/internal/core/domain"
)

// LoanPage is one page of the user's loans plus aggregate stats.
type LoanPage struct {
	Loans []domain.Loan     `json:"loans"`
	Stats *domain.LoanStats `json:"stats,omitempty"`
	Meta  *PageMeta         `json:"meta,omitempty"`
}

type loanData struct {
	Loan   *domain.Loan   `json:"loan"`
	Wallet *domain.Wallet `json:"wallet,omitempty"`
}

type requestLoanRequest struct {
	Amount   int64 `json:"amount"`
	TermDays int   `json:"termDays"`
}

// MyLoans fetches one page of the user's loans. status filters by loan
// status when non-empty.
func (c *Client) MyLoans(ctx context.Context, page int, status domain.LoanStatus) (*LoanPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if status != "" {
		q.Set("status", string(status))
	}

	var data LoanPage
	if err := c.get(ctx, "/loans/my-loans?"+q.Encode(), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Loan fetches a single loan by id.
func (c *Client) Loan(ctx context.Context, id uint) (*domain.Loan, error) {
	var data loanData
	if err := c.get(ctx, fmt.Sprintf("/loans/%d", id), &data); err != nil {
		return nil, err
	}
	return data.Loan, nil
}

// RequestApprovedLoan asks the backend to open a loan over one of the
// supported terms. The backend owns approval and disbursement.
func (c *Client) RequestApprovedLoan(ctx context.Context, amount int64, termDays int) (*domain.Loan, error) {
	var data loanData
	req := requestLoanRequest{Amount: amount, TermDays: termDays}
	if err := c.post(ctx, "/loans/request-approved", req, &data); err != nil {
		return nil, err
	}
	return data.Loan, nil
}

// PayLoan repays amount against a loan from the wallet. Returns the
// updated loan and wallet.
func (c *Client) PayLoan(ctx context.Context, id uint, amount int64) (*domain.Loan, *domain.Wallet, error) {
	var data loanData
	path := fmt.Sprintf("/loans/%d/pay", id)
	if err := c.post(ctx, path, amountRequest{Amount: amount}, &data); err != nil {
		return nil, nil, err
	}
	return data.Loan, data.Wallet, nil
}

// ExtendLoan rolls the loan's due date forward one term. The backend
// charges the lock portion from the wallet and recomputes interest.
func (c *Client) ExtendLoan(ctx context.Context, id uint) (*domain.Loan, *domain.Wallet, error) {
	var data loanData
	path := fmt.Sprintf("/loans/%d/extend", id)
	if err := c.post(ctx, path, nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Loan, data.Wallet, nil
}

type profileData struct {
	Profile *domain.Profile `json:"profile"`
}

// VerifyLoan pays the one-off verification fee from the wallet and
// marks the profile verified.
func (c *Client) VerifyLoan(ctx context.Context) (*domain.Profile, error) {
	var data profileData
	if err := c.post(ctx, "/loans/verify", nil, &data); err != nil {
		return nil, err
	}
	return data.Profile, nil
}
