package client

import (
	"context"
	"fmt"

	"zeelx/internal/core/domain"
)

type walletData struct {
	Wallet *domain.Wallet `json:"wallet"`
}

type transactionData struct {
	Transaction *domain.Transaction `json:"transaction"`
	Wallet      *domain.Wallet      `json:"wallet,omitempty"`
}

// HistoryPage is one page of the wallet ledger.
type HistoryPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Meta         *PageMeta            `json:"meta,omitempty"`
}

// PageMeta mirrors the server's pagination metadata.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// Wallet fetches the current wallet snapshot.
func (c *Client) Wallet(ctx context.Context) (*domain.Wallet, error) {
	var data walletData
	if err := c.get(ctx, "/wallet", &data); err != nil {
		return nil, err
	}
	return data.Wallet, nil
}

// CreateDeposit opens a deposit invoice. The balance does not move
// until the invoice is settled.
func (c *Client) CreateDeposit(ctx context.Context, amount int64) (*domain.Transaction, error) {
	var data transactionData
	if err := c.post(ctx, "/wallet/deposit", amountRequest{Amount: amount}, &data); err != nil {
		return nil, err
	}
	return data.Transaction, nil
}

// CheckPayment polls a deposit invoice and returns the settled
// transaction together with the refreshed wallet.
func (c *Client) CheckPayment(ctx context.Context, transactionID uint) (*domain.Transaction, *domain.Wallet, error) {
	var data transactionData
	path := fmt.Sprintf("/wallet/check-payment/%d", transactionID)
	if err := c.post(ctx, path, nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Transaction, data.Wallet, nil
}

// WalletHistory fetches one page of ledger entries, newest first.
func (c *Client) WalletHistory(ctx context.Context, page int) (*HistoryPage, error) {
	var data HistoryPage
	if err := c.get(ctx, fmt.Sprintf("/wallet/history?page=%d", page), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
