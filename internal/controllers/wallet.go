package controllers

import (
	"context"
	"strings"

	"zeelx/internal/client"
	"zeelx/internal/core/domain"
)

// WalletController drives the wallet screen: balance, ledger history,
// deposits and withdrawals.
type WalletController struct {
	api *client.Client
}

func NewWalletController(api *client.Client) *WalletController {
	return &WalletController{api: api}
}

// WalletView is the wallet screen: the balance plus one history page.
type WalletView struct {
	Wallet  *domain.Wallet
	History *client.HistoryPage
}

// Overview loads the wallet screen.
func (c *WalletController) Overview(ctx context.Context, page int) (*WalletView, error) {
	wallet, err := c.api.Wallet(ctx)
	if err != nil {
		return nil, err
	}
	history, err := c.api.WalletHistory(ctx, page)
	if err != nil {
		return nil, err
	}
	return &WalletView{Wallet: wallet, History: history}, nil
}

// Deposit opens a deposit invoice for amount.
func (c *WalletController) Deposit(ctx context.Context, amount int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, domain.Validationf("amount", "must be positive")
	}
	return c.api.CreateDeposit(ctx, amount)
}

// SettleDeposit polls a deposit invoice until the backend reports it
// settled. A single poll; the screen re-invokes on user action.
func (c *WalletController) SettleDeposit(ctx context.Context, transactionID uint) (*domain.Transaction, *domain.Wallet, error) {
	return c.api.CheckPayment(ctx, transactionID)
}

// Withdraw validates and submits a withdrawal request. The balance
// check is advisory; the backend holds the funds authoritatively.
func (c *WalletController) Withdraw(ctx context.Context, input client.WithdrawalInput) (*domain.Withdrawal, error) {
	if input.Amount <= 0 {
		return nil, domain.Validationf("amount", "must be positive")
	}
	if strings.TrimSpace(input.BankName) == "" {
		return nil, domain.Validationf("bankName", "is required")
	}
	if strings.TrimSpace(input.BankAccount) == "" {
		return nil, domain.Validationf("bankAccount", "is required")
	}

	wallet, err := c.api.Wallet(ctx)
	if err != nil {
		return nil, err
	}
	if wallet.Balance < input.Amount {
		return nil, domain.ErrInsufficientFunds
	}

	return c.api.CreateWithdrawal(ctx, input)
}

// Withdrawals fetches one page of withdrawal requests.
func (c *WalletController) Withdrawals(ctx context.Context, page int) (*client.WithdrawalPage, error) {
	return c.api.MyWithdrawals(ctx, page)
}

// CancelWithdrawal cancels a pending withdrawal, releasing the hold.
func (c *WalletController) CancelWithdrawal(ctx context.Context, id uint) (*domain.Withdrawal, *domain.Wallet, error) {
	return c.api.CancelWithdrawal(ctx, id)
}
