package controllers

import (
	"context"
	"time"

	"zeelx/internal/client"
	"zeelx/internal/core/domain"
	"zeelx/internal/core/loancalc"
)

// LockBase is the extension lock policy applied by every loan screen.
// Kept in one place so the screens can no longer disagree about it.
const LockBase = loancalc.LockBaseRemaining

// LoansController drives the loan list, detail, request, pay and
// extend screens.
type LoansController struct {
	api *client.Client
}

func NewLoansController(api *client.Client) *LoansController {
	return &LoansController{api: api}
}

// List fetches one page of loans, optionally filtered by status.
func (c *LoansController) List(ctx context.Context, page int, status domain.LoanStatus) (*client.LoanPage, error) {
	return c.api.MyLoans(ctx, page, status)
}

// LoanDetailView is the detail screen: the loan plus, when extension
// is possible, its projected figures.
type LoanDetailView struct {
	Loan      *domain.Loan
	CanExtend bool
	Extension *loancalc.Extension
}

// Detail fetches a loan and projects its extension when applicable.
func (c *LoansController) Detail(ctx context.Context, id uint) (*LoanDetailView, error) {
	loan, err := c.api.Loan(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &LoanDetailView{Loan: loan, CanExtend: loancalc.CanExtend(loan)}
	if view.CanExtend {
		if ext, err := loancalc.ExtensionQuote(loan, LockBase); err == nil {
			view.Extension = ext
		}
	}
	return view, nil
}

// RequestQuote projects the terms of a new loan before submission,
// checking amount bounds and the profile's loan limit.
func (c *LoansController) RequestQuote(amount int64, termDays int, profile *domain.Profile) (*loancalc.Terms, error) {
	terms, err := loancalc.StandardTerms(amount, termDays, time.Now())
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsVerified {
		return nil, domain.ErrProfileNotVerified
	}
	if amount > profile.AvailableLoanLimit {
		return nil, domain.ErrLoanLimitExceeded
	}
	return terms, nil
}

// SubmitRequest re-runs the quote checks and submits the loan request.
// The backend is authoritative and may still reject it.
func (c *LoansController) SubmitRequest(ctx context.Context, amount int64, termDays int) (*domain.Loan, error) {
	profile, err := c.api.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := c.RequestQuote(amount, termDays, profile); err != nil {
		return nil, err
	}
	return c.api.RequestApprovedLoan(ctx, amount, termDays)
}

// PaymentView is the pay screen pre-flight: the loan, the wallet, and
// whether a full repayment would go through.
type PaymentView struct {
	Loan    *domain.Loan
	Wallet  *domain.Wallet
	Payable bool
	// Reason holds why payment is blocked when Payable is false.
	Reason error
}

// PreparePayment loads the pay screen for a full repayment.
func (c *LoansController) PreparePayment(ctx context.Context, id uint) (*PaymentView, error) {
	loan, err := c.api.Loan(ctx, id)
	if err != nil {
		return nil, err
	}
	wallet, err := c.api.Wallet(ctx)
	if err != nil {
		return nil, err
	}

	view := &PaymentView{Loan: loan, Wallet: wallet}
	if err := loancalc.ValidatePayment(loan, loan.RemainingAmount, wallet.Balance); err != nil {
		view.Reason = err
	} else {
		view.Payable = true
	}
	return view, nil
}

// ConfirmPayment validates and pays amount against the loan. Pass the
// loan's remaining amount for a full repayment.
func (c *LoansController) ConfirmPayment(ctx context.Context, id uint, amount int64) (*domain.Loan, *domain.Wallet, error) {
	view, err := c.PreparePayment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := loancalc.ValidatePayment(view.Loan, amount, view.Wallet.Balance); err != nil {
		return nil, nil, err
	}
	return c.api.PayLoan(ctx, id, amount)
}

// ExtensionView is the extend screen pre-flight: the loan, the wallet
// and the projected extension figures.
type ExtensionView struct {
	Loan   *domain.Loan
	Wallet *domain.Wallet
	Quote  *loancalc.Extension
}

// PrepareExtension quotes the extension and checks the wallet can fund
// the lock portion. Guard failures surface as domain errors.
func (c *LoansController) PrepareExtension(ctx context.Context, id uint) (*ExtensionView, error) {
	loan, err := c.api.Loan(ctx, id)
	if err != nil {
		return nil, err
	}
	wallet, err := c.api.Wallet(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := loancalc.AffordExtension(loan, wallet.Balance, LockBase)
	if err != nil {
		return nil, err
	}
	return &ExtensionView{Loan: loan, Wallet: wallet, Quote: quote}, nil
}

// ConfirmExtension re-validates and asks the backend to extend. The
// projection shown to the user stays advisory; the backend recomputes.
func (c *LoansController) ConfirmExtension(ctx context.Context, id uint) (*domain.Loan, *domain.Wallet, error) {
	if _, err := c.PrepareExtension(ctx, id); err != nil {
		return nil, nil, err
	}
	return c.api.ExtendLoan(ctx, id)
}
