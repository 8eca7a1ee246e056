package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zeelx/internal/client"
	"zeelx/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves canned wallet/loan/profile state behind the
// standard envelope and records which mutating endpoints were hit.
type fakeBackend struct {
	wallet  domain.Wallet
	loan    domain.Loan
	profile domain.Profile

	payCalls    int
	extendCalls int
	reqCalls    int
}

func (f *fakeBackend) handler() http.HandlerFunc {
	ok := func(w http.ResponseWriter, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/wallet":
			ok(w, map[string]interface{}{"wallet": f.wallet})
		case r.URL.Path == "/profile" && r.Method == http.MethodGet:
			ok(w, map[string]interface{}{"profile": f.profile})
		case r.URL.Path == fmt.Sprintf("/loans/%d", f.loan.ID):
			ok(w, map[string]interface{}{"loan": f.loan})
		case r.URL.Path == fmt.Sprintf("/loans/%d/pay", f.loan.ID):
			f.payCalls++
			ok(w, map[string]interface{}{"loan": f.loan, "wallet": f.wallet})
		case r.URL.Path == fmt.Sprintf("/loans/%d/extend", f.loan.ID):
			f.extendCalls++
			ok(w, map[string]interface{}{"loan": f.loan, "wallet": f.wallet})
		case r.URL.Path == "/loans/request-approved":
			f.reqCalls++
			ok(w, map[string]interface{}{"loan": f.loan})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "not found"})
		}
	}
}

func newFixture(t *testing.T) (*fakeBackend, *client.Client) {
	t.Helper()
	due := time.Now().AddDate(0, 0, 20)
	backend := &fakeBackend{
		wallet: domain.Wallet{ID: 1, UserID: 1, Balance: 120_000},
		loan: domain.Loan{
			ID: 8, UserID: 1, LoanNumber: "ZL-0008",
			Status: domain.LoanActive, DisbursedAmount: 100_000,
			InterestRate: 3.2, Interest: 3_200,
			TotalAmount: 103_200, RemainingAmount: 103_200,
			TermDays: 30, DueDate: &due,
		},
		profile: domain.Profile{UserID: 1, IsVerified: true, AvailableLoanLimit: 300_000},
	}

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	api, err := client.New(client.Config{BaseURL: server.URL, Tokens: client.StaticToken("tok")})
	require.NoError(t, err)
	return backend, api
}

func TestDetailProjectsExtension(t *testing.T) {
	backend, api := newFixture(t)
	ctl := NewLoansController(api)

	view, err := ctl.Detail(context.Background(), backend.loan.ID)
	require.NoError(t, err)

	assert.True(t, view.CanExtend)
	require.NotNil(t, view.Extension)
	assert.Equal(t, int64(10_320), view.Extension.LockPortion)
	assert.Equal(t, int64(95_852), view.Extension.NewTotalRemaining)
}

func TestDetailNoProjectionFor14DayLoan(t *testing.T) {
	backend, api := newFixture(t)
	backend.loan.TermDays = 14
	ctl := NewLoansController(api)

	view, err := ctl.Detail(context.Background(), backend.loan.ID)
	require.NoError(t, err)
	assert.False(t, view.CanExtend)
	assert.Nil(t, view.Extension)
}

func TestConfirmPaymentGuardsBeforeNetwork(t *testing.T) {
	backend, api := newFixture(t)
	ctl := NewLoansController(api)

	_, _, err := ctl.ConfirmPayment(context.Background(), backend.loan.ID, backend.loan.RemainingAmount+1)
	assert.ErrorIs(t, err, domain.ErrOverpaymentRejected)
	assert.Zero(t, backend.payCalls, "rejected payment must not reach the backend")

	_, _, err = ctl.ConfirmPayment(context.Background(), backend.loan.ID, backend.loan.RemainingAmount)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.payCalls)
}

func TestConfirmPaymentInsufficientWallet(t *testing.T) {
	backend, api := newFixture(t)
	backend.wallet.Balance = 5_000
	ctl := NewLoansController(api)

	_, _, err := ctl.ConfirmPayment(context.Background(), backend.loan.ID, backend.loan.RemainingAmount)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Zero(t, backend.payCalls)
}

func TestPrepareExtensionInsufficientFunds(t *testing.T) {
	backend, api := newFixture(t)
	backend.wallet.Balance = 5_000
	ctl := NewLoansController(api)

	_, err := ctl.PrepareExtension(context.Background(), backend.loan.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, _, err = ctl.ConfirmExtension(context.Background(), backend.loan.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Zero(t, backend.extendCalls, "unfunded extension must not reach the backend")
}

func TestConfirmExtension(t *testing.T) {
	backend, api := newFixture(t)
	ctl := NewLoansController(api)

	_, _, err := ctl.ConfirmExtension(context.Background(), backend.loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.extendCalls)
}

func TestSubmitRequestChecksLimitAndVerification(t *testing.T) {
	backend, api := newFixture(t)
	ctl := NewLoansController(api)

	_, err := ctl.SubmitRequest(context.Background(), 400_000, 30)
	assert.ErrorIs(t, err, domain.ErrLoanLimitExceeded)

	backend.profile.IsVerified = false
	_, err = ctl.SubmitRequest(context.Background(), 100_000, 30)
	assert.ErrorIs(t, err, domain.ErrProfileNotVerified)
	assert.Zero(t, backend.reqCalls)

	backend.profile.IsVerified = true
	loan, err := ctl.SubmitRequest(context.Background(), 100_000, 30)
	require.NoError(t, err)
	assert.NotNil(t, loan)
	assert.Equal(t, 1, backend.reqCalls)
}

func TestWithdrawValidation(t *testing.T) {
	backend, api := newFixture(t)
	ctl := NewWalletController(api)
	ctx := context.Background()

	var vErr *domain.ValidationError

	_, err := ctl.Withdraw(ctx, client.WithdrawalInput{Amount: 0, BankName: "Khan", BankAccount: "123"})
	assert.ErrorAs(t, err, &vErr)

	_, err = ctl.Withdraw(ctx, client.WithdrawalInput{Amount: 1_000, BankAccount: "123"})
	assert.ErrorAs(t, err, &vErr)

	_, err = ctl.Withdraw(ctx, client.WithdrawalInput{Amount: 1_000_000, BankName: "Khan", BankAccount: "123"})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	_ = backend
}

func TestProfileSubmitValidation(t *testing.T) {
	_, api := newFixture(t)
	ctl := NewProfileController(api)
	ctx := context.Background()

	valid := client.ProfileInput{
		RegisterNumber: "AB12345678",
		DateOfBirth:    "1995-04-12",
		Gender:         "female",
		Address:        "Ulaanbaatar",
		BankName:       "Khan",
		BankAccount:    "5001234567",
	}

	var vErr *domain.ValidationError

	bad := valid
	bad.RegisterNumber = " "
	_, err := ctl.Submit(ctx, bad)
	assert.ErrorAs(t, err, &vErr)

	bad = valid
	bad.DateOfBirth = "12/04/1995"
	_, err = ctl.Submit(ctx, bad)
	assert.ErrorAs(t, err, &vErr)

	bad = valid
	bad.Gender = "unknown"
	_, err = ctl.Submit(ctx, bad)
	assert.ErrorAs(t, err, &vErr)
}

func TestVerifyRequiresFeeFunding(t *testing.T) {
	backend, api := newFixture(t)
	backend.wallet.Balance = 2_999
	ctl := NewProfileController(api)

	_, err := ctl.Verify(context.Background())
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}
