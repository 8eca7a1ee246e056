package loancalc

import (
	"testing"
	"time"

	"zeelx/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time { return &t }

func activeLoan() *domain.Loan {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Loan{
		ID:              1,
		LoanNumber:      "ZL-0001",
		Status:          domain.LoanActive,
		DisbursedAmount: 100_000,
		InterestRate:    3.2,
		Interest:        3_200,
		TotalAmount:     103_200,
		PaidAmount:      0,
		RemainingAmount: 103_200,
		TermDays:        30,
		DueDate:         datePtr(due),
	}
}

func TestStandardTerms(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		principal    int64
		termDays     int
		wantInterest int64
		wantTotal    int64
		wantErr      error
	}{
		{name: "30 day scenario", principal: 100_000, termDays: 30, wantInterest: 3_200, wantTotal: 103_200},
		{name: "14 day rate", principal: 50_000, termDays: 14, wantInterest: 1_400, wantTotal: 51_400},
		{name: "90 day rate", principal: 500_000, termDays: 90, wantInterest: 19_000, wantTotal: 519_000},
		{name: "rounding", principal: 10_001, termDays: 30, wantInterest: 320, wantTotal: 10_321},
		{name: "unsupported term", principal: 100_000, termDays: 45, wantErr: domain.ErrInvalidTerm},
		{name: "below minimum", principal: 9_999, termDays: 30, wantErr: domain.ErrAmountOutOfRange},
		{name: "above maximum", principal: 500_001, termDays: 30, wantErr: domain.ErrAmountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := StandardTerms(tt.principal, tt.termDays, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantInterest, terms.Interest)
			assert.Equal(t, tt.wantTotal, terms.TotalAmount)
			assert.Equal(t, tt.principal+terms.Interest, terms.TotalAmount)
			assert.Equal(t, now.AddDate(0, 0, tt.termDays), terms.DueDate)
		})
	}
}

func TestStandardTermsIdempotent(t *testing.T) {
	now := time.Now()
	first, err := StandardTerms(250_000, 90, now)
	require.NoError(t, err)
	second, err := StandardTerms(250_000, 90, now)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtensionQuoteRemainingBase(t *testing.T) {
	loan := activeLoan()

	ext, err := ExtensionQuote(loan, LockBaseRemaining)
	require.NoError(t, err)

	assert.Equal(t, int64(10_320), ext.LockPortion)
	assert.Equal(t, int64(92_880), ext.NewRemainingAfterPayment)
	assert.Equal(t, int64(2_972), ext.NewInterest)
	assert.Equal(t, int64(95_852), ext.NewTotalRemaining)
	assert.Equal(t, 30, ext.ExtensionDays)
	assert.Equal(t, loan.DueDate.AddDate(0, 0, 30), ext.NewDueDate)
}

func TestExtensionQuoteTotalBase(t *testing.T) {
	loan := activeLoan()
	loan.PaidAmount = 3_200
	loan.RemainingAmount = 100_000

	ext, err := ExtensionQuote(loan, LockBaseTotal)
	require.NoError(t, err)

	// Lock comes off the total amount, not the remainder.
	assert.Equal(t, int64(10_320), ext.LockPortion)
	assert.Equal(t, int64(89_680), ext.NewRemainingAfterPayment)
	assert.Equal(t, int64(2_870), ext.NewInterest)
	assert.Equal(t, int64(92_550), ext.NewTotalRemaining)
}

func TestExtensionGuards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Loan)
		wantErr error
	}{
		{
			name:    "14 day term never extendable",
			mutate:  func(l *domain.Loan) { l.TermDays = 14 },
			wantErr: domain.ErrLoanNotExtendable,
		},
		{
			name:    "extension cap reached",
			mutate:  func(l *domain.Loan) { l.ExtensionCount = MaxExtensions },
			wantErr: domain.ErrExtensionLimitReached,
		},
		{
			name:    "extension cap exceeded",
			mutate:  func(l *domain.Loan) { l.ExtensionCount = MaxExtensions + 3 },
			wantErr: domain.ErrExtensionLimitReached,
		},
		{
			name:    "paid loan",
			mutate:  func(l *domain.Loan) { l.Status = domain.LoanPaid },
			wantErr: domain.ErrLoanNotPayable,
		},
		{
			name:    "pending loan",
			mutate:  func(l *domain.Loan) { l.Status = domain.LoanPendingVerification },
			wantErr: domain.ErrLoanNotPayable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := activeLoan()
			tt.mutate(loan)

			assert.False(t, CanExtend(loan))
			_, err := ExtensionQuote(loan, LockBaseRemaining)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtendableStatuses(t *testing.T) {
	for _, status := range []domain.LoanStatus{domain.LoanDisbursed, domain.LoanActive, domain.LoanOverdue} {
		loan := activeLoan()
		loan.Status = status
		assert.True(t, CanExtend(loan), "status %s", status)
	}
}

func TestAffordExtension(t *testing.T) {
	loan := activeLoan()

	// Scenario from the product sheet: balance 5,000 vs lock 10,320.
	_, err := AffordExtension(loan, 5_000, LockBaseRemaining)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	ext, err := AffordExtension(loan, 10_320, LockBaseRemaining)
	require.NoError(t, err)
	assert.Equal(t, int64(10_320), ext.LockPortion)
}

func TestValidatePayment(t *testing.T) {
	loan := activeLoan()

	tests := []struct {
		name    string
		amount  int64
		balance int64
		wantErr error
	}{
		{name: "exact remaining accepted", amount: 103_200, balance: 103_200},
		{name: "one unit over rejected", amount: 103_201, balance: 200_000, wantErr: domain.ErrOverpaymentRejected},
		{name: "partial payment accepted", amount: 50_000, balance: 60_000},
		{name: "zero rejected", amount: 0, balance: 60_000, wantErr: domain.ErrInvalidAmount},
		{name: "negative rejected", amount: -1, balance: 60_000, wantErr: domain.ErrInvalidAmount},
		{name: "wallet too small", amount: 50_000, balance: 49_999, wantErr: domain.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayment(loan, tt.amount, tt.balance)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("paid loan not payable", func(t *testing.T) {
		paid := activeLoan()
		paid.Status = domain.LoanPaid
		assert.ErrorIs(t, ValidatePayment(paid, 1_000, 10_000), domain.ErrLoanNotPayable)
	})
}

func TestIsOverdue(t *testing.T) {
	loan := activeLoan()
	before := loan.DueDate.Add(-time.Hour)
	after := loan.DueDate.Add(time.Hour)

	assert.False(t, IsOverdue(loan, before))
	assert.True(t, IsOverdue(loan, after))

	paid := activeLoan()
	paid.Status = domain.LoanPaid
	assert.False(t, IsOverdue(paid, after))

	noDue := activeLoan()
	noDue.DueDate = nil
	assert.False(t, IsOverdue(noDue, after))
}

func TestRateForTerm(t *testing.T) {
	for term, want := range map[int]float64{14: 2.8, 30: 3.2, 90: 3.8} {
		rate, err := RateForTerm(term)
		require.NoError(t, err)
		assert.Equal(t, want, rate)
	}
	_, err := RateForTerm(7)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)
}
