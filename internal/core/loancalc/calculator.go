// Package loancalc projects repayment and extension figures for loans.
// Every function is pure: the backend remains the source of truth and
// any projection here is advisory until the corresponding API call
// succeeds.
package loancalc

import (
	"math"
	"time"

	"zeelx/internal/core/domain"
)

// Product constants.
const (
	MinLoanAmount   = 10_000
	MaxLoanAmount   = 500_000
	VerificationFee = 3_000

	// MaxExtensions caps how many times a single loan may be extended.
	MaxExtensions = 5

	// NonExtendableTerm: 14-day loans are never extendable.
	NonExtendableTerm = 14

	// ExtensionLockPercent is the share of the lock base paid up front
	// when extending.
	ExtensionLockPercent = 10.0
)

// termRates maps term length in days to its interest rate in percent.
var termRates = map[int]float64{
	14: 2.8,
	30: 3.2,
	90: 3.8,
}

// TermOptions returns the supported term lengths in ascending order.
func TermOptions() []int {
	return []int{14, 30, 90}
}

// RateForTerm returns the interest rate for a term length.
func RateForTerm(termDays int) (float64, error) {
	rate, ok := termRates[termDays]
	if !ok {
		return 0, domain.ErrInvalidTerm
	}
	return rate, nil
}

// roundPercent applies a percentage to an amount, rounding to the
// nearest currency unit the way the backend does.
func roundPercent(amount int64, percent float64) int64 {
	return int64(math.Round(float64(amount) * percent / 100))
}

// Terms is the repayment projection for a new loan.
type Terms struct {
	Principal   int64
	TermDays    int
	Rate        float64
	Interest    int64
	TotalAmount int64
	DueDate     time.Time
}

// StandardTerms computes interest, total repayment and due date for a
// principal over one of the supported terms, anchored at now.
func StandardTerms(principal int64, termDays int, now time.Time) (*Terms, error) {
	rate, err := RateForTerm(termDays)
	if err != nil {
		return nil, err
	}
	if principal < MinLoanAmount || principal > MaxLoanAmount {
		return nil, domain.ErrAmountOutOfRange
	}

	interest := roundPercent(principal, rate)
	return &Terms{
		Principal:   principal,
		TermDays:    termDays,
		Rate:        rate,
		Interest:    interest,
		TotalAmount: principal + interest,
		DueDate:     now.AddDate(0, 0, termDays),
	}, nil
}

// LockBase selects which figure the 10% extension lock is taken from.
// The product has shipped both readings at different times, so the
// choice is explicit rather than baked in.
type LockBase int

const (
	// LockBaseRemaining charges 10% of the outstanding remainder.
	LockBaseRemaining LockBase = iota
	// LockBaseTotal charges 10% of the loan's total amount.
	LockBaseTotal
)

// Extension is the projection of extending a loan: pay the lock now,
// re-accrue interest on what is left, roll the due date forward by one
// term.
type Extension struct {
	LockPortion              int64
	NewRemainingAfterPayment int64
	NewInterest              int64
	NewTotalRemaining        int64
	ExtensionDays            int
	NewDueDate               time.Time
}

// CanExtend reports whether a loan is in a state where extension is
// even on the table. It checks status, term and extension count but
// not wallet funding.
func CanExtend(loan *domain.Loan) bool {
	return ExtendGuard(loan) == nil
}

// ExtendGuard returns the reason a loan cannot be extended, or nil.
func ExtendGuard(loan *domain.Loan) error {
	switch loan.Status {
	case domain.LoanDisbursed, domain.LoanActive, domain.LoanOverdue:
	default:
		return domain.ErrLoanNotPayable
	}
	if loan.TermDays == NonExtendableTerm {
		return domain.ErrLoanNotExtendable
	}
	if loan.ExtensionCount >= MaxExtensions {
		return domain.ErrExtensionLimitReached
	}
	return nil
}

// ExtensionQuote projects the extension of a loan under the given lock
// base. It refuses loans the guards reject.
func ExtensionQuote(loan *domain.Loan, base LockBase) (*Extension, error) {
	if err := ExtendGuard(loan); err != nil {
		return nil, err
	}

	lockFrom := loan.RemainingAmount
	if base == LockBaseTotal {
		lockFrom = loan.TotalAmount
	}
	lock := roundPercent(lockFrom, ExtensionLockPercent)

	remaining := loan.RemainingAmount - lock
	if remaining < 0 {
		remaining = 0
	}
	newInterest := roundPercent(remaining, loan.InterestRate)

	days := loan.TermDays
	if days == 0 {
		days = 30
	}
	due := time.Now()
	if loan.DueDate != nil {
		due = *loan.DueDate
	}

	return &Extension{
		LockPortion:              lock,
		NewRemainingAfterPayment: remaining,
		NewInterest:              newInterest,
		NewTotalRemaining:        remaining + newInterest,
		ExtensionDays:            days,
		NewDueDate:               due.AddDate(0, 0, days),
	}, nil
}

// AffordExtension quotes an extension and additionally checks the
// wallet can fund the lock portion. Nothing is mutated either way.
func AffordExtension(loan *domain.Loan, walletBalance int64, base LockBase) (*Extension, error) {
	ext, err := ExtensionQuote(loan, base)
	if err != nil {
		return nil, err
	}
	if walletBalance < ext.LockPortion {
		return nil, domain.ErrInsufficientFunds
	}
	return ext, nil
}

// ValidatePayment checks a repayment amount against the loan and the
// wallet before the confirming API call is made. Paying exactly the
// remaining amount is accepted; one unit more is not.
func ValidatePayment(loan *domain.Loan, amount, walletBalance int64) error {
	switch loan.Status {
	case domain.LoanDisbursed, domain.LoanActive, domain.LoanOverdue:
	default:
		return domain.ErrLoanNotPayable
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	if amount > loan.RemainingAmount {
		return domain.ErrOverpaymentRejected
	}
	if walletBalance < amount {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// IsOverdue derives the overdue flag from the due date. Active and
// overdue are mutually exclusive at any instant.
func IsOverdue(loan *domain.Loan, now time.Time) bool {
	if loan.DueDate == nil {
		return false
	}
	switch loan.Status {
	case domain.LoanDisbursed, domain.LoanActive, domain.LoanOverdue:
		return now.After(*loan.DueDate)
	}
	return false
}
