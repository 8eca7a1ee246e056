package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zeelx/internal/core/domain"
	"zeelx/internal/core/loancalc"
	"zeelx/internal/pkg/pagination"
	"zeelx/internal/sandbox/models"
)

// LockBase is the authoritative extension lock policy: 10% of the
// outstanding remainder.
const LockBase = loancalc.LockBaseRemaining

// LoanService handles the loan lifecycle. The projections the client
// shows are recomputed here before any money moves.
type LoanService struct {
	db *gorm.DB
}

// NewLoanService creates a new loan service.
func NewLoanService(db *gorm.DB) *LoanService {
	return &LoanService{db: db}
}

func newLoanNumber() string {
	return "ZL-" + strings.ToUpper(uuid.NewString()[:8])
}

// RequestApproved opens a loan over one of the supported terms. The
// sandbox has no loan officer, so an accepted request disburses into
// the wallet immediately.
func (s *LoanService) RequestApproved(ctx context.Context, userID uint, amount int64, termDays int) (*models.Loan, error) {
	terms, err := loancalc.StandardTerms(amount, termDays, time.Now())
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	err = s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	if !profile.IsVerified {
		return nil, domain.ErrProfileNotVerified
	}

	// The limit covers total exposure: outstanding principal plus the
	// new request.
	var outstanding int64
	err = s.db.WithContext(ctx).Model(&models.Loan{}).
		Where("user_id = ? AND status IN ?", userID, openStatuses()).
		Select("COALESCE(SUM(remaining_amount), 0)").Scan(&outstanding).Error
	if err != nil {
		return nil, err
	}
	if amount+outstanding > profile.AvailableLoanLimit {
		return nil, domain.ErrLoanLimitExceeded
	}

	now := time.Now()
	loan := &models.Loan{
		UserID:          userID,
		LoanNumber:      newLoanNumber(),
		Status:          string(domain.LoanDisbursed),
		DisbursedAmount: terms.Principal,
		InterestRate:    terms.Rate,
		Interest:        terms.Interest,
		TotalAmount:     terms.TotalAmount,
		PaidAmount:      0,
		RemainingAmount: terms.TotalAmount,
		TermDays:        terms.TermDays,
		DueDate:         &terms.DueDate,
		DisbursedAt:     &now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loan).Error; err != nil {
			return err
		}

		var wallet models.Wallet
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return err
		}
		if err := tx.Model(&wallet).Update("balance", wallet.Balance+terms.Principal).Error; err != nil {
			return err
		}

		return tx.Create(&models.Transaction{
			UserID:      userID,
			Type:        string(domain.TxLoanDisbursement),
			Amount:      terms.Principal,
			Status:      string(domain.TxCompleted),
			Description: fmt.Sprintf("Loan %s disbursed", loan.LoanNumber),
			Reference:   uuid.NewString(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func openStatuses() []string {
	return []string{
		string(domain.LoanDisbursed),
		string(domain.LoanActive),
		string(domain.LoanOverdue),
	}
}

// Get fetches one of the user's loans.
func (s *LoanService) Get(ctx context.Context, userID, loanID uint) (*models.Loan, error) {
	var loan models.Loan
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", loanID, userID).First(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// List returns one page of the user's loans plus aggregate stats.
func (s *LoanService) List(ctx context.Context, userID uint, status string, params *pagination.Params) ([]models.Loan, *domain.LoanStats, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Loan{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, 0, err
	}

	var loans []models.Loan
	err := q.Order("created_at DESC, id DESC").
		Limit(params.Limit).Offset(params.Offset).
		Find(&loans).Error
	if err != nil {
		return nil, nil, 0, err
	}

	stats, err := s.stats(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}
	return loans, stats, total, nil
}

func (s *LoanService) stats(ctx context.Context, userID uint) (*domain.LoanStats, error) {
	stats := &domain.LoanStats{}
	loans := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Loan{}).Where("user_id = ?", userID)
	}

	var total, paid, active int64
	if err := loans().Count(&total).Error; err != nil {
		return nil, err
	}
	if err := loans().Where("status = ?", string(domain.LoanPaid)).Count(&paid).Error; err != nil {
		return nil, err
	}
	if err := loans().Where("status IN ?", openStatuses()).Count(&active).Error; err != nil {
		return nil, err
	}
	if err := loans().Where("status IN ?", openStatuses()).
		Select("COALESCE(SUM(remaining_amount), 0)").Scan(&stats.TotalRemaining).Error; err != nil {
		return nil, err
	}

	stats.TotalLoans = int(total)
	stats.PaidLoans = int(paid)
	stats.ActiveLoans = int(active)
	return stats, nil
}

// Pay repays amount against a loan from the wallet. Paying the exact
// remaining amount closes the loan.
func (s *LoanService) Pay(ctx context.Context, userID, loanID uint, amount int64) (*models.Loan, *models.Wallet, error) {
	var loan models.Loan
	var wallet models.Wallet

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", loanID, userID).First(&loan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return err
		}

		if err := loancalc.ValidatePayment(loan.ToDomain(), amount, wallet.Balance); err != nil {
			return err
		}

		wallet.Balance -= amount
		if err := tx.Model(&wallet).Update("balance", wallet.Balance).Error; err != nil {
			return err
		}

		loan.PaidAmount += amount
		loan.RemainingAmount = loan.TotalAmount - loan.PaidAmount
		if loan.RemainingAmount == 0 {
			now := time.Now()
			loan.Status = string(domain.LoanPaid)
			loan.PaidAt = &now
		}
		if err := tx.Save(&loan).Error; err != nil {
			return err
		}

		return tx.Create(&models.Transaction{
			UserID:      userID,
			Type:        string(domain.TxLoanPayment),
			Amount:      amount,
			Status:      string(domain.TxCompleted),
			Description: fmt.Sprintf("Payment on loan %s", loan.LoanNumber),
			Reference:   uuid.NewString(),
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &loan, &wallet, nil
}

// Extend charges the 10% lock from the wallet, re-accrues interest on
// the remainder at the loan's stored rate, and rolls the due date
// forward one term.
func (s *LoanService) Extend(ctx context.Context, userID, loanID uint) (*models.Loan, *models.Wallet, error) {
	var loan models.Loan
	var wallet models.Wallet

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", loanID, userID).First(&loan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return err
		}

		ext, err := loancalc.AffordExtension(loan.ToDomain(), wallet.Balance, LockBase)
		if err != nil {
			return err
		}

		wallet.Balance -= ext.LockPortion
		if err := tx.Model(&wallet).Update("balance", wallet.Balance).Error; err != nil {
			return err
		}

		// The lock is a payment; the re-accrued interest grows the
		// total so that remaining = total - paid keeps holding.
		loan.PaidAmount += ext.LockPortion
		loan.Interest += ext.NewInterest
		loan.RemainingAmount = ext.NewTotalRemaining
		loan.TotalAmount = loan.PaidAmount + loan.RemainingAmount
		loan.DueDate = &ext.NewDueDate
		loan.ExtensionCount++
		loan.Status = string(domain.LoanActive)
		if err := tx.Save(&loan).Error; err != nil {
			return err
		}

		return tx.Create(&models.Transaction{
			UserID:      userID,
			Type:        string(domain.TxExtensionFee),
			Amount:      ext.LockPortion,
			Status:      string(domain.TxCompleted),
			Description: fmt.Sprintf("Extension on loan %s (+%d days)", loan.LoanNumber, ext.ExtensionDays),
			Reference:   uuid.NewString(),
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &loan, &wallet, nil
}

// MarkOverdue flips every open loan past its due date to overdue.
// Returns the number of loans updated.
func (s *LoanService) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status IN ? AND due_date < ?", []string{
			string(domain.LoanDisbursed),
			string(domain.LoanActive),
		}, now).
		Update("status", string(domain.LoanOverdue))
	return res.RowsAffected, res.Error
}
