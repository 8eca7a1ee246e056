package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zeelx/internal/core/domain"
	"zeelx/internal/pkg/pagination"
	"zeelx/internal/sandbox/models"
)

// WithdrawalService handles withdrawal requests. Funds are held the
// moment a request is accepted and released if it is cancelled, so
// the balance can never be promised twice.
type WithdrawalService struct {
	db *gorm.DB
}

// NewWithdrawalService creates a new withdrawal service.
func NewWithdrawalService(db *gorm.DB) *WithdrawalService {
	return &WithdrawalService{db: db}
}

// WithdrawalInput represents a withdrawal request.
type WithdrawalInput struct {
	Amount      int64  `json:"amount"`
	BankName    string `json:"bankName"`
	BankAccount string `json:"bankAccount"`
}

// Create holds the amount and opens a pending withdrawal.
func (s *WithdrawalService) Create(ctx context.Context, userID uint, input *WithdrawalInput) (*models.Withdrawal, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.BankName == "" || input.BankAccount == "" {
		return nil, domain.ErrInvalidInput
	}

	withdrawal := &models.Withdrawal{
		UserID:      userID,
		Amount:      input.Amount,
		BankName:    input.BankName,
		BankAccount: input.BankAccount,
		Status:      string(domain.WithdrawalPending),
		Reference:   uuid.NewString(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wallet models.Wallet
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}
		if wallet.Balance < input.Amount {
			return domain.ErrInsufficientFunds
		}

		if err := tx.Model(&wallet).Updates(map[string]interface{}{
			"balance":          wallet.Balance - input.Amount,
			"total_withdrawal": wallet.TotalWithdrawal + input.Amount,
		}).Error; err != nil {
			return err
		}

		if err := tx.Create(withdrawal).Error; err != nil {
			return err
		}

		return tx.Create(&models.Transaction{
			UserID:      userID,
			Type:        string(domain.TxWithdrawal),
			Amount:      input.Amount,
			Status:      string(domain.TxPending),
			Description: fmt.Sprintf("Withdrawal to %s %s", input.BankName, input.BankAccount),
			Reference:   withdrawal.Reference,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// List returns one page of the user's withdrawals, newest first.
func (s *WithdrawalService) List(ctx context.Context, userID uint, params *pagination.Params) ([]models.Withdrawal, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Withdrawal{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var withdrawals []models.Withdrawal
	err := q.Order("created_at DESC, id DESC").
		Limit(params.Limit).Offset(params.Offset).
		Find(&withdrawals).Error
	if err != nil {
		return nil, 0, err
	}
	return withdrawals, total, nil
}

// Cancel cancels a pending withdrawal and releases the held funds.
func (s *WithdrawalService) Cancel(ctx context.Context, userID, withdrawalID uint) (*models.Withdrawal, *models.Wallet, error) {
	var withdrawal models.Withdrawal
	var wallet models.Wallet

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", withdrawalID, userID).First(&withdrawal).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrWithdrawalNotFound
			}
			return err
		}
		if withdrawal.Status != string(domain.WithdrawalPending) {
			return domain.ErrWithdrawalNotOpen
		}

		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return err
		}

		withdrawal.Status = string(domain.WithdrawalCancelled)
		if err := tx.Model(&withdrawal).Update("status", withdrawal.Status).Error; err != nil {
			return err
		}

		// Cancel the held ledger entry alongside the request.
		if err := tx.Model(&models.Transaction{}).
			Where("reference = ? AND user_id = ?", withdrawal.Reference, userID).
			Update("status", string(domain.TxCancelled)).Error; err != nil {
			return err
		}

		wallet.Balance += withdrawal.Amount
		wallet.TotalWithdrawal -= withdrawal.Amount
		return tx.Model(&wallet).Updates(map[string]interface{}{
			"balance":          wallet.Balance,
			"total_withdrawal": wallet.TotalWithdrawal,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &withdrawal, &wallet, nil
}
