package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zeelx/internal/core/domain"
	"zeelx/internal/pkg/pagination"
	"zeelx/internal/sandbox/models"
)

// WalletService handles wallet business logic. All balance moves go
// through gorm transactions so the ledger and the balance never
// drift apart.
type WalletService struct {
	db *gorm.DB
}

// NewWalletService creates a new wallet service.
func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// Get fetches a user's wallet.
func (s *WalletService) Get(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

// CreateDeposit opens a deposit invoice: a pending ledger entry that
// moves no money until it is settled.
func (s *WalletService) CreateDeposit(ctx context.Context, userID uint, amount int64) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	invoice := &models.Transaction{
		UserID:      userID,
		Type:        string(domain.TxDeposit),
		Amount:      amount,
		Status:      string(domain.TxPending),
		Description: "Wallet deposit",
		Reference:   uuid.NewString(),
	}
	if err := s.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// CheckPayment settles a pending deposit invoice and credits the
// wallet. The sandbox has no payment provider behind it, so a pending
// invoice always settles as paid.
func (s *WalletService) CheckPayment(ctx context.Context, userID, transactionID uint) (*models.Transaction, *models.Wallet, error) {
	var invoice models.Transaction
	var wallet models.Wallet

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", transactionID, userID).First(&invoice).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return err
		}
		if invoice.Type != string(domain.TxDeposit) {
			return domain.ErrTransactionNotFound
		}
		if invoice.Status != string(domain.TxPending) {
			return domain.ErrTransactionSettled
		}

		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return err
		}

		invoice.Status = string(domain.TxCompleted)
		if err := tx.Model(&invoice).Update("status", invoice.Status).Error; err != nil {
			return err
		}

		wallet.Balance += invoice.Amount
		wallet.TotalDeposit += invoice.Amount
		return tx.Model(&wallet).Updates(map[string]interface{}{
			"balance":       wallet.Balance,
			"total_deposit": wallet.TotalDeposit,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &invoice, &wallet, nil
}

// History returns one page of the user's ledger, newest first.
func (s *WalletService) History(ctx context.Context, userID uint, params *pagination.Params) ([]models.Transaction, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.Transaction
	err := q.Order("created_at DESC, id DESC").
		Limit(params.Limit).Offset(params.Offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}
