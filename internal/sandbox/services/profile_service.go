package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zeelx/internal/core/domain"
	"zeelx/internal/core/loancalc"
	"zeelx/internal/sandbox/models"
)

// ProfileService handles the KYC record.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new profile service.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ProfileInput represents a KYC submission.
type ProfileInput struct {
	RegisterNumber   string `json:"registerNumber"`
	DateOfBirth      string `json:"dateOfBirth"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	Employment       string `json:"employment"`
	EmergencyContact string `json:"emergencyContact"`
	BankName         string `json:"bankName"`
	BankAccount      string `json:"bankAccount"`
	IDCardFrontURL   string `json:"idCardFrontUrl"`
	IDCardBackURL    string `json:"idCardBackUrl"`
}

// Get fetches a user's profile.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the profile on first submission and replaces the
// answers on resubmission. Verification state survives resubmission;
// only the verify flow changes it.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, input *ProfileInput) (*models.Profile, error) {
	if input.RegisterNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	profile, err := s.Get(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		profile = &models.Profile{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	profile.RegisterNumber = input.RegisterNumber
	profile.DateOfBirth = input.DateOfBirth
	profile.Gender = input.Gender
	profile.Address = input.Address
	profile.Employment = input.Employment
	profile.EmergencyContact = input.EmergencyContact
	profile.BankName = input.BankName
	profile.BankAccount = input.BankAccount
	profile.IDCardFrontURL = input.IDCardFrontURL
	profile.IDCardBackURL = input.IDCardBackURL

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// Verify charges the verification fee from the wallet, marks the
// profile verified and grants the full loan limit. In production an
// officer reviews the documents first; the sandbox verifies on
// payment.
func (s *ProfileService) Verify(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProfileNotFound
			}
			return err
		}
		if profile.IsVerified {
			return domain.ErrAlreadyVerified
		}

		var wallet models.Wallet
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return err
		}
		if wallet.Balance < loancalc.VerificationFee {
			return domain.ErrInsufficientFunds
		}

		if err := tx.Model(&wallet).Update("balance", wallet.Balance-loancalc.VerificationFee).Error; err != nil {
			return err
		}

		profile.IsVerified = true
		profile.AvailableLoanLimit = loancalc.MaxLoanAmount
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		return tx.Create(&models.Transaction{
			UserID:      userID,
			Type:        string(domain.TxVerificationFee),
			Amount:      loancalc.VerificationFee,
			Status:      string(domain.TxCompleted),
			Description: fmt.Sprintf("Verification fee for %s", profile.RegisterNumber),
			Reference:   uuid.NewString(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
