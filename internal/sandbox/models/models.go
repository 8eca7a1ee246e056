// Package models holds the sandbox's persistence layer. Each model
// converts to its wire counterpart in core/domain; handlers never
// serialize a gorm model directly.
package models

import (
	"time"

	"gorm.io/gorm"

	"zeelx/internal/core/domain"
)

// User represents the users table.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Phone     string `gorm:"uniqueIndex;size:8;not null"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:100"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Wallet represents the wallets table. One per user, created at
// registration.
type Wallet struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"uniqueIndex;not null"`
	Balance         int64
	TotalDeposit    int64
	TotalWithdrawal int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Wallet) TableName() string { return "wallets" }

func (w *Wallet) ToDomain() *domain.Wallet {
	return &domain.Wallet{
		ID:              w.ID,
		UserID:          w.UserID,
		Balance:         w.Balance,
		TotalDeposit:    w.TotalDeposit,
		TotalWithdrawal: w.TotalWithdrawal,
	}
}

// Loan represents the loans table.
type Loan struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"index;not null"`
	LoanNumber      string `gorm:"uniqueIndex;size:30;not null"`
	Status          string `gorm:"index;size:30;not null"`
	DisbursedAmount int64
	InterestRate    float64
	Interest        int64
	TotalAmount     int64
	PaidAmount      int64
	RemainingAmount int64
	TermDays        int
	DueDate         *time.Time `gorm:"index"`
	ExtensionCount  int
	DisbursedAt     *time.Time
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) ToDomain() *domain.Loan {
	return &domain.Loan{
		ID:              l.ID,
		UserID:          l.UserID,
		LoanNumber:      l.LoanNumber,
		Status:          domain.LoanStatus(l.Status),
		DisbursedAmount: l.DisbursedAmount,
		InterestRate:    l.InterestRate,
		Interest:        l.Interest,
		TotalAmount:     l.TotalAmount,
		PaidAmount:      l.PaidAmount,
		RemainingAmount: l.RemainingAmount,
		TermDays:        l.TermDays,
		DueDate:         l.DueDate,
		ExtensionCount:  l.ExtensionCount,
		CreatedAt:       l.CreatedAt,
		DisbursedAt:     l.DisbursedAt,
		PaidAt:          l.PaidAt,
	}
}

// Transaction represents the transactions table. Rows are append-only;
// only Status moves, from pending to completed or cancelled.
type Transaction struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Type        string `gorm:"size:30;not null"`
	Amount      int64
	Status      string `gorm:"size:20;not null"`
	Description string `gorm:"size:255"`
	Reference   string `gorm:"size:40;index"`
	CreatedAt   time.Time
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) ToDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        domain.TransactionType(t.Type),
		Amount:      t.Amount,
		Status:      domain.TransactionStatus(t.Status),
		Description: t.Description,
		Reference:   t.Reference,
		CreatedAt:   t.CreatedAt,
	}
}

// Profile represents the profiles table (KYC record).
type Profile struct {
	ID                 uint   `gorm:"primaryKey"`
	UserID             uint   `gorm:"uniqueIndex;not null"`
	RegisterNumber     string `gorm:"size:20;not null"`
	DateOfBirth        string `gorm:"size:10"`
	Gender             string `gorm:"size:10"`
	Address            string `gorm:"size:255"`
	Employment         string `gorm:"size:100"`
	EmergencyContact   string `gorm:"size:100"`
	BankName           string `gorm:"size:50"`
	BankAccount        string `gorm:"size:30"`
	IDCardFrontURL     string `gorm:"size:255"`
	IDCardBackURL      string `gorm:"size:255"`
	IsVerified         bool
	AvailableLoanLimit int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) ToDomain() *domain.Profile {
	return &domain.Profile{
		ID:                 p.ID,
		UserID:             p.UserID,
		RegisterNumber:     p.RegisterNumber,
		DateOfBirth:        p.DateOfBirth,
		Gender:             p.Gender,
		Address:            p.Address,
		Employment:         p.Employment,
		EmergencyContact:   p.EmergencyContact,
		BankName:           p.BankName,
		BankAccount:        p.BankAccount,
		IDCardFrontURL:     p.IDCardFrontURL,
		IDCardBackURL:      p.IDCardBackURL,
		IsVerified:         p.IsVerified,
		AvailableLoanLimit: p.AvailableLoanLimit,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// Withdrawal represents the withdrawals table. Reference ties the
// withdrawal to its ledger entry.
type Withdrawal struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	Amount      int64
	BankName    string `gorm:"size:50"`
	BankAccount string `gorm:"size:30"`
	Status      string `gorm:"size:20;not null"`
	Reference   string `gorm:"size:40;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Withdrawal) TableName() string { return "withdrawals" }

func (w *Withdrawal) ToDomain() *domain.Withdrawal {
	return &domain.Withdrawal{
		ID:          w.ID,
		UserID:      w.UserID,
		Amount:      w.Amount,
		BankName:    w.BankName,
		BankAccount: w.BankAccount,
		Status:      domain.WithdrawalStatus(w.Status),
		CreatedAt:   w.CreatedAt,
	}
}

// AutoMigrate creates or updates all sandbox tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Wallet{},
		&Loan{},
		&Transaction{},
		&Profile{},
		&Withdrawal{},
	)
}
