package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zeelx/internal/core/domain"
	"zeelx/internal/sandbox/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedLoan(t *testing.T, db *gorm.DB, status string, due time.Time) *models.Loan {
	t.Helper()

	loan := &models.Loan{
		UserID:          1,
		LoanNumber:      newLoanNumber(),
		Status:          status,
		DisbursedAmount: 100_000,
		InterestRate:    3.2,
		Interest:        3_200,
		TotalAmount:     103_200,
		RemainingAmount: 103_200,
		TermDays:        30,
		DueDate:         &due,
	}
	require.NoError(t, db.Create(loan).Error)
	return loan
}

func TestMarkOverdue(t *testing.T) {
	db := newTestDB(t)
	svc := NewLoanService(db)
	now := time.Now()

	pastDisbursed := seedLoan(t, db, string(domain.LoanDisbursed), now.Add(-24*time.Hour))
	pastActive := seedLoan(t, db, string(domain.LoanActive), now.Add(-time.Hour))
	future := seedLoan(t, db, string(domain.LoanDisbursed), now.Add(24*time.Hour))
	alreadyOverdue := seedLoan(t, db, string(domain.LoanOverdue), now.Add(-48*time.Hour))
	paid := seedLoan(t, db, string(domain.LoanPaid), now.Add(-24*time.Hour))

	n, err := svc.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	status := func(id uint) string {
		var loan models.Loan
		require.NoError(t, db.First(&loan, id).Error)
		return loan.Status
	}
	require.Equal(t, string(domain.LoanOverdue), status(pastDisbursed.ID))
	require.Equal(t, string(domain.LoanOverdue), status(pastActive.ID))
	require.Equal(t, string(domain.LoanDisbursed), status(future.ID))
	require.Equal(t, string(domain.LoanOverdue), status(alreadyOverdue.ID))
	require.Equal(t, string(domain.LoanPaid), status(paid.ID))

	// A second sweep finds nothing new.
	n, err = svc.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSweeperSweep(t *testing.T) {
	db := newTestDB(t)
	svc := NewLoanService(db)
	loan := seedLoan(t, db, string(domain.LoanDisbursed), time.Now().Add(-time.Hour))

	sweeper := NewSweeper(svc, "5 0 * * *")
	sweeper.Sweep()

	var got models.Loan
	require.NoError(t, db.First(&got, loan.ID).Error)
	require.Equal(t, string(domain.LoanOverdue), got.Status)
}

func TestOverdueLoanStillExtendable(t *testing.T) {
	db := newTestDB(t)
	svc := NewLoanService(db)

	require.NoError(t, db.Create(&models.Wallet{UserID: 1, Balance: 20_000}).Error)
	loan := seedLoan(t, db, string(domain.LoanOverdue), time.Now().Add(-time.Hour))

	extended, wallet, err := svc.Extend(context.Background(), 1, loan.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.LoanActive), extended.Status)
	require.Equal(t, int64(10_320), extended.PaidAmount)
	require.Equal(t, int64(95_852), extended.RemainingAmount)
	require.Equal(t, int64(9_680), wallet.Balance)
	require.True(t, extended.DueDate.After(time.Now()))
}
