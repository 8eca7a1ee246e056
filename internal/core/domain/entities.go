package domain

import "time"

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanPendingVerification LoanStatus = "pending_verification"
	LoanUnderReview         LoanStatus = "under_review"
	LoanApproved            LoanStatus = "approved"
	LoanDisbursed           LoanStatus = "disbursed"
	LoanActive              LoanStatus = "active"
	LoanPaid                LoanStatus = "paid"
	LoanOverdue             LoanStatus = "overdue"
	LoanCancelled           LoanStatus = "cancelled"
)

// TransactionType classifies ledger entries.
type TransactionType string

const (
	TxDeposit          TransactionType = "deposit"
	TxWithdrawal       TransactionType = "withdrawal"
	TxLoanDisbursement TransactionType = "loan_disbursement"
	TxLoanPayment      TransactionType = "loan_payment"
	TxExtensionFee     TransactionType = "extension_fee"
	TxVerificationFee  TransactionType = "verification_fee"
)

// TransactionStatus represents the settlement state of a ledger entry.
type TransactionStatus string

const (
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxCancelled TransactionStatus = "cancelled"
)

// WithdrawalStatus represents the state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalCompleted WithdrawalStatus = "completed"
	WithdrawalCancelled WithdrawalStatus = "cancelled"
)

// User represents an account holder. Phone is the login identity
// (8 digits, unique). The password credential never appears here;
// it lives server-side only.
type User struct {
	ID        uint      `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session couples a bearer token with the user snapshot it belongs to.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Wallet is the user's internal cash balance. Only the backend mutates
// it; clients re-fetch after any confirmed operation.
type Wallet struct {
	ID              uint  `json:"id"`
	UserID          uint  `json:"userId"`
	Balance         int64 `json:"balance"`
	TotalDeposit    int64 `json:"totalDeposit"`
	TotalWithdrawal int64 `json:"totalWithdrawal"`
}

// Loan carries the full repayment picture of a single loan.
// Invariant: RemainingAmount = TotalAmount - PaidAmount, never negative.
type Loan struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"userId"`
	LoanNumber      string     `json:"loanNumber"`
	Status          LoanStatus `json:"status"`
	DisbursedAmount int64      `json:"disbursedAmount"`
	InterestRate    float64    `json:"interestRate"`
	Interest        int64      `json:"interest"`
	TotalAmount     int64      `json:"totalAmount"`
	PaidAmount      int64      `json:"paidAmount"`
	RemainingAmount int64      `json:"remainingAmount"`
	TermDays        int        `json:"termDays"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	ExtensionCount  int        `json:"extensionCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	DisbursedAt     *time.Time `json:"disbursedAt,omitempty"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
}

// Outstanding reports whether the loan still has money owed on it.
func (l *Loan) Outstanding() bool {
	switch l.Status {
	case LoanDisbursed, LoanActive, LoanOverdue:
		return l.RemainingAmount > 0
	}
	return false
}

// LoanStats summarizes a user's loan history for the dashboard.
type LoanStats struct {
	TotalLoans     int   `json:"totalLoans"`
	ActiveLoans    int   `json:"activeLoans"`
	PaidLoans      int   `json:"paidLoans"`
	TotalRemaining int64 `json:"totalRemaining"`
}

// Transaction is an append-only ledger entry. Once created it is never
// mutated, only settled or cancelled via its status.
type Transaction struct {
	ID          uint              `json:"id"`
	UserID      uint              `json:"userId"`
	Type        TransactionType   `json:"type"`
	Amount      int64             `json:"amount"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description,omitempty"`
	Reference   string            `json:"reference,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Profile holds the KYC record. IsVerified is set only by backend
// action; AvailableLoanLimit is the backend-granted borrowing ceiling.
type Profile struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"userId"`
	RegisterNumber     string    `json:"registerNumber"`
	DateOfBirth        string    `json:"dateOfBirth"`
	Gender             string    `json:"gender"`
	Address            string    `json:"address"`
	Employment         string    `json:"employment"`
	EmergencyContact   string    `json:"emergencyContact"`
	BankName           string    `json:"bankName"`
	BankAccount        string    `json:"bankAccount"`
	IDCardFrontURL     string    `json:"idCardFrontUrl,omitempty"`
	IDCardBackURL      string    `json:"idCardBackUrl,omitempty"`
	IsVerified         bool      `json:"isVerified"`
	AvailableLoanLimit int64     `json:"availableLoanLimit"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Withdrawal is a request to move wallet funds to a bank account.
type Withdrawal struct {
	ID          uint             `json:"id"`
	UserID      uint             `json:"userId"`
	Amount      int64            `json:"amount"`
	BankName    string           `json:"bankName"`
	BankAccount string           `json:"bankAccount"`
	Status      WithdrawalStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}
