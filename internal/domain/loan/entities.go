package loan

import (
	"errors"
	"time"

	"genesis-lending/internal/domain/user"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidState      = errors.New("invalid loan state")
	ErrInsufficientFunds = errors.New("insufficient funds")

	ErrNotFundable  = &StateError{Msg: "Loan is not available for funding"}
	ErrNotRepayable = &StateError{Msg: "Only funded loans can be repaid"}
)

// StateError is an ErrInvalidState carrying a client-facing message.
type StateError struct{ Msg string }

func (e *StateError) Error() string        { return e.Msg }
func (e *StateError) Is(target error) bool { return target == ErrInvalidState }

// InsufficientFundsError reports the amount an operation needed and what the payer had.
type InsufficientFundsError struct {
	Msg       string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string        { return e.Msg }
func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }

type Status string

const (
	StatusPending   Status = "pending"
	StatusFunded    Status = "funded"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusFunded, StatusRejected},
	StatusFunded:  {StatusCompleted},
}

// CanTransition reports whether a loan may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

type PaymentMode string

const (
	PaymentOnline PaymentMode = "online"
	PaymentCash   PaymentMode = "cash"
	PaymentCheque PaymentMode = "cheque"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentOnline, PaymentCash, PaymentCheque:
		return true
	}
	return false
}

// Table: loans
type Loan struct {
	ID            uint64          `gorm:"primaryKey;column:id"`
	LoanID        string          `gorm:"column:loan_id;size:32;uniqueIndex:ux_loans_loan_id"`
	BorrowerID    uint64          `gorm:"column:borrower_id;not null;index:idx_loans_borrower"`
	LenderID      *uint64         `gorm:"column:lender_id;index:idx_loans_lender"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null"`
	Purpose       string          `gorm:"column:purpose;type:text;not null"`
	InterestRate  decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2);not null"`
	Term          int             `gorm:"column:term;not null"`
	Status        Status          `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_loans_status"`
	HasCollateral bool            `gorm:"column:has_collateral;not null;default:false"`
	PaymentMode   PaymentMode     `gorm:"column:payment_mode;type:varchar(16);not null;default:'online'"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	FundedAt      *time.Time      `gorm:"column:funded_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Borrower *user.User `gorm:"foreignKey:BorrowerID;references:ID"`
	Lender   *user.User `gorm:"foreignKey:LenderID;references:ID"`
}

func (Loan) TableName() string { return "loans" }

// RepaymentAmount is principal plus simple interest over the full term:
// amount * (1 + interestRate/100/12 * term), rounded to cents.
func (l *Loan) RepaymentAmount() decimal.Decimal {
	interest := l.InterestRate.Mul(decimal.NewFromInt(int64(l.Term))).Div(decimal.NewFromInt(1200))
	return l.Amount.Mul(decimal.NewFromInt(1).Add(interest)).Round(2)
}

// IsBorrower / IsLender compare against the numeric user PK.
func (l *Loan) IsBorrower(userID uint64) bool { return l.BorrowerID == userID }
func (l *Loan) IsLender(userID uint64) bool   { return l.LenderID != nil && *l.LenderID == userID }
