package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

// Query narrows a loan listing; nil fields are ignored.
type Query struct {
	Status          *Status
	BorrowerID      *uint64
	LenderID        *uint64
	MaxInterestRate *decimal.Decimal
	HasCollateral   *bool
	PaymentMode     *PaymentMode
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error

	// Get by public loan_id with borrower and lender preloaded
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)

	// Row-locked read, no preloads; only meaningful inside a unit of work
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)

	// Newest first, parties preloaded
	List(ctx context.Context, q Query) ([]Loan, error)

	Save(ctx context.Context, l *Loan) error
}
