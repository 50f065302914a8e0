package uow

import (
	"context"

	"genesis-lending/internal/domain/loan"
	"genesis-lending/internal/domain/user"
)

// Repos are bound to the transaction opened by WithinTx.
type Repos struct {
	Loans loan.Repository
	Users user.Repository
}

type UnitOfWork interface {
	// Commits when fn returns nil, rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
