package loan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"genesis-lending/internal/domain/access"
	"genesis-lending/internal/domain/apperr"
	"genesis-lending/internal/domain/loan"
	"genesis-lending/internal/domain/uow"
	"genesis-lending/internal/domain/user"
	"genesis-lending/pkg/id"

	"github.com/shopspring/decimal"
)

const repaidMessage = "Loan repaid successfully"

// maxInterestRate is the widest value the decimal(6,2) column holds.
var maxInterestRate = decimal.RequireFromString("9999.99")

type Usecase struct {
	repo loan.Repository
	uow  uow.UnitOfWork
	now  func() time.Time
}

func NewUsecase(r loan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Create(ctx context.Context, actor access.Actor, in CreateLoanInput) (*LoanDTO, error) {
	if err := access.RequireRole(user.RoleBorrower, actor.Role); err != nil {
		return nil, err
	}
	rate := in.InterestRate.Round(2)
	switch {
	case !in.Amount.IsPositive():
		return nil, apperr.Invalid("amount", "amount must be greater than 0")
	case strings.TrimSpace(in.Purpose) == "":
		return nil, apperr.Invalid("purpose", "purpose is required")
	case rate.IsNegative():
		return nil, apperr.Invalid("interestRate", "interestRate must not be negative")
	case rate.GreaterThan(maxInterestRate):
		return nil, apperr.Invalid("interestRate", "interestRate must not exceed 9999.99")
	case in.Term < 1:
		return nil, apperr.Invalid("term", "term must be at least 1 month")
	}
	mode := loan.PaymentOnline
	if in.PaymentMode != "" {
		mode = loan.PaymentMode(in.PaymentMode)
		if !mode.Valid() {
			return nil, apperr.Invalid("paymentMode", "paymentMode must be one of online, cash, cheque")
		}
	}

	l := &loan.Loan{
		LoanID:        id.NewID32(),
		BorrowerID:    actor.ID,
		Amount:        in.Amount,
		Purpose:       strings.TrimSpace(in.Purpose),
		InterestRate:  rate,
		Term:          in.Term,
		Status:        loan.StatusPending,
		HasCollateral: in.HasCollateral,
		PaymentMode:   mode,
		CreatedAt:     u.now(),
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}
	dto := toLoanDTO(l)
	return &dto, nil
}

// Fund moves the principal from the lender to the borrower and marks the loan
// funded. Every precondition is checked against locked rows inside the
// transaction that performs the writes.
func (u *Usecase) Fund(ctx context.Context, actor access.Actor, loanID string) (*LoanDTO, error) {
	if err := access.RequireRole(user.RoleLender, actor.Role); err != nil {
		return nil, err
	}

	var dto LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !loan.CanTransition(l.Status, loan.StatusFunded) || l.LenderID != nil {
			return loan.ErrNotFundable
		}

		lender, borrower, err := lockPair(ctx, r.Users, actor.ID, l.BorrowerID)
		if err != nil {
			return err
		}
		if lender.Balance.LessThan(l.Amount) {
			return &loan.InsufficientFundsError{
				Msg:       "Insufficient balance to fund this loan",
				Required:  l.Amount,
				Available: lender.Balance,
			}
		}

		lender.Balance = lender.Balance.Sub(l.Amount)
		if err := r.Users.Save(ctx, lender); err != nil {
			return fmt.Errorf("debit lender: %w", err)
		}
		borrower.Balance = borrower.Balance.Add(l.Amount)
		if err := r.Users.Save(ctx, borrower); err != nil {
			return fmt.Errorf("credit borrower: %w", err)
		}

		fundedAt := u.now()
		l.LenderID = &lender.ID
		l.Status = loan.StatusFunded
		l.FundedAt = &fundedAt
		if err := r.Loans.Save(ctx, l); err != nil {
			return fmt.Errorf("mark loan funded: %w", err)
		}

		l.Borrower, l.Lender = borrower, lender
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Repay charges principal plus simple interest for the whole term in one
// payment, credits the lender and completes the loan.
func (u *Usecase) Repay(ctx context.Context, actor access.Actor, loanID string) (*RepaymentDTO, error) {
	if err := access.RequireRole(user.RoleBorrower, actor.Role); err != nil {
		return nil, err
	}

	var out RepaymentDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := access.CanAccessLoan(actor, l); err != nil {
			return err
		}
		if !loan.CanTransition(l.Status, loan.StatusCompleted) {
			return loan.ErrNotRepayable
		}
		if l.LenderID == nil {
			return fmt.Errorf("funded loan %s has no lender", l.LoanID)
		}

		total := l.RepaymentAmount()
		borrower, lender, err := lockPair(ctx, r.Users, l.BorrowerID, *l.LenderID)
		if err != nil {
			return err
		}
		if borrower.Balance.LessThan(total) {
			return &loan.InsufficientFundsError{
				Msg:       "Insufficient balance to repay this loan",
				Required:  total,
				Available: borrower.Balance,
			}
		}

		borrower.Balance = borrower.Balance.Sub(total)
		if err := r.Users.Save(ctx, borrower); err != nil {
			return fmt.Errorf("debit borrower: %w", err)
		}
		lender.Balance = lender.Balance.Add(total)
		if err := r.Users.Save(ctx, lender); err != nil {
			return fmt.Errorf("credit lender: %w", err)
		}

		l.Status = loan.StatusCompleted
		if err := r.Loans.Save(ctx, l); err != nil {
			return fmt.Errorf("mark loan completed: %w", err)
		}

		l.Borrower, l.Lender = borrower, lender
		out = RepaymentDTO{Loan: toLoanDTO(l), RepaymentAmount: total, Message: repaidMessage}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// lockPair locks two users in ascending id order so concurrent transfers
// between the same parties cannot deadlock, and returns them in argument order.
func lockPair(ctx context.Context, users user.Repository, a, b uint64) (*user.User, *user.User, error) {
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	u1, err := users.GetByIDForUpdate(ctx, first)
	if err != nil {
		return nil, nil, fmt.Errorf("lock user %d: %w", first, err)
	}
	u2, err := users.GetByIDForUpdate(ctx, second)
	if err != nil {
		return nil, nil, fmt.Errorf("lock user %d: %w", second, err)
	}
	if u1.ID == a {
		return u1, u2, nil
	}
	return u2, u1, nil
}

func (u *Usecase) ListPending(ctx context.Context, actor access.Actor) ([]LoanDTO, error) {
	if err := access.RequireRole(user.RoleLender, actor.Role); err != nil {
		return nil, err
	}
	pending := loan.StatusPending
	return u.list(ctx, loan.Query{Status: &pending})
}

func (u *Usecase) ListForBorrower(ctx context.Context, actor access.Actor) ([]LoanDTO, error) {
	if err := access.RequireRole(user.RoleBorrower, actor.Role); err != nil {
		return nil, err
	}
	return u.list(ctx, loan.Query{BorrowerID: &actor.ID})
}

func (u *Usecase) ListForLender(ctx context.Context, actor access.Actor) ([]LoanDTO, error) {
	if err := access.RequireRole(user.RoleLender, actor.Role); err != nil {
		return nil, err
	}
	return u.list(ctx, loan.Query{LenderID: &actor.ID})
}

func (u *Usecase) list(ctx context.Context, q loan.Query) ([]LoanDTO, error) {
	ls, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return toLoanDTOs(ls), nil
}

func (u *Usecase) Get(ctx context.Context, actor access.Actor, loanID string) (*LoanDetailDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := access.CanAccessLoan(actor, l); err != nil {
		return nil, err
	}
	return &LoanDetailDTO{LoanDTO: toLoanDTO(l), Permissions: access.CapabilitiesFor(actor, l)}, nil
}

// Filter narrows the actor's base set (pending loans for lenders, own loans
// for borrowers). The location match runs in memory after the query.
func (u *Usecase) Filter(ctx context.Context, actor access.Actor, in FilterInput) ([]LoanDTO, error) {
	var q loan.Query
	if actor.Role == user.RoleLender {
		pending := loan.StatusPending
		q.Status = &pending
	} else {
		q.BorrowerID = &actor.ID
	}

	if in.InterestRate != "" {
		rate, err := decimal.NewFromString(strings.TrimSpace(in.InterestRate))
		if err != nil {
			return nil, apperr.Invalid("interestRate", "interestRate must be a number")
		}
		q.MaxInterestRate = &rate
	}
	if in.HasCollateral != "" {
		v := in.HasCollateral == "true"
		q.HasCollateral = &v
	}
	if in.PaymentMode != "" {
		mode := loan.PaymentMode(in.PaymentMode)
		q.PaymentMode = &mode
	}

	ls, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("filter loans: %w", err)
	}
	if in.Location != "" {
		ls = filterByLocation(ls, in.Location)
	}
	return toLoanDTOs(ls), nil
}

func filterByLocation(ls []loan.Loan, needle string) []loan.Loan {
	needle = strings.ToLower(needle)
	out := ls[:0]
	for _, l := range ls {
		if l.Borrower == nil {
			continue
		}
		if strings.Contains(strings.ToLower(l.Borrower.Location.City), needle) ||
			strings.Contains(strings.ToLower(l.Borrower.Location.Country), needle) {
			out = append(out, l)
		}
	}
	return out
}
