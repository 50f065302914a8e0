package loan

import (
	"time"

	"genesis-lending/internal/domain/access"
	"genesis-lending/internal/domain/loan"
	"genesis-lending/internal/domain/user"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	Amount        decimal.Decimal
	Purpose       string
	InterestRate  decimal.Decimal
	Term          int
	HasCollateral bool
	PaymentMode   string
}

// FilterInput carries the raw query values; empty means "not provided".
type FilterInput struct {
	InterestRate  string
	HasCollateral string
	PaymentMode   string
	Location      string
}

// PartyDTO is the public identity of a borrower or lender.
type PartyDTO struct {
	UserID   string        `json:"userId"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Location user.Location `json:"location"`
}

type LoanDTO struct {
	LoanID        string          `json:"loanId"`
	Borrower      *PartyDTO       `json:"borrower"`
	Lender        *PartyDTO       `json:"lender"`
	Amount        decimal.Decimal `json:"amount"`
	Purpose       string          `json:"purpose"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	Term          int             `json:"term"`
	Status        string          `json:"status"`
	HasCollateral bool            `json:"hasCollateral"`
	PaymentMode   string          `json:"paymentMode"`
	CreatedAt     time.Time       `json:"createdAt"`
	FundedAt      *time.Time      `json:"fundedAt"`
}

type LoanDetailDTO struct {
	LoanDTO
	Permissions access.Capabilities `json:"permissions"`
}

type RepaymentDTO struct {
	Loan            LoanDTO         `json:"loan"`
	RepaymentAmount decimal.Decimal `json:"repaymentAmount"`
	Message         string          `json:"message"`
}

func toParty(u *user.User) *PartyDTO {
	if u == nil {
		return nil
	}
	return &PartyDTO{UserID: u.UserID, Name: u.Name, Email: u.Email, Location: u.Location}
}

func toLoanDTO(l *loan.Loan) LoanDTO {
	return LoanDTO{
		LoanID:        l.LoanID,
		Borrower:      toParty(l.Borrower),
		Lender:        toParty(l.Lender),
		Amount:        l.Amount,
		Purpose:       l.Purpose,
		InterestRate:  l.InterestRate,
		Term:          l.Term,
		Status:        string(l.Status),
		HasCollateral: l.HasCollateral,
		PaymentMode:   string(l.PaymentMode),
		CreatedAt:     l.CreatedAt,
		FundedAt:      l.FundedAt,
	}
}

func toLoanDTOs(ls []loan.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, toLoanDTO(&ls[i]))
	}
	return out
}
