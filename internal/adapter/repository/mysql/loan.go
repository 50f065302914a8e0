package mysql

import (
	"context"
	"errors"

	loanDomain "genesis-lending/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Borrower").
		Preload("Lender").
		Where("loan_id = ?", loanID).
		First(&out)
	return loanOrNotFound(&out, res.Error)
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return loanOrNotFound(&out, res.Error)
}

func (r *LoanRepository) List(ctx context.Context, q loanDomain.Query) ([]loanDomain.Loan, error) {
	tx := r.db.WithContext(ctx).Preload("Borrower").Preload("Lender")
	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}
	if q.BorrowerID != nil {
		tx = tx.Where("borrower_id = ?", *q.BorrowerID)
	}
	if q.LenderID != nil {
		tx = tx.Where("lender_id = ?", *q.LenderID)
	}
	if q.MaxInterestRate != nil {
		tx = tx.Where("interest_rate <= ?", q.MaxInterestRate.InexactFloat64())
	}
	if q.HasCollateral != nil {
		tx = tx.Where("has_collateral = ?", *q.HasCollateral)
	}
	if q.PaymentMode != nil {
		tx = tx.Where("payment_mode = ?", *q.PaymentMode)
	}

	var out []loanDomain.Loan
	if err := tx.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func loanOrNotFound(l *loanDomain.Loan, err error) (*loanDomain.Loan, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}
