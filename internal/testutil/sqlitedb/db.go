// Package sqlitedb opens a migrated in-memory store for tests and seeds it.
package sqlitedb

import (
	"context"
	"testing"

	"genesis-lending/internal/domain/loan"
	"genesis-lending/internal/domain/user"
	infradb "genesis-lending/internal/infrastructure/db"
	"genesis-lending/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh in-memory database. The pool is pinned to one
// connection because every sqlite :memory: connection is its own database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := infradb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedUser inserts a user with the given role and balance.
func SeedUser(t *testing.T, db *gorm.DB, role user.Role, balance string, loc user.Location) *user.User {
	t.Helper()
	uid := id.NewID32()
	u := &user.User{
		UserID:       uid,
		Name:         string(role) + "-" + uid[:6],
		Email:        uid + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Balance:      decimal.RequireFromString(balance),
		Location:     loc,
	}
	if err := db.WithContext(context.Background()).Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedLoan inserts a loan; mutate adjusts the defaults before insert.
func SeedLoan(t *testing.T, db *gorm.DB, borrower *user.User, mutate func(l *loan.Loan)) *loan.Loan {
	t.Helper()
	l := &loan.Loan{
		LoanID:       id.NewID32(),
		BorrowerID:   borrower.ID,
		Amount:       decimal.NewFromInt(1000),
		Purpose:      "working capital",
		InterestRate: decimal.NewFromInt(12),
		Term:         12,
		Status:       loan.StatusPending,
		PaymentMode:  loan.PaymentOnline,
	}
	if mutate != nil {
		mutate(l)
	}
	if err := db.WithContext(context.Background()).Omit("Borrower", "Lender").Create(l).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}

// Balance re-reads a user's balance.
func Balance(t *testing.T, db *gorm.DB, userID uint64) decimal.Decimal {
	t.Helper()
	var u user.User
	if err := db.First(&u, userID).Error; err != nil {
		t.Fatalf("reload user %d: %v", userID, err)
	}
	return u.Balance
}

// Reload re-reads a loan by its numeric id.
func Reload(t *testing.T, db *gorm.DB, loanID uint64) *loan.Loan {
	t.Helper()
	var l loan.Loan
	if err := db.First(&l, loanID).Error; err != nil {
		t.Fatalf("reload loan %d: %v", loanID, err)
	}
	return &l
}
