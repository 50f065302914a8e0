package mysql

import (
	"context"
	"errors"
	"testing"

	domain "genesis-lending/internal/domain/user"
	"genesis-lending/internal/testutil/sqlitedb"
	"genesis-lending/pkg/id"

	"github.com/shopspring/decimal"
)

func TestUserRepository_CreateAndLookups(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{
		UserID:       id.NewID32(),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleLender,
		Balance:      decimal.RequireFromString("250.75"),
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("Create did not set ID")
	}

	byID, err := repo.GetByID(ctx, u.ID)
	if err != nil || byID.Email != "ada@example.com" {
		t.Fatalf("GetByID = %+v, %v", byID, err)
	}
	byUID, err := repo.GetByUserID(ctx, u.UserID)
	if err != nil || byUID.ID != u.ID {
		t.Fatalf("GetByUserID = %+v, %v", byUID, err)
	}
	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("GetByEmail = %+v, %v", byEmail, err)
	}
	locked, err := repo.GetByIDForUpdate(ctx, u.ID)
	if err != nil || !locked.Balance.Equal(decimal.RequireFromString("250.75")) {
		t.Fatalf("GetByIDForUpdate = %+v, %v", locked, err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mk := func() *domain.User {
		return &domain.User{UserID: id.NewID32(), Name: "x", Email: "dup@example.com", PasswordHash: "h", Role: domain.RoleBorrower}
	}
	if err := repo.Create(ctx, mk()); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if err := repo.Create(ctx, mk()); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists on duplicate email, got %v", err)
	}
}

func TestUserRepository_SaveAndNotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := sqlitedb.SeedUser(t, db, domain.RoleBorrower, "10", domain.Location{})
	u.Balance = u.Balance.Add(decimal.NewFromInt(5))
	u.Location = domain.Location{City: "Pune", Country: "India"}
	if err := repo.Save(ctx, u); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Balance.Equal(decimal.NewFromInt(15)) || got.Location.Country != "India" {
		t.Fatalf("Save not persisted: %+v", got)
	}

	if _, err := repo.GetByUserID(ctx, "ffffffffffffffffffffffffffffffff"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
