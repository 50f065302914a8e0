package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"genesis-lending/internal/adapter/repository/mysql"
	"genesis-lending/internal/domain/apperr"
	"genesis-lending/internal/domain/user"
	"genesis-lending/internal/infrastructure/token"
	"genesis-lending/internal/testutil/sqlitedb"
	"genesis-lending/internal/testutil/usermock"

	"golang.org/x/crypto/bcrypt"
)

func newTestUsecase(t *testing.T) (*Usecase, *token.Manager, *mysql.UserRepository) {
	t.Helper()
	db := sqlitedb.Open(t)
	repo := mysql.NewUserRepository(db)
	tm := token.NewManager("genesis-test", "secret", time.Hour)
	uc := NewUsecase(repo, tm)
	uc.cost = bcrypt.MinCost
	return uc, tm, repo
}

func TestRegisterThenLogin(t *testing.T) {
	uc, tm, repo := newTestUsecase(t)
	ctx := context.Background()

	reg, err := uc.Register(ctx, RegisterInput{Name: "Ada", Email: " Ada@Example.com ", Password: "secret1", Role: "lender"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	uid, err := tm.Parse(reg.Token)
	if err != nil {
		t.Fatalf("register token: %v", err)
	}

	stored, err := repo.GetByUserID(ctx, uid)
	if err != nil {
		t.Fatalf("stored user: %v", err)
	}
	if stored.Email != "ada@example.com" || stored.Role != user.RoleLender || !stored.Balance.IsZero() {
		t.Fatalf("unexpected user: %+v", stored)
	}
	if stored.PasswordHash == "secret1" {
		t.Fatal("password stored in clear")
	}

	login, err := uc.Login(ctx, LoginInput{Email: "ADA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got, err := tm.Parse(login.Token); err != nil || got != uid {
		t.Fatalf("login token resolves to %q (%v), want %q", got, err, uid)
	}
}

func TestRegister_Rejects(t *testing.T) {
	uc, _, _ := newTestUsecase(t)
	ctx := context.Background()
	if _, err := uc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.io", Password: "secret1", Role: "borrower"}); err != nil {
		t.Fatalf("seed register: %v", err)
	}

	tests := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{"duplicate", RegisterInput{Name: "B", Email: "A@X.io", Password: "secret1", Role: "lender"}, "User already exists"},
		{"short password", RegisterInput{Name: "B", Email: "b@x.io", Password: "12345", Role: "lender"}, "Please enter a password with 6 or more characters"},
		{"bad role", RegisterInput{Name: "B", Email: "b@x.io", Password: "secret1", Role: "admin"}, "Role must be either borrower or lender"},
		{"no name", RegisterInput{Email: "b@x.io", Password: "secret1", Role: "lender"}, "Name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Register(ctx, tt.in)
			var ve *apperr.ValidationError
			if !errors.As(err, &ve) || ve.Message != tt.msg {
				t.Fatalf("want %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	uc, _, _ := newTestUsecase(t)
	ctx := context.Background()
	if _, err := uc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.io", Password: "secret1", Role: "borrower"}); err != nil {
		t.Fatalf("seed register: %v", err)
	}

	for _, in := range []LoginInput{{Email: "a@x.io", Password: "wrong!"}, {Email: "nobody@x.io", Password: "secret1"}} {
		_, err := uc.Login(ctx, in)
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) || ve.Message != "Invalid credentials" {
			t.Fatalf("%+v: want Invalid credentials, got %v", in, err)
		}
	}
}

type failingIssuer struct{}

func (failingIssuer) Mint(string) (string, error) { return "", errors.New("no key") }

func TestLogin_StoreAndIssuerErrors(t *testing.T) {
	down := errors.New("db down")
	uc := NewUsecase(&usermock.Repo{
		GetByEmailFn: func(context.Context, string) (*user.User, error) { return nil, down },
	}, failingIssuer{})
	if _, err := uc.Login(context.Background(), LoginInput{Email: "a@x.io", Password: "x"}); !errors.Is(err, down) {
		t.Fatalf("want db error, got %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	uc = NewUsecase(&usermock.Repo{
		GetByEmailFn: func(context.Context, string) (*user.User, error) {
			return &user.User{UserID: "u", PasswordHash: string(hash)}, nil
		},
	}, failingIssuer{})
	_, err := uc.Login(context.Background(), LoginInput{Email: "a@x.io", Password: "secret1"})
	if err == nil || errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("issuer failure should surface as a server error, got %v", err)
	}
}

func TestRegister_LostInsertRaceIsDuplicate(t *testing.T) {
	uc := NewUsecase(&usermock.Repo{
		GetByEmailFn: func(context.Context, string) (*user.User, error) { return nil, user.ErrNotFound },
		CreateFn:     func(context.Context, *user.User) error { return user.ErrAlreadyExists },
	}, token.NewManager("genesis-test", "secret", time.Hour))
	uc.cost = bcrypt.MinCost

	_, err := uc.Register(context.Background(), RegisterInput{Name: "a", Email: "a@x.io", Password: "secret1", Role: "lender"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "email" || ve.Message != "User already exists" {
		t.Fatalf("want duplicate email validation error, got %v", err)
	}
}

func TestRegister_CreateFailureSurfaces(t *testing.T) {
	down := errors.New("db down")
	uc := NewUsecase(&usermock.Repo{
		GetByEmailFn: func(context.Context, string) (*user.User, error) { return nil, user.ErrNotFound },
		CreateFn:     func(context.Context, *user.User) error { return down },
	}, failingIssuer{})
	uc.cost = bcrypt.MinCost

	_, err := uc.Register(context.Background(), RegisterInput{Name: "a", Email: "a@x.io", Password: "secret1", Role: "lender"})
	if !errors.Is(err, down) || errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want wrapped store error, got %v", err)
	}
}
