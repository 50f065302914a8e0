package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"genesis-lending/internal/domain/apperr"
	"genesis-lending/internal/domain/user"
	"genesis-lending/pkg/id"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid credentials"

// TokenIssuer signs a session token for a public user id.
type TokenIssuer interface {
	Mint(userID string) (string, error)
}

type Usecase struct {
	users  user.Repository
	tokens TokenIssuer
	cost   int
}

func NewUsecase(r user.Repository, tokens TokenIssuer) *Usecase {
	return &Usecase{users: r, tokens: tokens, cost: bcrypt.DefaultCost}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*TokenDTO, error) {
	email := normalizeEmail(in.Email)
	role := user.Role(in.Role)
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, apperr.Invalid("name", "Name is required")
	case email == "":
		return nil, apperr.Invalid("email", "Please include a valid email")
	case len(in.Password) < 6:
		return nil, apperr.Invalid("password", "Please enter a password with 6 or more characters")
	case !role.Valid():
		return nil, apperr.Invalid("role", "Role must be either borrower or lender")
	}

	_, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.Invalid("email", "User already exists")
	case !errors.Is(err, user.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	usr := &user.User{
		UserID:       id.NewID32(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Balance:      decimal.Zero,
	}
	// a concurrent registration can win between the lookup and the insert
	if err := u.users.Create(ctx, usr); errors.Is(err, user.ErrAlreadyExists) {
		return nil, apperr.Invalid("email", "User already exists")
	} else if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u.issue(usr.UserID)
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*TokenDTO, error) {
	usr, err := u.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, user.ErrNotFound) {
		return nil, apperr.Invalid("credentials", invalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)) != nil {
		return nil, apperr.Invalid("credentials", invalidCredentials)
	}
	return u.issue(usr.UserID)
}

func (u *Usecase) issue(userID string) (*TokenDTO, error) {
	tok, err := u.tokens.Mint(userID)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}
	return &TokenDTO{Token: tok}, nil
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
