package profile

import (
	"context"
	"fmt"
	"strings"

	"genesis-lending/internal/domain/access"
	"genesis-lending/internal/domain/apperr"
	"genesis-lending/internal/domain/uow"
	"genesis-lending/internal/domain/user"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	users user.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(r user.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{users: r, uow: tx}
}

func (u *Usecase) Get(ctx context.Context, actor access.Actor) (*ProfileDTO, error) {
	usr, err := u.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toProfileDTO(usr), nil
}

// Deposit credits the actor's own balance under a row lock.
func (u *Usecase) Deposit(ctx context.Context, actor access.Actor, amount decimal.Decimal) (*ProfileDTO, error) {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return nil, apperr.Invalid("amount", "Please provide a valid amount")
	}

	var out *ProfileDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByIDForUpdate(ctx, actor.ID)
		if err != nil {
			return err
		}
		usr.Balance = usr.Balance.Add(amount)
		if err := r.Users.Save(ctx, usr); err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
		out = toProfileDTO(usr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) SetLocation(ctx context.Context, actor access.Actor, city, country string) (*ProfileDTO, error) {
	city, country = strings.TrimSpace(city), strings.TrimSpace(country)
	if city == "" || country == "" {
		return nil, apperr.Invalid("location", "Please provide both city and country")
	}

	usr, err := u.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	usr.Location = user.Location{City: city, Country: country}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}
	return toProfileDTO(usr), nil
}
