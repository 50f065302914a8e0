package profile

import (
	"time"

	"genesis-lending/internal/domain/user"

	"github.com/shopspring/decimal"
)

type ProfileDTO struct {
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
	Location  user.Location   `json:"location"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toProfileDTO(u *user.User) *ProfileDTO {
	return &ProfileDTO{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Balance:   u.Balance,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}
