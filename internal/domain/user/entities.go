package user

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
)

func (r Role) Valid() bool { return r == RoleBorrower || r == RoleLender }

type Location struct {
	City    string `gorm:"column:city;size:128" json:"city"`
	Country string `gorm:"column:country;size:128" json:"country"`
}

// Table: users
type User struct {
	// Internal numeric PK, referenced by loans.borrower_id / loans.lender_id
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex), carried in tokens
	UserID       string          `gorm:"column:user_id;size:32;uniqueIndex:ux_users_user_id" json:"userId"`
	Name         string          `gorm:"column:name;size:128;not null" json:"name"`
	Email        string          `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;size:72;not null" json:"-"`
	Role         Role            `gorm:"column:role;type:varchar(16);not null" json:"role"`
	Balance      decimal.Decimal `gorm:"column:balance;type:decimal(18,2);not null;default:0" json:"balance"`
	Location     Location        `gorm:"embedded" json:"location"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }
