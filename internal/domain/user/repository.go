package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Row-locked read; only meaningful inside a unit of work
	GetByIDForUpdate(ctx context.Context, id uint64) (*User, error)

	Save(ctx context.Context, u *User) error
}
