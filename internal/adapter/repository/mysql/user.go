package mysql

import (
	"context"
	"errors"

	userDomain "genesis-lending/internal/domain/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// Create maps a unique-index violation to ErrAlreadyExists. The db must be
// opened with TranslateError.
func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userDomain.ErrAlreadyExists
	}
	return err
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return userOrNotFound(&out, res.Error)
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return userOrNotFound(&out, res.Error)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return userOrNotFound(&out, res.Error)
}

func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return userOrNotFound(&out, res.Error)
}

func userOrNotFound(u *userDomain.User, err error) (*userDomain.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
