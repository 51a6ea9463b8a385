package repository

import (
	"context"

	"storepos/internal/model"

	"gorm.io/gorm"
)

// UserRepository defines the data access contract for login accounts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// UpdateCredentials overwrites hash and salt in one statement and
	// reports the number of rows touched so callers can detect a missing id.
	UpdateCredentials(ctx context.Context, id uint, passwordHash, salt string) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) UpdateCredentials(ctx context.Context, id uint, passwordHash, salt string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"salt":          salt,
	})
	return res.RowsAffected, res.Error
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	// Deleting a missing id is a no-op, matching the idempotent contract.
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}
