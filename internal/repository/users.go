package repository

import (
	"context"
	"strings"

	"artisan_market/internal/domain"

	"gorm.io/gorm"
)

// UserRepo is the GORM-backed UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepo
func NewUserRepository(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user, normalizing the email to lowercase
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Role == "" {
		user.Role = domain.RoleBuyer
	}
	if user.Avatar == "" {
		user.Avatar = domain.DefaultAvatar
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID loads a user by primary key
func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Update applies the given columns and returns the reloaded user
func (r *UserRepo) Update(ctx context.Context, id uint, fields map[string]any) (*domain.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(user).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}
