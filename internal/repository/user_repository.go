package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"everyday-planner/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure finds or creates the user row for an opaque external identity.
func (r *UserRepository) Ensure(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("external_id = ?", externalID).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{ExternalID: externalID}
		if err := db.Create(&user).Error; err != nil {
			// A concurrent request may have created the row first.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if err := db.Where("external_id = ?", externalID).First(&user).Error; err != nil {
					return nil, fmt.Errorf("find user after race: %w", err)
				}
				return &user, nil
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
