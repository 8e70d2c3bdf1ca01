package service

import (
	"context"
	"fmt"

	"commerce-seeder/internal/model"

	"gorm.io/gorm"
)

// UserService persists seeded accounts
type UserService interface {
	CreateUser(ctx context.Context, user *model.User) error
	CountUsers(ctx context.Context, filters UserFilters) (int64, error)
}

// UserFilters narrows CountUsers
type UserFilters struct {
	Role model.Role
}

type userServiceImpl struct {
	db *gorm.DB
}

// NewUserService creates a user service on db, which may be a transaction
func NewUserService(db *gorm.DB) UserService {
	return &userServiceImpl{db: db}
}

// CreateUser inserts the user inside a nested transaction, so a failed row
// only rolls back to its own savepoint when db is already a transaction.
func (s *userServiceImpl) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Username, err)
	}
	return nil
}

// CountUsers counts users matching filters
func (s *userServiceImpl) CountUsers(ctx context.Context, filters UserFilters) (int64, error) {
	query := s.db.WithContext(ctx).Model(&model.User{})
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
