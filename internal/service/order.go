package service

import (
	"context"
	"fmt"

	"commerce-seeder/internal/model"

	"gorm.io/gorm"
)

// OrderService persists orders together with their lines
type OrderService interface {
	CreateOrder(ctx context.Context, order *model.Order) error
}

type orderServiceImpl struct {
	db *gorm.DB
}

// NewOrderService creates an order service
func NewOrderService(db *gorm.DB) OrderService {
	return &orderServiceImpl{db: db}
}

// CreateOrder writes the order and then each of its items under one
// savepoint: either the whole order lands or none of it.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, order *model.Order) error {
	items := order.Items
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create order for user %d: %w", order.UserID, err)
	}
	return nil
}
