package service

import (
	"context"
	"fmt"

	"commerce-seeder/internal/model"

	"gorm.io/gorm"
)

// ProductService persists products and their variants
type ProductService interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	CreateVariant(ctx context.Context, variant *model.ProductVariant) error
}

type productServiceImpl struct {
	db *gorm.DB
}

// NewProductService creates a product service on db
func NewProductService(db *gorm.DB) ProductService {
	return &productServiceImpl{db: db}
}

// CreateProduct inserts the product row only; variants are written one by one
func (s *productServiceImpl) CreateProduct(ctx context.Context, product *model.Product) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Variants").Create(product).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create product %s: %w", product.Name, err)
	}
	return nil
}

// CreateVariant inserts a single variant
func (s *productServiceImpl) CreateVariant(ctx context.Context, variant *model.ProductVariant) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(variant).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create variant for product %d: %w", variant.ProductID, err)
	}
	return nil
}
