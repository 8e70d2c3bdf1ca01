package service

import (
	"context"
	"errors"
	"testing"

	"commerce-seeder/internal/model"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestCreateProductAndVariantsUseSavepoints(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	expectSavepoint(mock)
	mock.ExpectQuery(`INSERT INTO "products"`).WillReturnRows(returningID(3))
	expectSavepoint(mock)
	mock.ExpectQuery(`INSERT INTO "product_variants"`).WillReturnError(errors.New("value too long"))
	expectRollbackToSavepoint(mock)
	expectSavepoint(mock)
	mock.ExpectQuery(`INSERT INTO "product_variants"`).WillReturnRows(returningID(8))
	mock.ExpectCommit()

	product := &model.Product{
		OwnerID:        2,
		Name:           "Smart Lamp",
		Category:       "Home & Kitchen",
		Features:       datatypes.NewJSONType([]string{"dimmable"}),
		Specifications: datatypes.NewJSONType([]model.Specification{{Key: "watt", Value: "9"}}),
		Status:         model.ProductStatusActive,
		MinPrice:       decimal.Zero,
		// never written by CreateProduct
		Variants: []model.ProductVariant{{Price: decimal.NewFromInt(1)}},
	}
	second := &model.ProductVariant{Size: lo.ToPtr("M"), Price: decimal.RequireFromString("12.50")}

	err := db.Transaction(func(tx *gorm.DB) error {
		products := NewProductService(tx)
		require.NoError(t, products.CreateProduct(ctx, product))

		first := &model.ProductVariant{ProductID: product.ID, Color: lo.ToPtr("Red"), Price: decimal.RequireFromString("9.99")}
		assert.Error(t, products.CreateVariant(ctx, first))

		second.ProductID = product.ID
		require.NoError(t, products.CreateVariant(ctx, second))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, uint(3), product.ID)
	assert.Equal(t, uint(8), second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
