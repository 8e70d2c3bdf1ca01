package generator

import (
	"context"
	"encoding/json"
	"testing"

	"commerce-seeder/internal/config"

	"github.com/davecgh/go-spew/spew"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var oneMerchant = []UserSummary{{ID: 7, Username: "shop", Role: "MERCHANT"}}

func TestCreateCatalogForcesDistinguishingAttributes(t *testing.T) {
	// every coin flip fails, so both variants rely on the forced attribute
	f := newFixture(newScriptedRand())
	g := f.generator()

	products, variants, err := g.CreateCatalog(context.Background(), oneMerchant, 1, config.Range{Min: 2, Max: 2})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Len(t, variants, 2, spew.Sdump(variants))

	require.NotNil(t, variants[0].Color)
	assert.Equal(t, colorNames[0], *variants[0].Color)
	assert.Nil(t, variants[0].Size)

	assert.Nil(t, variants[1].Color)
	require.NotNil(t, variants[1].Size)
	assert.Equal(t, "S", *variants[1].Size)
}

func TestCreateCatalogSingleVariantMayHaveNoAttributes(t *testing.T) {
	f := newFixture(newScriptedRand())
	g := f.generator()

	_, variants, err := g.CreateCatalog(context.Background(), oneMerchant, 1, config.Range{Min: 1, Max: 1})
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Nil(t, variants[0].Color)
	assert.Nil(t, variants[0].Size)
}

func TestCreateCatalogVariantsAreDistinguishable(t *testing.T) {
	f := newFixture(NewRand(7))
	g := f.generator()
	merchants := []UserSummary{{ID: 1}, {ID: 2}, {ID: 3}}

	products, variants, err := g.CreateCatalog(context.Background(), merchants, 6, config.Range{Min: 1, Max: 5})
	require.NoError(t, err)
	require.Len(t, products, 18)

	for _, p := range f.products.products {
		vs := f.products.variantsOf(p.ID)
		require.NotEmpty(t, vs)
		require.LessOrEqual(t, len(vs), 5)
		if len(vs) < 2 {
			continue
		}
		for _, v := range vs {
			assert.True(t, v.Color != nil || v.Size != nil, "variant without attributes: %s", spew.Sdump(v))
		}
	}

	for _, v := range variants {
		assert.True(t, v.Price.GreaterThanOrEqual(decimal.NewFromInt(5)), v.Price.String())
		assert.True(t, v.Price.LessThanOrEqual(decimal.NewFromInt(200)), v.Price.String())
		assert.True(t, v.Price.Equal(v.Price.Round(2)))
		assert.GreaterOrEqual(t, v.StockQuantity, 0)
		assert.LessOrEqual(t, v.StockQuantity, 100)
	}
}

func TestCreateCatalogProductFields(t *testing.T) {
	f := newFixture(NewRand(3))
	g := f.generator()

	_, _, err := g.CreateCatalog(context.Background(), oneMerchant, 4, config.Range{Min: 1, Max: 2})
	require.NoError(t, err)
	require.Len(t, f.products.products, 4)

	for _, p := range f.products.products {
		assert.Equal(t, uint(7), p.OwnerID)
		assert.Equal(t, "ACTIVE", string(p.Status))
		assert.True(t, p.MinPrice.IsZero())
		assert.Zero(t, p.TotalStock)
		assert.Contains(t, categories, p.Category)
		assert.NotEmpty(t, p.Description)
		require.NotNil(t, p.DefaultImage)

		features, err := json.Marshal(p.Features)
		require.NoError(t, err)
		list := gjson.ParseBytes(features)
		require.True(t, list.IsArray(), string(features))
		assert.GreaterOrEqual(t, len(list.Array()), 3)
		assert.LessOrEqual(t, len(list.Array()), 7)

		specs, err := json.Marshal(p.Specifications)
		require.NoError(t, err)
		keys := gjson.GetBytes(specs, "#.key").Array()
		values := gjson.GetBytes(specs, "#.value").Array()
		assert.GreaterOrEqual(t, len(keys), 2, string(specs))
		assert.LessOrEqual(t, len(keys), 5, string(specs))
		assert.Len(t, values, len(keys))
		for _, v := range values {
			assert.NotEmpty(t, v.String())
		}
	}
}

func TestCreateCatalogVariantImageFallsBackToProductImage(t *testing.T) {
	f := newFixture(newScriptedRand())
	f.images = &stubImages{results: []mo.Option[string]{mo.Some("/products/default.jpg")}}
	g := f.generator()

	products, variants, err := g.CreateCatalog(context.Background(), oneMerchant, 1, config.Range{Min: 2, Max: 2})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.NotNil(t, products[0].DefaultImage)
	assert.Equal(t, "/products/default.jpg", *products[0].DefaultImage)

	for _, v := range variants {
		require.NotNil(t, v.Image)
		assert.Equal(t, "/products/default.jpg", *v.Image)
	}
}

func TestCreateCatalogWithoutImages(t *testing.T) {
	f := newFixture(newScriptedRand())
	f.images = &stubImages{}
	g := f.generator()

	products, variants, err := g.CreateCatalog(context.Background(), oneMerchant, 1, config.Range{Min: 1, Max: 1})
	require.NoError(t, err)
	assert.Nil(t, products[0].DefaultImage)
	assert.Nil(t, variants[0].Image)
}

func TestCreateCatalogSkipsFailedProducts(t *testing.T) {
	f := newFixture(NewRand(5))
	f.products.failProductCalls = map[int]bool{1: true}
	g := f.generator()

	products, variants, err := g.CreateCatalog(context.Background(), oneMerchant, 3, config.Range{Min: 1, Max: 1})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Len(t, variants, 2)
	for _, v := range variants {
		assert.NotZero(t, v.ProductID)
	}
}

func TestCreateCatalogWithoutMerchants(t *testing.T) {
	f := newFixture(NewRand(1))
	g := f.generator()

	products, variants, err := g.CreateCatalog(context.Background(), nil, 5, config.Range{Min: 1, Max: 5})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, variants)
	assert.Zero(t, f.products.productCalls)
}

func TestCreateCatalogStopsOnCanceledContext(t *testing.T) {
	f := newFixture(NewRand(1))
	g := f.generator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := g.CreateCatalog(ctx, oneMerchant, 2, config.Range{Min: 1, Max: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
