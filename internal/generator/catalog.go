package generator

import (
	"context"
	"log"
	"strings"

	"commerce-seeder/internal/config"
	"commerce-seeder/internal/model"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	minVariantPrice = 5.0
	maxVariantPrice = 200.0
	maxVariantStock = 100
)

// ProductSummary is what the order stage needs to know about a product
type ProductSummary struct {
	ID           uint
	OwnerID      uint
	Name         string
	Category     string
	DefaultImage *string
}

// VariantSummary carries the variant plus its product name and owner, which
// become order line snapshots.
type VariantSummary struct {
	ID            uint
	ProductID     uint
	ProductName   string
	OwnerID       uint
	Color         *string
	Size          *string
	Price         decimal.Decimal
	Image         *string
	StockQuantity int
}

// CreateCatalog creates perMerchant products for every merchant, each with a
// random number of variants.
func (g *Generator) CreateCatalog(ctx context.Context, merchants []UserSummary, perMerchant int, variants config.Range) ([]ProductSummary, []VariantSummary, error) {
	log.Println("Creating products and variants...")
	var products []ProductSummary
	var allVariants []VariantSummary

	if len(merchants) == 0 {
		log.Println("No merchants to create products for, skipping product creation")
		return products, allVariants, nil
	}

	for _, merchant := range merchants {
		log.Printf("Creating products for merchant ID: %d", merchant.ID)
		for i := 0; i < perMerchant; i++ {
			if err := ctx.Err(); err != nil {
				return products, allVariants, err
			}

			product := g.newProduct(merchant.ID)
			if err := g.products.CreateProduct(ctx, product); err != nil {
				log.Printf("Error creating product %s: %v", product.Name, err)
				continue
			}
			log.Printf("Created product: %s (ID: %d)", product.Name, product.ID)

			summary := ProductSummary{
				ID:           product.ID,
				OwnerID:      merchant.ID,
				Name:         product.Name,
				Category:     product.Category,
				DefaultImage: product.DefaultImage,
			}
			products = append(products, summary)

			count := intBetween(g.rng, variants)
			for j := 0; j < count; j++ {
				variant := g.newVariant(product, j, count)
				if err := g.products.CreateVariant(ctx, variant); err != nil {
					log.Printf("Error creating variant for product %d: %v", product.ID, err)
					continue
				}
				log.Printf("Created variant for product %d: color %s, size %s, price %s, stock %d (ID: %d)",
					product.ID, lo.FromPtrOr(variant.Color, "-"), lo.FromPtrOr(variant.Size, "-"),
					variant.Price.StringFixed(2), variant.StockQuantity, variant.ID)

				allVariants = append(allVariants, VariantSummary{
					ID:            variant.ID,
					ProductID:     product.ID,
					ProductName:   product.Name,
					OwnerID:       merchant.ID,
					Color:         variant.Color,
					Size:          variant.Size,
					Price:         variant.Price,
					Image:         variant.Image,
					StockQuantity: variant.StockQuantity,
				})
			}
		}
	}

	if len(products) > 0 {
		log.Println("Warning: products.min_price and products.total_stock keep their initial values and are not derived from variants")
	}
	log.Println("Products and variants creation complete")
	return products, allVariants, nil
}

func (g *Generator) newProduct(ownerID uint) *model.Product {
	name := g.catchPhrase() + " " + lo.Capitalize(g.fake.Word())

	features := make([]string, 3+g.rng.IntN(5))
	for i := range features {
		features[i] = g.fake.Word()
	}
	specs := make([]model.Specification, 2+g.rng.IntN(4))
	for i := range specs {
		specs[i] = model.Specification{Key: g.fake.Word(), Value: g.fake.Sentence()}
	}

	now := g.now()
	return &model.Product{
		OwnerID:        ownerID,
		Name:           name,
		Description:    g.fake.Paragraph(),
		Category:       pick(g.rng, categories),
		DefaultImage:   g.images.Provision().ToPointer(),
		Features:       datatypes.NewJSONType(features),
		Specifications: datatypes.NewJSONType(specs),
		Status:         model.ProductStatusActive,
		MinPrice:       decimal.Zero,
		TotalStock:     0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (g *Generator) newVariant(product *model.Product, index, count int) *model.ProductVariant {
	color, size := g.variantAttributes(index, count)

	image := g.images.Provision().ToPointer()
	if image == nil {
		image = product.DefaultImage
	}

	return &model.ProductVariant{
		ProductID:        product.ID,
		Color:            color,
		Size:             size,
		Price:            g.variantPrice(),
		Image:            image,
		StockQuantity:    g.rng.IntN(maxVariantStock + 1),
		ReservedQuantity: 0,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

// variantAttributes draws color and size independently with probability 1/2
// each. In a product with several variants a variant that drew neither gets a
// color at even indexes and a size at odd ones.
func (g *Generator) variantAttributes(index, count int) (color, size *string) {
	if chance(g.rng, 0.5) {
		color = lo.ToPtr(pick(g.rng, colorNames))
	}
	if chance(g.rng, 0.5) {
		size = lo.ToPtr(pick(g.rng, variantSizes))
	}
	if count > 1 && color == nil && size == nil {
		if index%2 == 0 {
			color = lo.ToPtr(pick(g.rng, colorNames))
		} else {
			size = lo.ToPtr(pick(g.rng, forcedSizes))
		}
	}
	return color, size
}

// variantPrice is uniform in [5, 200] rounded to cents
func (g *Generator) variantPrice() decimal.Decimal {
	raw := minVariantPrice + g.rng.Float64()*(maxVariantPrice-minVariantPrice)
	return decimal.NewFromFloat(raw).Round(2)
}

func (g *Generator) catchPhrase() string {
	words := []string{pick(g.rng, phraseAdjectives), g.fake.Word(), g.fake.Word()}
	return strings.Join(words, " ")
}
