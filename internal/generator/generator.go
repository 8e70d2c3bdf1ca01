// Package generator produces the seeded users, catalog and orders and writes
// them through the service layer.
package generator

import (
	"context"
	"fmt"
	"log"
	"time"

	"commerce-seeder/internal/config"
	"commerce-seeder/internal/service"

	"github.com/samber/mo"
)

// DefaultPassword is the plaintext of every seeded account
const DefaultPassword = "password123"

// PasswordHasher is a salted one-way hash
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// ImageSource hands out an optional stored image path
type ImageSource interface {
	Provision() mo.Option[string]
}

// Dependencies wires a Generator
type Dependencies struct {
	Users    service.UserService
	Products service.ProductService
	Orders   service.OrderService
	Hasher   PasswordHasher
	Avatars  ImageSource
	Images   ImageSource
	Fake     FakeData
	Rand     Rand
	// Now defaults to time.Now
	Now func() time.Time
	// Statuses defaults to DefaultStatusDistribution
	Statuses StatusDistribution
}

// Generator runs the user, catalog and order stages in sequence
type Generator struct {
	users    service.UserService
	products service.ProductService
	orders   service.OrderService
	hasher   PasswordHasher
	avatars  ImageSource
	images   ImageSource
	fake     FakeData
	rng      Rand
	now      func() time.Time
	statuses StatusDistribution
}

// New creates a generator
func New(deps Dependencies) *Generator {
	g := &Generator{
		users:    deps.Users,
		products: deps.Products,
		orders:   deps.Orders,
		hasher:   deps.Hasher,
		avatars:  deps.Avatars,
		images:   deps.Images,
		fake:     deps.Fake,
		rng:      deps.Rand,
		now:      deps.Now,
		statuses: deps.Statuses,
	}
	if g.fake == nil {
		g.fake = Faker{}
	}
	if g.rng == nil {
		g.rng = NewRand(0)
	}
	if g.now == nil {
		g.now = time.Now
	}
	if len(g.statuses) == 0 {
		g.statuses = DefaultStatusDistribution
	}
	return g
}

// Result is everything one run created
type Result struct {
	Cohorts             Cohorts
	ProductsPerMerchant int
	Products            []ProductSummary
	Variants            []VariantSummary
	Orders              OrderStats
}

// Run executes the pipeline. Row-level failures are logged and skipped; an
// error is returned only when the context ends.
func (g *Generator) Run(ctx context.Context, cfg config.GenerationConfig) (*Result, error) {
	cohorts, err := g.CreateUsers(ctx, cfg.Customers, cfg.Merchants, cfg.Admins)
	if err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}

	perMerchant := intBetween(g.rng, cfg.ProductsPerMerchant)
	products, variants, err := g.CreateCatalog(ctx, cohorts.Merchants, perMerchant, cfg.VariantsPerProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}

	stats, err := g.CreateOrders(ctx, cohorts.Customers, variants, products, cfg.OrdersPerCustomer, cfg.ItemsPerOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to create orders: %w", err)
	}

	log.Printf("Generation finished: %d customers, %d merchants, %d admins, %d products, %d variants, %d orders, %d order items",
		len(cohorts.Customers), len(cohorts.Merchants), len(cohorts.Admins),
		len(products), len(variants), stats.Orders, stats.Items)

	return &Result{
		Cohorts:             cohorts,
		ProductsPerMerchant: perMerchant,
		Products:            products,
		Variants:            variants,
		Orders:              stats,
	}, nil
}
