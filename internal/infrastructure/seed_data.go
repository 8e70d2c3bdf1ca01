package infrastructure

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"commerce-seeder/internal/config"
	"commerce-seeder/internal/generator"
	"commerce-seeder/internal/model"
	"commerce-seeder/internal/service"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Credentials hashes seeded passwords and optionally signs tokens for them
type Credentials interface {
	generator.PasswordHasher
	TokenIssuer
}

// SeedDataManager handles database population
type SeedDataManager struct {
	db          *gorm.DB
	cfg         *config.Config
	credentials Credentials
	avatars     generator.ImageSource
	images      generator.ImageSource
	rng         generator.Rand
	now         func() time.Time
}

// NewSeedDataManager creates a new seed data manager
func NewSeedDataManager(db *gorm.DB, cfg *config.Config, credentials Credentials, avatars, images generator.ImageSource, rng generator.Rand) *SeedDataManager {
	return &SeedDataManager{
		db:          db,
		cfg:         cfg,
		credentials: credentials,
		avatars:     avatars,
		images:      images,
		rng:         rng,
		now:         time.Now,
	}
}

// SeedAll optionally clears the seeded tables, then populates them inside one
// transaction. Row failures are skipped by the generators; any other error
// rolls the whole population back.
func (s *SeedDataManager) SeedAll(ctx context.Context, truncate bool) error {
	if truncate {
		log.Println("Clearing existing data...")
		if err := ClearTables(ctx, s.db); err != nil {
			log.Printf("Warning: failed to clear existing data, continuing with population: %v", err)
		} else {
			log.Println("Existing data cleared")
		}
	}

	log.Println("Starting database population...")
	var result *generator.Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gen := generator.New(generator.Dependencies{
			Users:    service.NewUserService(tx),
			Products: service.NewProductService(tx),
			Orders:   service.NewOrderService(tx),
			Hasher:   s.credentials,
			Avatars:  s.avatars,
			Images:   s.images,
			Rand:     s.rng,
			Now:      s.now,
		})

		var err error
		result, err = gen.Run(ctx, s.cfg.Generation)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to populate database: %w", err)
	}
	log.Println("Database population committed")

	s.writeManifest(result)
	s.logSummary(ctx, result)
	return nil
}

func (s *SeedDataManager) writeManifest(result *generator.Result) {
	path := s.cfg.Paths.CredentialsFile
	if path == "" {
		return
	}

	manifest := BuildManifest(result.Cohorts.All(), generator.DefaultPassword, s.credentials, s.now())
	if err := WriteManifest(path, manifest); err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	log.Printf("Wrote %d seeded accounts to %s", len(manifest.Accounts), path)
}

func (s *SeedDataManager) logSummary(ctx context.Context, result *generator.Result) {
	for _, line := range summaryLines(result) {
		log.Println(line)
	}

	users := service.NewUserService(s.db)
	for _, role := range []model.Role{model.RoleCustomer, model.RoleMerchant, model.RoleAdmin} {
		n, err := users.CountUsers(ctx, service.UserFilters{Role: role})
		if err != nil {
			log.Printf("Warning: %v", err)
			continue
		}
		log.Printf("  users with role %s: %d", role, n)
	}

	counts, err := CountRows(ctx, s.db)
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	for _, table := range SeededTables {
		if n, ok := counts[table]; ok {
			log.Printf("  %s: %d rows", table, n)
		}
	}
}

// summaryLines renders what one run created
func summaryLines(result *generator.Result) []string {
	lines := []string{
		"Seeding summary:",
		fmt.Sprintf("  customers: %d, merchants: %d, admins: %d",
			len(result.Cohorts.Customers), len(result.Cohorts.Merchants), len(result.Cohorts.Admins)),
		fmt.Sprintf("  products: %d (%d per merchant), variants: %d",
			len(result.Products), result.ProductsPerMerchant, len(result.Variants)),
		fmt.Sprintf("  checkout attempts: %d, orders: %d, order items: %d",
			result.Orders.Attempts, result.Orders.Orders, result.Orders.Items),
	}

	statuses := lo.Keys(result.Orders.ByStatus)
	slices.Sort(statuses)
	for _, status := range statuses {
		lines = append(lines, fmt.Sprintf("  orders %s: %d", status, result.Orders.ByStatus[status]))
	}
	return lines
}
