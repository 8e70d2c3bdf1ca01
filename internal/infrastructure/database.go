package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"commerce-seeder/internal/config"
	"commerce-seeder/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SeededTables lists every table the seeder owns, children first. Truncation
// follows this order.
var SeededTables = []string{
	"order_items",
	"orders",
	"wishlist_items",
	"cart_items",
	"product_variants",
	"products",
	"users",
}

// ConnectDatabase establishes a connection to the configured database using GORM
func ConnectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  parseLogLevel(cfg.LogLevel),
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// sequential workload
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Connected to %s database %s at %s:%s", cfg.Driver, cfg.Database, cfg.Host, cfg.Port)
	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Database,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Database,
		)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return logger.Error
	case "warn", "warning":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}

// MigrateAllSchemas creates or updates every seeded table, parents first
func MigrateAllSchemas(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"User", &model.User{}},
		{"Product", &model.Product{}},
		{"ProductVariant", &model.ProductVariant{}},
		{"Order", &model.Order{}},
		{"OrderItem", &model.OrderItem{}},
		{"CartItem", &model.CartItem{}},
		{"WishlistItem", &model.WishlistItem{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("failed to migrate %s table: %w", m.name, err)
		}
	}
	return nil
}

// clearPlan is the statement sequence that empties the seeded tables
type clearPlan struct {
	Disable  string
	Enable   string
	Truncate []string
}

func clearPlanFor(dialect string) (clearPlan, error) {
	plan := clearPlan{Truncate: make([]string, 0, len(SeededTables))}
	switch dialect {
	case "postgres":
		plan.Disable = "SET session_replication_role = replica"
		plan.Enable = "SET session_replication_role = origin"
		for _, table := range SeededTables {
			plan.Truncate = append(plan.Truncate, fmt.Sprintf(`TRUNCATE TABLE "%s" RESTART IDENTITY CASCADE`, table))
		}
	case "mysql":
		plan.Disable = "SET FOREIGN_KEY_CHECKS = 0"
		plan.Enable = "SET FOREIGN_KEY_CHECKS = 1"
		for _, table := range SeededTables {
			plan.Truncate = append(plan.Truncate, fmt.Sprintf("TRUNCATE TABLE `%s`", table))
		}
	default:
		return clearPlan{}, fmt.Errorf("clearing tables is not supported for dialect %q", dialect)
	}
	return plan, nil
}

// ClearTables truncates every seeded table on one pinned connection with
// referential checks disabled. Checks are re-enabled even when a truncate
// fails. If the checks cannot be disabled (Postgres needs superuser for
// session_replication_role) the truncates still run.
func ClearTables(ctx context.Context, db *gorm.DB) error {
	plan, err := clearPlanFor(db.Dialector.Name())
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Connection(func(conn *gorm.DB) (err error) {
		if err := conn.Exec(plan.Disable).Error; err != nil {
			log.Printf("Warning: failed to disable referential checks, truncating anyway: %v", err)
		} else {
			defer func() {
				restore := conn.WithContext(context.WithoutCancel(ctx))
				if enableErr := restore.Exec(plan.Enable).Error; enableErr != nil {
					err = errors.Join(err, fmt.Errorf("failed to re-enable referential checks: %w", enableErr))
				}
			}()
		}

		for i, stmt := range plan.Truncate {
			log.Printf("Truncating table: %s", SeededTables[i])
			if err := conn.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to truncate %s: %w", SeededTables[i], err)
			}
		}
		return nil
	})
}

// CountRows reads back the number of rows in every seeded table
func CountRows(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	counts := make(map[string]int64, len(SeededTables))
	for _, table := range SeededTables {
		var n int64
		if err := db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
			return counts, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// CloseDatabase releases the underlying connection pool
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
