// Package config assembles the seeder configuration from defaults, an
// optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is passed explicitly into the seeder entry point
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Paths      PathsConfig      `yaml:"paths"`
	Generation GenerationConfig `yaml:"generation"`
	Images     ImagesConfig     `yaml:"images"`
	Auth       AuthConfig       `yaml:"auth"`
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // "postgres" or "mysql"
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	Database    string `yaml:"database"`
	SSLMode     string `yaml:"sslmode"`
	LogLevel    string `yaml:"logLevel"` // silent, error, warn, info
	AutoMigrate bool   `yaml:"autoMigrate"`
}

// PathsConfig holds the filesystem roots
type PathsConfig struct {
	UploadRoot      string `yaml:"uploadRoot"`
	SampleRoot      string `yaml:"sampleRoot"`
	CredentialsFile string `yaml:"credentialsFile"`
}

// Range is an inclusive integer interval
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// GenerationConfig controls cohort sizes and random ranges
type GenerationConfig struct {
	Customers           int   `yaml:"customers"`
	Merchants           int   `yaml:"merchants"`
	Admins              int   `yaml:"admins"`
	ProductsPerMerchant Range `yaml:"productsPerMerchant"`
	VariantsPerProduct  Range `yaml:"variantsPerProduct"`
	OrdersPerCustomer   Range `yaml:"ordersPerCustomer"`
	ItemsPerOrder       Range `yaml:"itemsPerOrder"`
	// Seed fixes the random source when non-zero
	Seed uint64 `yaml:"seed"`
}

// ImagesConfig configures the placeholder image service
type ImagesConfig struct {
	PlaceholderURL string        `yaml:"placeholderURL"`
	Timeout        time.Duration `yaml:"timeout"`
	AvatarCount    int           `yaml:"avatarCount"`
	ProductCount   int           `yaml:"productCount"`
}

// AuthConfig configures credential hashing and the optional token issuer
type AuthConfig struct {
	BcryptCost int           `yaml:"bcryptCost"`
	JWTSecret  string        `yaml:"jwtSecret"`
	TokenTTL   time.Duration `yaml:"tokenTTL"`
}

// Default returns the built-in configuration for a local development database
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Database: "commerce",
			SSLMode:  "disable",
			LogLevel: "silent",
		},
		Paths: PathsConfig{
			UploadRoot:      "uploads",
			SampleRoot:      "sample_data_for_script",
			CredentialsFile: filepath.Join("sample_data_for_script", "seeded_accounts.yaml"),
		},
		Generation: GenerationConfig{
			Customers:           20,
			Merchants:           5,
			Admins:              2,
			ProductsPerMerchant: Range{Min: 3, Max: 8},
			VariantsPerProduct:  Range{Min: 1, Max: 5},
			OrdersPerCustomer:   Range{Min: 0, Max: 4},
			ItemsPerOrder:       Range{Min: 1, Max: 3},
		},
		Images: ImagesConfig{
			PlaceholderURL: "https://unsplash.it",
			Timeout:        20 * time.Second,
			AvatarCount:    5,
			ProductCount:   10,
		},
		Auth: AuthConfig{
			BcryptCost: 10,
			TokenTTL:   24 * time.Hour,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// SEED_CONFIG, then environment variables (a .env file is read first when
// present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("SEED_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays a YAML file onto the current values
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing YAML config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Database = getEnv("DB_NAME", c.Database.Database)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.LogLevel = getEnv("DB_LOG_LEVEL", c.Database.LogLevel)

	c.Paths.UploadRoot = getEnv("SEED_UPLOAD_ROOT", c.Paths.UploadRoot)
	c.Paths.SampleRoot = getEnv("SEED_SAMPLE_ROOT", c.Paths.SampleRoot)
	c.Paths.CredentialsFile = getEnv("SEED_CREDENTIALS_FILE", c.Paths.CredentialsFile)

	c.Images.PlaceholderURL = getEnv("SEED_PLACEHOLDER_URL", c.Images.PlaceholderURL)
	c.Auth.JWTSecret = getEnv("SEED_JWT_SECRET", c.Auth.JWTSecret)

	var err error
	if c.Database.AutoMigrate, err = getEnvBool("DB_AUTO_MIGRATE", c.Database.AutoMigrate); err != nil {
		return err
	}
	if c.Generation.Customers, err = getEnvInt("SEED_CUSTOMERS", c.Generation.Customers); err != nil {
		return err
	}
	if c.Generation.Merchants, err = getEnvInt("SEED_MERCHANTS", c.Generation.Merchants); err != nil {
		return err
	}
	if c.Generation.Admins, err = getEnvInt("SEED_ADMINS", c.Generation.Admins); err != nil {
		return err
	}
	if c.Auth.BcryptCost, err = getEnvInt("SEED_BCRYPT_COST", c.Auth.BcryptCost); err != nil {
		return err
	}
	if v := os.Getenv("SEED_RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SEED_RANDOM_SEED %q: %w", v, err)
		}
		c.Generation.Seed = seed
	}
	if v := os.Getenv("SEED_IMAGE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_IMAGE_TIMEOUT %q: %w", v, err)
		}
		c.Images.Timeout = d
	}
	return nil
}

// Validate rejects configurations the generators cannot honour
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Generation.Customers < 0 || c.Generation.Merchants < 0 || c.Generation.Admins < 0 {
		return fmt.Errorf("cohort sizes must not be negative")
	}
	ranges := map[string]Range{
		"productsPerMerchant": c.Generation.ProductsPerMerchant,
		"variantsPerProduct":  c.Generation.VariantsPerProduct,
		"ordersPerCustomer":   c.Generation.OrdersPerCustomer,
		"itemsPerOrder":       c.Generation.ItemsPerOrder,
	}
	for name, r := range ranges {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("invalid range %s: [%d, %d]", name, r.Min, r.Max)
		}
	}
	if c.Generation.VariantsPerProduct.Min < 1 {
		return fmt.Errorf("variantsPerProduct.min must be at least 1")
	}
	return nil
}

// AvatarSampleDir is the source pool for avatar images
func (p PathsConfig) AvatarSampleDir() string {
	return filepath.Join(p.SampleRoot, "images", "avatars")
}

// ProductSampleDir is the source pool for product images
func (p PathsConfig) ProductSampleDir() string {
	return filepath.Join(p.SampleRoot, "images", "products")
}

// AvatarUploadDir receives copied avatar images
func (p PathsConfig) AvatarUploadDir() string {
	return filepath.Join(p.UploadRoot, "avatars")
}

// ProductUploadDir receives copied product images
func (p PathsConfig) ProductUploadDir() string {
	return filepath.Join(p.UploadRoot, "products")
}

// EnsureDirs creates the upload and sample directories if absent
func (p PathsConfig) EnsureDirs() error {
	for _, dir := range []string{p.AvatarUploadDir(), p.ProductUploadDir(), p.AvatarSampleDir(), p.ProductSampleDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
