package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"commerce-seeder/internal/auth"
	"commerce-seeder/internal/config"
	"commerce-seeder/internal/generator"
	"commerce-seeder/internal/infrastructure"
	"commerce-seeder/internal/media"
)

func main() {
	clearData := flag.Bool("clear", false, "clear existing data before populating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *clearData); err != nil {
		stop()
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding finished")
}

func run(ctx context.Context, cfg *config.Config, clearData bool) error {
	if err := cfg.Paths.EnsureDirs(); err != nil {
		return err
	}

	rng := generator.NewRand(cfg.Generation.Seed)
	if cfg.Generation.Seed != 0 {
		log.Printf("Using random seed %d", cfg.Generation.Seed)
	}

	// Populate empty sample pools before anything touches the database
	downloader := media.NewDownloader(cfg.Images.PlaceholderURL, cfg.Images.Timeout, rng)
	downloader.EnsureImages(ctx, media.Placeholder{
		Dir:        cfg.Paths.AvatarSampleDir(),
		Prefix:     "avatar",
		Count:      cfg.Images.AvatarCount,
		Width:      150,
		Height:     150,
		VariationW: 20,
		VariationH: 20,
		Hint:       "gravity=face",
	})
	downloader.EnsureImages(ctx, media.Placeholder{
		Dir:        cfg.Paths.ProductSampleDir(),
		Prefix:     "product",
		Count:      cfg.Images.ProductCount,
		Width:      400,
		Height:     300,
		VariationW: 100,
		VariationH: 50,
	})

	db, err := infrastructure.ConnectDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := infrastructure.CloseDatabase(db); err != nil {
			log.Printf("Warning: %v", err)
		}
		log.Println("Database session closed")
	}()

	if cfg.Database.AutoMigrate {
		if err := infrastructure.MigrateAllSchemas(db); err != nil {
			return fmt.Errorf("failed to migrate database schemas: %w", err)
		}
	}

	credentials := auth.NewService(cfg.Auth.BcryptCost, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	avatars := media.NewProvisioner(media.KindAvatar, cfg.Paths.AvatarSampleDir(), cfg.Paths.AvatarUploadDir(), rng)
	images := media.NewProvisioner(media.KindProduct, cfg.Paths.ProductSampleDir(), cfg.Paths.ProductUploadDir(), rng)

	seedManager := infrastructure.NewSeedDataManager(db, cfg, credentials, avatars, images, rng)
	return seedManager.SeedAll(ctx, clearData)
}
