package infrastructure

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"commerce-seeder/internal/generator"
	"commerce-seeder/internal/model"

	"gopkg.in/yaml.v3"
)

// TokenIssuer signs bearer tokens for seeded accounts
type TokenIssuer interface {
	CanIssueTokens() bool
	IssueToken(username string) (string, error)
}

// AccountEntry is one seeded login
type AccountEntry struct {
	Username string     `yaml:"username"`
	Email    string     `yaml:"email"`
	Nickname string     `yaml:"nickname"`
	Role     model.Role `yaml:"role"`
	Password string     `yaml:"password"`
	Token    string     `yaml:"token,omitempty"`
}

// CredentialsManifest lists the accounts created by one run
type CredentialsManifest struct {
	GeneratedAt time.Time      `yaml:"generatedAt"`
	Accounts    []AccountEntry `yaml:"accounts"`
}

// BuildManifest collects the accounts. Tokens are attached only when the
// issuer has a signing key; a token that fails to sign is left out.
func BuildManifest(users []generator.UserSummary, password string, issuer TokenIssuer, now time.Time) CredentialsManifest {
	manifest := CredentialsManifest{
		GeneratedAt: now,
		Accounts:    make([]AccountEntry, 0, len(users)),
	}
	withTokens := issuer != nil && issuer.CanIssueTokens()

	for _, u := range users {
		entry := AccountEntry{
			Username: u.Username,
			Email:    u.Email,
			Nickname: u.Nickname,
			Role:     u.Role,
			Password: password,
		}
		if withTokens {
			token, err := issuer.IssueToken(u.Username)
			if err != nil {
				log.Printf("Warning: failed to issue token for %s: %v", u.Username, err)
			} else {
				entry.Token = token
			}
		}
		manifest.Accounts = append(manifest.Accounts, entry)
	}
	return manifest
}

// WriteManifest stores the manifest as YAML, creating parent directories
func WriteManifest(path string, manifest CredentialsManifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode credentials manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials manifest: %w", err)
	}
	return nil
}
