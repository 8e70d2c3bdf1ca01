package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNoSigningKey is returned when tokens are requested without a secret
	ErrNoSigningKey = errors.New("no token signing key configured")

	// ErrInvalidToken is returned for malformed, expired or foreign tokens
	ErrInvalidToken = errors.New("invalid token")
)

// Claims mirrors the claim layout the commerce backend issues: the subject is
// the username and "created" is the issue instant in epoch milliseconds.
type Claims struct {
	Created int64 `json:"created"`
	jwt.RegisteredClaims
}

// Service hashes seeded passwords and issues bearer tokens for seeded accounts
type Service struct {
	cost   int
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates an auth service. An empty secret disables token issuing.
func NewService(cost int, secret string, ttl time.Duration) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		cost:   cost,
		secret: decodeSecret(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// HashPassword hashes with a fresh salt on every call
func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CanIssueTokens reports whether a signing key is configured
func (s *Service) CanIssueTokens() bool {
	return len(s.secret) > 0
}

// IssueToken signs an HS256 token for username
func (s *Service) IssueToken(username string) (string, error) {
	if !s.CanIssueTokens() {
		return "", ErrNoSigningKey
	}
	now := s.now()
	claims := &Claims{
		Created: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token for %s: %w", username, err)
	}
	return signed, nil
}

// ValidateToken checks a token issued by IssueToken and returns its
// subject. The seeder itself never calls it; it exists to verify the tokens
// written to the credentials manifest.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	if !s.CanIssueTokens() {
		return "", ErrNoSigningKey
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// decodeSecret accepts the backend's base64 key format and falls back to the
// raw bytes for plain passphrases.
func decodeSecret(secret string) []byte {
	if secret == "" {
		return nil
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding} {
		if key, err := enc.DecodeString(secret); err == nil && len(key) > 0 {
			return key
		}
	}
	return []byte(secret)
}
