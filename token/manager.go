package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minKeyBytes = 32

var (
	// ErrInvalid is returned when a receipt fails signature or structural
	// validation.
	ErrInvalid = errors.New("invalid session receipt")
	// ErrExpired is returned when a receipt's TTL has elapsed.
	ErrExpired = errors.New("session receipt expired")
)

// Config tunes a [Manager]. TTL must be positive and SigningKey at least
// 32 bytes.
type Config struct {
	TTL        time.Duration
	SigningKey []byte
	Issuer     string
}

// Manager mints and validates HS256-signed session receipts. Receipts bound
// the lifetime of an interactive session; they do not replace per-operation
// authentication.
type Manager struct {
	config Config
}

// Claims carried by a session receipt.
type Claims struct {
	Username string `json:"unm"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a [Manager].
func NewManager(cfg Config) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if len(cfg.SigningKey) < minKeyBytes {
		return nil, errors.New("signing key must be at least 32 bytes")
	}
	return &Manager{config: cfg}, nil
}

// Issue mints a receipt for the given username with a fresh JTI.
func (m *Manager) Issue(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.config.SigningKey)
}

// Parse validates a receipt and returns its claims. Expired receipts are
// reported as [ErrExpired]; every other defect as [ErrInvalid].
func (m *Manager) Parse(receipt string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		receipt,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return m.config.SigningKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.config.Issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if claims.Username == "" {
		return nil, ErrInvalid
	}

	return claims, nil
}
