package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/cesargomez89/mekkompis/internal/constants"
)

var (
	ErrNotConfigured = errors.New("authentication is not configured")
	ErrWrongPassword = errors.New("wrong password")
	ErrMissingToken  = errors.New("access token required")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// Claims is the payload of an issued session token.
type Claims struct {
	Authenticated bool  `json:"authenticated"`
	Timestamp     int64 `json:"timestamp"`
	jwt.RegisteredClaims
}

// Gate decides whether requests need a bearer token. It is enabled only
// when both a signing secret and a password hash are configured, and it
// never changes after construction.
type Gate struct {
	secret       []byte
	passwordHash []byte
	lifetime     time.Duration
	clock        clockwork.Clock
}

func NewGate(secret, passwordHash string) *Gate {
	return NewGateWithClock(secret, passwordHash, clockwork.NewRealClock())
}

func NewGateWithClock(secret, passwordHash string, clock clockwork.Clock) *Gate {
	return &Gate{
		secret:       []byte(secret),
		passwordHash: []byte(passwordHash),
		lifetime:     constants.TokenLifetime,
		clock:        clock,
	}
}

func (g *Gate) Enabled() bool {
	return len(g.secret) > 0 && len(g.passwordHash) > 0
}

// Login checks password against the configured hash and issues a token.
func (g *Gate) Login(password string) (string, error) {
	if !g.Enabled() {
		return "", ErrNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrWrongPassword
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	return g.issue()
}

func (g *Gate) issue() (string, error) {
	now := g.clock.Now()
	claims := Claims{
		Authenticated: true,
		Timestamp:     now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and checks signature, algorithm and expiry.
func (g *Gate) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return g.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.clock.Now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
