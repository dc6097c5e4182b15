package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 8 * time.Hour

// ErrInvalid is returned for tokens that fail signature, format or expiry checks.
var ErrInvalid = errors.New("invalid token")

// Claims is the payload carried by every token: the producer id and name.
type Claims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	jwt.StandardClaims
}

// Manager signs and verifies HS256 tokens with a single process-wide secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager. A non-positive ttl selects DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the lifetime of tokens issued by m.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Sign issues a token for the given producer.
func (m *Manager) Sign(id, name string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("token: empty signing secret")
	}
	now := m.now()
	claims := Claims{
		ID:   id,
		Name: name,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString and returns its claims when the signature and
// expiry are valid.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
