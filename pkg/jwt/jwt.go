package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the verified caller identity. Identity tokens are minted
// by the identity provider; the API only verifies them, then issues its own
// API tokens against a separate secret.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret string
}

// NewManager creates new JWT manager
func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// GenerateToken mints a token for the given email.
func (m *Manager) GenerateToken(email string, ttl time.Duration) (string, error) {
	return m.GenerateTokenWithName(email, "", ttl)
}

// GenerateTokenWithName mints a token carrying a display name alongside the
// email. Used by tests and local tooling to stand in for the provider.
func (m *Manager) GenerateTokenWithName(email, name string, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// VerifyIdentity checks a provider-issued credential and returns the verified
// email and display name. It satisfies the user service's IdentityVerifier.
func (m *Manager) VerifyIdentity(tokenString string) (string, string, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	return claims.Email, claims.Name, nil
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("token has no email claim")
	}

	return claims, nil
}
