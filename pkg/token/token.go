package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the lifetime of a session token. The cookie max-age must
// match so the browser and the token expire together.
const SessionTTL = 7 * 24 * time.Hour

// Claims carries the authenticated user identity inside the session cookie.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens
type Manager struct {
	secret string
}

// NewManager creates new token manager
func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// IssueSession generates a signed session token for the given user
func (m *Manager) IssueSession(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.secret))
}

// VerifySession validates a session token and returns the user id it carries.
// Expired, tampered or foreign tokens all fail verification.
func (m *Manager) VerifySession(tokenString string) (string, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return "", err
	}

	if !t.Valid {
		return "", fmt.Errorf("invalid token")
	}

	if claims.UserID == "" {
		return "", fmt.Errorf("token carries no user id")
	}

	return claims.UserID, nil
}
