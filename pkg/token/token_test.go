package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifySession(t *testing.T) {
	m := NewManager("test-secret")

	tok, err := m.IssueSession("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := m.VerifySession(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifySessionRejectsWrongSecret(t *testing.T) {
	tok, err := NewManager("secret-a").IssueSession("user-123")
	require.NoError(t, err)

	_, err = NewManager("secret-b").VerifySession(tok)
	assert.Error(t, err)
}

func TestVerifySessionRejectsExpiredToken(t *testing.T) {
	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewManager("test-secret").VerifySession(tok)
	assert.Error(t, err)
}

func TestVerifySessionRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.VerifySession(tok)
		assert.Error(t, err, "token %q should not verify", tok)
	}
}

func TestVerifySessionRejectsEmptyUserID(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewManager("test-secret").VerifySession(tok)
	assert.Error(t, err)
}
