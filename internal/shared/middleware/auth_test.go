package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beetlevault-backend/internal/domains/user"
	"beetlevault-backend/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type singleUserRepo struct {
	user *user.User
}

func (r *singleUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *singleUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *singleUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *singleUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.user != nil && r.user.Email == email, nil
}

func protectedRouter(tm *token.Manager, repo user.Repository) *gin.Engine {
	r := gin.New()
	r.GET("/me", SessionAuth(tm, repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c)})
	})
	return r
}

func TestSessionAuthAcceptsValidCookie(t *testing.T) {
	tm := token.NewManager("test-secret")
	u := &user.User{ID: uuid.New(), Email: "keeper@example.com"}
	r := protectedRouter(tm, &singleUserRepo{user: u})

	sessionToken, err := tm.IssueSession(u.ID.String())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionToken})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuthRejectsMissingCookie(t *testing.T) {
	tm := token.NewManager("test-secret")
	r := protectedRouter(tm, &singleUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthRejectsForgedToken(t *testing.T) {
	tm := token.NewManager("test-secret")
	forger := token.NewManager("other-secret")
	u := &user.User{ID: uuid.New(), Email: "keeper@example.com"}
	r := protectedRouter(tm, &singleUserRepo{user: u})

	forged, err := forger.IssueSession(u.ID.String())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthDeletedUserIsUnauthorized(t *testing.T) {
	tm := token.NewManager("test-secret")
	r := protectedRouter(tm, &singleUserRepo{})

	sessionToken, err := tm.IssueSession(uuid.NewString())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionToken})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
