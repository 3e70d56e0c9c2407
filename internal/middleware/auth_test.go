package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maximohlupin-omd-work/foodgram/internal/pkg/token"
)

type fakeChecker struct {
	alive map[string]bool
}

func (f *fakeChecker) Exists(ctx context.Context, id string) (bool, error) {
	return f.alive[id], nil
}

func protectedRouter(tokens *token.Service, checker TokenChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens, checker), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id")})
	})
	r.GET("/open", OptionalAuth(tokens, checker), func(c *gin.Context) {
		if id := ViewerID(c); id != nil {
			c.JSON(http.StatusOK, gin.H{"viewer": *id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"viewer": nil})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := token.New("test-secret", time.Hour)
	raw, _ := tokens.Generate(42, "row-1")
	router := protectedRouter(tokens, &fakeChecker{alive: map[string]bool{"row-1": true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token "+raw)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireAuth_BearerPrefixAccepted(t *testing.T) {
	tokens := token.New("test-secret", time.Hour)
	raw, _ := tokens.Generate(42, "row-1")
	router := protectedRouter(tokens, &fakeChecker{alive: map[string]bool{"row-1": true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tokens := token.New("test-secret", time.Hour)
	router := protectedRouter(tokens, &fakeChecker{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication credentials were not provided.")
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	tokens := token.New("test-secret", time.Hour)
	raw, _ := tokens.Generate(42, "row-1")
	// valid signature, but the backing row is gone
	router := protectedRouter(tokens, &fakeChecker{alive: map[string]bool{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token "+raw)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	issuer := token.New("other-secret", time.Hour)
	raw, _ := issuer.Generate(42, "row-1")

	tokens := token.New("test-secret", time.Hour)
	router := protectedRouter(tokens, &fakeChecker{alive: map[string]bool{"row-1": true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token "+raw)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	tokens := token.New("test-secret", time.Hour)
	router := protectedRouter(tokens, &fakeChecker{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/open", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestOptionalAuth_ResolvesViewer(t *testing.T) {
	tokens := token.New("test-secret", time.Hour)
	raw, _ := tokens.Generate(42, "row-1")
	router := protectedRouter(tokens, &fakeChecker{alive: map[string]bool{"row-1": true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Token "+raw)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}
