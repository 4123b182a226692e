package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret, subject, issuer string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func authedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("user_id")})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authedRouter(t)

	w := get(r, signToken(t, testSecret, "user-1", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if want := `"userId":"user-1"`; !strings.Contains(w.Body.String(), want) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestJWTAuth_MissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authedRouter(t)

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authedRouter(t)

	if w := get(r, signToken(t, "other-secret", "user-1", "")); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuth_IssuerMismatch(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_ISSUER", "gigfeed")
	r := authedRouter(t)

	if w := get(r, signToken(t, testSecret, "user-1", "someone-else")); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	if w := get(r, signToken(t, testSecret, "user-1", "gigfeed")); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestJWTAuth_MissingSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := authedRouter(t)

	if w := get(r, signToken(t, testSecret, "", "")); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
