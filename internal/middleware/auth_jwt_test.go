package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"robostore/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":      int64(7),
		"is_admin": false,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	}
}

func runWithAuth(t *testing.T, mw echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	assert.NoError(t, err)
	return rec, c
}

func TestAuthJWT_ValidToken(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg.JWTSecret, validClaims())

	rec, c := runWithAuth(t, AuthJWT(cfg), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(CtxUserIDKey))
	assert.Equal(t, false, c.Get(CtxIsAdminKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runWithAuth(t, AuthJWT(testConfig()), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", validClaims())
	rec, _ := runWithAuth(t, AuthJWT(testConfig()), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	cfg := testConfig()
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, cfg.JWTSecret, claims)

	rec, _ := runWithAuth(t, AuthJWT(cfg), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec, _ := runWithAuth(t, AuthJWT(testConfig()), "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthOptional_NoHeaderPassesThrough(t *testing.T) {
	rec, c := runWithAuth(t, AuthOptional(testConfig()), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get(CtxUserIDKey))
}

func TestAuthOptional_ValidTokenSetsContext(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg.JWTSecret, validClaims())

	rec, c := runWithAuth(t, AuthOptional(cfg), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(CtxUserIDKey))
}

func TestAuthOptional_BadTokenRejected(t *testing.T) {
	rec, _ := runWithAuth(t, AuthOptional(testConfig()), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
