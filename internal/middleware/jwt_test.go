package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "operator",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func callProtected(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/flights/1/start", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := OperatorAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestOperatorAuthAcceptsOperatorToken(t *testing.T) {
	rec := callProtected(t, "Bearer "+signToken(t, testSecret, "operator"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOperatorAuthMissingHeader(t *testing.T) {
	rec := callProtected(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOperatorAuthRejectsBadSignature(t *testing.T) {
	rec := callProtected(t, "Bearer "+signToken(t, "another-secret", "operator"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOperatorAuthRejectsWrongRole(t *testing.T) {
	rec := callProtected(t, "Bearer "+signToken(t, testSecret, "viewer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOperatorAuthRejectsExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "operator",
		"role": "operator",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec := callProtected(t, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
