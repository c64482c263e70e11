package handler // handler contains the operator authentication endpoint

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vegas-air-market/internal/utils"
)

// AuthHandler exchanges the operator password for a short-lived token.
// There are no user accounts in this service; the single operator
// identity exists only to protect the simulation-control endpoints.
type AuthHandler struct {
	JWTSecret        string
	AccessTTLMin     int
	OperatorPassHash string // bcrypt hash from configuration
}

// Token handles POST /v1/auth/token.
func (h *AuthHandler) Token(c echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password is required"})
	}
	if !utils.VerifyPassword(h.OperatorPassHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewOperatorToken(h.JWTSecret, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}
