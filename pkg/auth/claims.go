package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// ScopeAdmin grants access to the back-office surface.
const ScopeAdmin = "admin"

// AdminTokenClaims represents the typed JWT issued after a back-office login.
type AdminTokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func (c *AdminTokenClaims) IsAdmin() bool {
	return c != nil && c.Scope == ScopeAdmin
}
