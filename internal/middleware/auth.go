// Package middleware provides HTTP middleware for the fiber app: JWT
// validation and role gating. A validated token becomes an explicit
// models.Principal stored in the request locals; nothing below the handlers
// reads authentication state from anywhere else.
package middleware

import (
	"strings"

	"cardbank/internal/models"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Auth validates the Bearer token and stores the caller's principal in the
// request locals.
func Auth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals(principalKey, claims.Principal())
	return c.Next()
}

// AdminOnly rejects callers without the admin role. Must run after Auth.
func AdminOnly(c *fiber.Ctx) error {
	p, ok := c.Locals(principalKey).(models.Principal)
	if !ok || !p.IsAdmin() {
		return utils.Forbidden(c, "admin access required")
	}
	return c.Next()
}

// PrincipalFrom extracts the authenticated principal set by Auth.
func PrincipalFrom(c *fiber.Ctx) (models.Principal, bool) {
	p, ok := c.Locals(principalKey).(models.Principal)
	return p, ok
}
