// Package middleware provides HTTP middleware for authentication,
// authorization, and request logging. These protect routes and enforce
// role-based access control for the JSON API.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
)

// AuthRequired ensures the request carries a valid authenticated session.
// Unauthenticated requests get 401 rather than a redirect; the mobile
// client handles navigation itself.
//
// Context locals set for downstream handlers:
//   - user_id: the authenticated user's ID (int)
//   - user_role: the user's role (models.Role)
//   - user_name: the user's display name (string)
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		userID := sess.Get("user_id")
		if userID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", sess.Get("user_role"))
		c.Locals("user_name", sess.Get("user_name"))

		return c.Next()
	}
}

// AdminOnly ensures the user has the admin role. Must be chained after
// AuthRequired, which sets user_role in the context.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if models.Role(role) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}

		return c.Next()
	}
}

// CurrentUser reconstructs the acting user from session-backed locals.
// Returns nil when the request is unauthenticated; handlers behind
// AuthRequired can rely on a non-nil result.
func CurrentUser(c *fiber.Ctx) *models.User {
	id, ok := c.Locals("user_id").(int)
	if !ok {
		return nil
	}
	role, _ := c.Locals("user_role").(string)
	name, _ := c.Locals("user_name").(string)

	return &models.User{
		ID:   id,
		Name: name,
		Role: models.Role(role),
	}
}
