// Package handlers implements the HTTP request handlers for the CMS-pro
// JSON API. This file handles authentication: login, signup, logout, and
// the current-user endpoint.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
	"github.com/subalakshmi-817/CMS-pro/internal/middleware"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
	"github.com/subalakshmi-817/CMS-pro/internal/security"
	"github.com/subalakshmi-817/CMS-pro/internal/services"
)

// AuthHandler handles authentication-related HTTP requests and manages
// the session lifecycle.
type AuthHandler struct {
	store       *session.Store
	authService *services.AuthService
	validator   *security.ValidationService
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(store *session.Store, validator *security.ValidationService) *AuthHandler {
	return &AuthHandler{
		store:       store,
		authService: services.NewAuthService(),
		validator:   validator,
	}
}

// Login authenticates credentials and creates a session.
//
// POST /login {email, password} -> 200 {user} | 401
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form models.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.authService.Authenticate(c.Context(), form.Email, form.Password)
	if err != nil {
		log.Warn().Str("email", form.Email).Str("ip", c.IP()).Msg("login failed")
		return renderError(c, err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return renderError(c, err)
	}

	sess.Set("user_id", user.ID)
	sess.Set("user_role", string(user.Role))
	sess.Set("user_name", user.Name)
	if err := sess.Save(); err != nil {
		return renderError(c, err)
	}

	log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return c.JSON(user)
}

// Signup registers a new student account and logs it in.
//
// POST /signup {name, email, password, department?, employeeId?} -> 201 {user}
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var form models.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.ValidateEmail(form.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.validator.ValidatePassword(form.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.authService.Signup(c.Context(), form)
	if err != nil {
		return renderError(c, err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return renderError(c, err)
	}
	sess.Set("user_id", user.ID)
	sess.Set("user_role", string(user.Role))
	sess.Set("user_name", user.Name)
	if err := sess.Save(); err != nil {
		return renderError(c, err)
	}

	log.Info().Int("user_id", user.ID).Msg("signup")
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Logout destroys the session.
//
// GET /api/logout -> 204
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			return renderError(c, err)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the authenticated user derived from the session.
//
// GET /api/me -> 200 {id, name, role}
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	return c.JSON(user)
}
