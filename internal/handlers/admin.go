// Package handlers implements the HTTP request handlers for the CMS-pro
// JSON API. This file contains the admin-only surface: user management
// and the cross-complaint audit view.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
	"github.com/subalakshmi-817/CMS-pro/internal/middleware"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
	"github.com/subalakshmi-817/CMS-pro/internal/repository"
	"github.com/subalakshmi-817/CMS-pro/internal/security"
	"github.com/subalakshmi-817/CMS-pro/internal/services"
)

// AdminHandler handles administrator-only HTTP requests.
// All routes behind it are gated by middleware.AdminOnly.
type AdminHandler struct {
	store       *session.Store
	authService *services.AuthService
	userRepo    *repository.UserRepository
	updateRepo  *repository.UpdateRepository
	validator   *security.ValidationService
}

// NewAdminHandler creates a new instance of AdminHandler.
func NewAdminHandler(store *session.Store, validator *security.ValidationService) *AdminHandler {
	return &AdminHandler{
		store:       store,
		authService: services.NewAuthService(),
		userRepo:    repository.NewUserRepository(),
		updateRepo:  repository.NewUpdateRepository(),
		validator:   validator,
	}
}

// ListUsers returns every account, newest first.
//
// GET /api/admin/users -> 200 [user]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.ListAll(c.Context())
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(users)
}

// CreateUser provisions an account with any role. This is the only path
// that creates managers and admins; self-service signup is students only.
//
// POST /api/admin/users {name, email, password, role, department?, employeeId?} -> 201 {user}
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var form models.CreateUserForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if !form.Role.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown role"})
	}
	if err := h.validator.ValidateEmail(form.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.validator.ValidatePassword(form.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hash, err := h.authService.HashPassword(form.Password)
	if err != nil {
		return renderError(c, err)
	}

	user := &models.User{
		Email:        form.Email,
		Name:         form.Name,
		Role:         form.Role,
		Department:   form.Department,
		EmployeeID:   form.EmployeeID,
		PasswordHash: hash,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return renderError(c, err)
	}

	actor := middleware.CurrentUser(c)
	log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Int("actor_id", actor.ID).Msg("user created")
	return c.Status(fiber.StatusCreated).JSON(user)
}

// DeleteUser removes an account by id. Complaints keep their
// denormalized names so history stays readable after deletion.
//
// DELETE /api/admin/users/:id -> 204 | 400
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	actor := middleware.CurrentUser(c)
	if actor.ID == id {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot delete your own account"})
	}

	if err := h.userRepo.Delete(c.Context(), id); err != nil {
		return renderError(c, err)
	}

	log.Info().Int("user_id", id).Int("actor_id", actor.ID).Msg("user deleted")
	return c.SendStatus(fiber.StatusNoContent)
}

// Audit returns the most recent complaint updates across all complaints,
// newest first. Optional limit query parameter, default 100.
//
// GET /api/admin/audit?limit=... -> 200 [update]
func (h *AdminHandler) Audit(c *fiber.Ctx) error {
	updates, err := h.updateRepo.ListRecent(c.Context(), parseLimit(c, 100))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(updates)
}
