// Package handlers implements the HTTP request handlers for the CMS-pro
// JSON API. This file holds the shared error-to-response mapping.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
)

// renderError translates the domain error taxonomy into a distinct HTTP
// status and an actionable message. Unknown errors become opaque 500s so
// internals never leak to the client.
func renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrPersistence):
		log.Error().Err(err).Str("path", c.Path()).Msg("storage failure")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage failure, please retry"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
