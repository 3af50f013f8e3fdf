// Package main is the entry point for the CMS-pro campus complaint API.
// It initializes the database, session store, rate limiters, and all
// HTTP routes, then serves the JSON API the mobile client talks to.
package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/subalakshmi-817/CMS-pro/internal/database"
	"github.com/subalakshmi-817/CMS-pro/internal/handlers"
	"github.com/subalakshmi-817/CMS-pro/internal/middleware"
	"github.com/subalakshmi-817/CMS-pro/internal/security"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	database.MustConnect(nil)
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	securityConfig := security.DefaultSecurityConfig()
	validator := security.NewValidationService(securityConfig)

	// Login is limited per IP, submissions and status changes per user.
	loginRateLimiter := security.NewRateLimiter(
		securityConfig.RateLimitLogin, 12*time.Second,
	)
	defer loginRateLimiter.Stop()

	submitRateLimiter := security.NewRateLimiter(
		securityConfig.RateLimitSubmit, 6*time.Second,
	)
	defer submitRateLimiter.Stop()

	statusRateLimiter := security.NewRateLimiter(
		securityConfig.RateLimitStatus, 3*time.Second,
	)
	defer statusRateLimiter.Stop()

	app := fiber.New(fiber.Config{
		AppName: "CMS-pro",
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecureHeaders())

	store := session.New(session.Config{
		Expiration:     securityConfig.SessionTimeout,
		CookieSecure:   securityConfig.SessionSecure,
		CookieHTTPOnly: securityConfig.SessionHTTPOnly,
		CookieSameSite: securityConfig.SessionSameSite,
		CookieName:     securityConfig.SessionCookieName,
		CookiePath:     "/",
	})

	authHandler := handlers.NewAuthHandler(store, validator)
	complaintHandler := handlers.NewComplaintHandler(store, validator)
	adminHandler := handlers.NewAdminHandler(store, validator)

	// Public routes
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if !database.IsConnected() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Post("/login",
		middleware.RateLimit(loginRateLimiter, "login"),
		authHandler.Login,
	)
	app.Post("/signup",
		middleware.RateLimit(loginRateLimiter, "signup"),
		authHandler.Signup,
	)

	// Authenticated routes
	api := app.Group("/api", middleware.AuthRequired(store))

	api.Get("/logout", authHandler.Logout)
	api.Get("/me", authHandler.Me)
	api.Get("/meta", complaintHandler.Meta)
	api.Get("/stats", complaintHandler.Stats)
	api.Get("/users/managers", complaintHandler.Managers)

	api.Get("/complaints", complaintHandler.List)
	api.Post("/complaints",
		middleware.RateLimit(submitRateLimiter, "submit"),
		complaintHandler.Create,
	)
	api.Post("/complaints/suggest", complaintHandler.Suggest)
	api.Get("/complaints/:id", complaintHandler.Get)
	api.Get("/complaints/:id/updates", complaintHandler.Updates)
	api.Post("/complaints/:id/status",
		middleware.RateLimit(statusRateLimiter, "status"),
		complaintHandler.ChangeStatus,
	)
	api.Post("/complaints/:id/assign",
		middleware.AdminOnly(),
		complaintHandler.Assign,
	)

	// Admin routes
	admin := api.Group("/admin", middleware.AdminOnly())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/audit", adminHandler.Audit)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("CMS-pro server starting")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
