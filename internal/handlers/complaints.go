// Package handlers implements the HTTP request handlers for the CMS-pro
// JSON API. This file covers the complaint surface: listing with
// role-based visibility, submission, the classifier suggestion endpoint,
// status changes, assignment, the audit timeline, and dashboard stats.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/subalakshmi-817/CMS-pro/internal/classifier"
	"github.com/subalakshmi-817/CMS-pro/internal/middleware"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
	"github.com/subalakshmi-817/CMS-pro/internal/policy"
	"github.com/subalakshmi-817/CMS-pro/internal/repository"
	"github.com/subalakshmi-817/CMS-pro/internal/security"
	"github.com/subalakshmi-817/CMS-pro/internal/services"
)

// ComplaintHandler handles complaint-related HTTP requests.
type ComplaintHandler struct {
	store            *session.Store
	complaintService *services.ComplaintService
	complaintRepo    *repository.ComplaintRepository
	updateRepo       *repository.UpdateRepository
	statsRepo        *repository.StatsRepository
	userRepo         *repository.UserRepository
	validator        *security.ValidationService
}

// NewComplaintHandler creates a new instance of ComplaintHandler with
// initialized service and repository dependencies.
func NewComplaintHandler(store *session.Store, validator *security.ValidationService) *ComplaintHandler {
	return &ComplaintHandler{
		store:            store,
		complaintService: services.NewComplaintService(),
		complaintRepo:    repository.NewComplaintRepository(),
		updateRepo:       repository.NewUpdateRepository(),
		statsRepo:        repository.NewStatsRepository(),
		userRepo:         repository.NewUserRepository(),
		validator:        validator,
	}
}

// List returns the complaints visible to the requesting user, refined by
// the optional q (free-text) and status query parameters, newest first.
//
// GET /api/complaints?q=...&status=... -> 200 [complaint]
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	complaints, err := h.complaintRepo.ListAll(c.Context())
	if err != nil {
		return renderError(c, err)
	}

	filter := policy.Filter{
		Query:  c.Query("q"),
		Status: models.ComplaintStatus(c.Query("status")),
	}
	visible := policy.VisibleComplaints(user, complaints, filter)

	return c.JSON(visible)
}

// Get returns a single complaint if the requesting user may see it.
// Invisible complaints read as 404, not 403, so students cannot probe
// for the existence of other people's reports.
//
// GET /api/complaints/:id -> 200 {complaint} | 404
func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	complaint, err := h.complaintRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	if !policy.CanView(user, complaint) {
		return renderError(c, models.ErrComplaintNotFound)
	}

	return c.JSON(complaint)
}

// Create submits a new complaint reported by the authenticated user.
//
// POST /api/complaints {title, description, category?, location?, priority?, imageUrl?}
// -> 201 {complaint} | 400
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var form models.CreateComplaintForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.ValidateComplaintTitle(form.Title); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.validator.ValidateDescription(form.Description); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.validator.ValidateLocation(form.Location); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	complaint, err := h.complaintService.Create(c.Context(), form, user)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(complaint)
}

// Suggest runs the pure classifier over draft text so the client can
// pre-fill category and priority. Never fails: empty text just yields
// the fallback category with low confidence.
//
// POST /api/complaints/suggest {title, description} -> 200 {category, priority, confidence}
func (h *ComplaintHandler) Suggest(c *fiber.Ctx) error {
	var form models.SuggestForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	return c.JSON(classifier.Classify(form.Title, form.Description))
}

// ChangeStatus applies a lifecycle transition. The service enforces the
// state machine, the mandatory resolution note, and canManage.
//
// POST /api/complaints/:id/status {status, note?} -> 200 {complaint} | 400 | 403 | 404 | 409
func (h *ComplaintHandler) ChangeStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var form models.ChangeStatusForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.ValidateNote(form.Note); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	complaint, err := h.complaintService.ChangeStatus(c.Context(), c.Params("id"), form.Status, form.Note, user)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(complaint)
}

// Assign assigns a manager to the complaint. Admin only; a pending
// complaint moves to in_progress as part of the same update.
//
// POST /api/complaints/:id/assign {managerId} -> 200 {complaint} | 403 | 404 | 409
func (h *ComplaintHandler) Assign(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var form models.AssignForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	complaint, err := h.complaintService.AssignManager(c.Context(), c.Params("id"), form.ManagerID, user)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(complaint)
}

// Updates returns the audit timeline of a complaint, oldest first.
//
// GET /api/complaints/:id/updates -> 200 [update] | 404
func (h *ComplaintHandler) Updates(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	complaint, err := h.complaintRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	if !policy.CanView(user, complaint) {
		return renderError(c, models.ErrComplaintNotFound)
	}

	updates, err := h.updateRepo.ListByComplaint(c.Context(), complaint.ID)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(updates)
}

// Stats returns the per-status complaint counts scoped to the requesting
// user's visibility, for the dashboard screen.
//
// GET /api/stats -> 200 {total, pending, inProgress, resolved}
func (h *ComplaintHandler) Stats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	stats, err := h.statsRepo.GetComplaintStats(c.Context(), user)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(stats)
}

// Managers returns the assignable-manager roster for the picker shown to
// admins on the complaint detail screen.
//
// GET /api/users/managers -> 200 [user]
func (h *ComplaintHandler) Managers(c *fiber.Ctx) error {
	managers, err := h.userRepo.ListManagers(c.Context())
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(managers)
}

// Meta returns the fixed vocabularies the client renders as pickers.
//
// GET /api/meta -> 200 {categories, locations, priorities, statuses}
func (h *ComplaintHandler) Meta(c *fiber.Ctx) error {
	return c.JSON(models.Meta{
		Categories: models.Categories,
		Locations:  models.Locations,
		Priorities: []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh},
		Statuses:   []models.ComplaintStatus{models.StatusPending, models.StatusInProgress, models.StatusResolved},
	})
}

// parseLimit reads an optional positive integer limit query parameter,
// falling back to def.
func parseLimit(c *fiber.Ctx, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
