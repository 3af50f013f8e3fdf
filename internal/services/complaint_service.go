// Package services provides the business logic layer for the CMS-pro
// application. This file implements the complaint lifecycle manager:
// creation, status transitions, and manager assignment, with an
// append-only audit entry per material change.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/subalakshmi-817/CMS-pro/internal/classifier"
	"github.com/subalakshmi-817/CMS-pro/internal/database"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
	"github.com/subalakshmi-817/CMS-pro/internal/policy"
	"github.com/subalakshmi-817/CMS-pro/internal/repository"
)

// transitions is the complaint state machine. Absence means the move is
// illegal; resolved has no outgoing edges and repeating the current
// status is not an edge either, so duplicate calls are rejected instead
// of silently appending redundant audit rows.
var transitions = map[models.ComplaintStatus][]models.ComplaintStatus{
	models.StatusPending:    {models.StatusInProgress, models.StatusResolved},
	models.StatusInProgress: {models.StatusResolved},
	models.StatusResolved:   {},
}

func canTransition(from, to models.ComplaintStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ComplaintService validates and applies complaint mutations.
//
// Every mutating operation persists exactly one complaint upsert and,
// for status changes and assignments, exactly one appended audit record.
// The two writes share a transaction: either both commit or neither does,
// so the audit timeline can never drift from the complaint record.
type ComplaintService struct {
	complaintRepo *repository.ComplaintRepository
	updateRepo    *repository.UpdateRepository
	userRepo      *repository.UserRepository
}

// NewComplaintService creates and returns a new ComplaintService instance.
func NewComplaintService() *ComplaintService {
	return &ComplaintService{
		complaintRepo: repository.NewComplaintRepository(),
		updateRepo:    repository.NewUpdateRepository(),
		userRepo:      repository.NewUserRepository(),
	}
}

// Create validates and persists a new complaint reported by reporter.
//
// Title and description must be non-empty after trimming. Category and
// priority may be supplied by the client (pre-filled from a suggestion);
// missing or invalid values are filled from the classifier, so a
// submission can never carry a value outside the closed sets.
//
// The new complaint starts pending with no assignee and no resolvedAt.
func (s *ComplaintService) Create(ctx context.Context, form models.CreateComplaintForm, reporter *models.User) (*models.Complaint, error) {
	title := strings.TrimSpace(form.Title)
	description := strings.TrimSpace(form.Description)
	if title == "" {
		return nil, models.ErrEmptyTitle
	}
	if description == "" {
		return nil, models.ErrEmptyDescription
	}

	category := form.Category
	priority := form.Priority
	if !category.Valid() || !priority.Valid() {
		suggestion := classifier.Classify(title, description)
		if !category.Valid() {
			category = suggestion.Category
		}
		if !priority.Valid() {
			priority = suggestion.Priority
		}
	}

	now := time.Now().UTC()
	c := &models.Complaint{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		Category:     category,
		Location:     strings.TrimSpace(form.Location),
		Priority:     priority,
		Status:       models.StatusPending,
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if img := strings.TrimSpace(form.ImageURL); img != "" {
		c.ImageURL = &img
	}

	if err := s.complaintRepo.Save(ctx, database.DB, c); err != nil {
		return nil, err
	}

	log.Info().
		Str("complaint_id", c.ID).
		Str("category", string(c.Category)).
		Str("priority", string(c.Priority)).
		Int("reporter_id", reporter.ID).
		Msg("complaint created")
	return c, nil
}

// ChangeStatus applies a lifecycle transition on behalf of actor.
//
// Rules, in check order:
//   - newStatus must be one of the known statuses (validation error)
//   - a resolution note is mandatory to close a complaint (validation error)
//   - the complaint must exist (not-found error)
//   - actor must pass policy.CanManage (authorization error)
//   - the transition must be legal per the state machine (state error);
//     leaving resolved and repeating the current status are both illegal
//
// On success the complaint is upserted with updatedAt refreshed and
// resolvedAt set exactly when the status becomes resolved, and one audit
// entry is appended, all in a single transaction. An empty note falls
// back to "Status changed to <status>".
func (s *ComplaintService) ChangeStatus(ctx context.Context, complaintID string, newStatus models.ComplaintStatus, note string, actor *models.User) (*models.Complaint, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, newStatus)
	}

	note = strings.TrimSpace(note)
	if newStatus == models.StatusResolved && note == "" {
		return nil, models.ErrResolutionNote
	}

	c, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if !policy.CanManage(actor, c) {
		return nil, fmt.Errorf("%w: cannot manage this complaint", models.ErrNotAuthorized)
	}

	if !canTransition(c.Status, newStatus) {
		if c.Status == models.StatusResolved {
			return nil, models.ErrComplaintResolved
		}
		return nil, fmt.Errorf("%w: %s to %s", models.ErrState, c.Status, newStatus)
	}

	now := time.Now().UTC()
	c.Status = newStatus
	c.UpdatedAt = now
	if newStatus == models.StatusResolved {
		c.ResolvedAt = &now
	}

	if note == "" {
		note = fmt.Sprintf("Status changed to %s", newStatus)
	}

	update := &models.ComplaintUpdate{
		ID:            uuid.NewString(),
		ComplaintID:   c.ID,
		Status:        newStatus,
		Note:          note,
		UpdatedBy:     actor.ID,
		UpdatedByName: actor.Name,
		CreatedAt:     now,
	}

	if err := s.saveWithUpdate(ctx, c, update); err != nil {
		return nil, err
	}

	log.Info().
		Str("complaint_id", c.ID).
		Str("status", string(newStatus)).
		Int("actor_id", actor.ID).
		Msg("complaint status changed")
	return c, nil
}

// AssignManager assigns a manager to the complaint on behalf of actor.
//
// Only admins assign, and only while the complaint is unassigned;
// re-assignment is rejected. Assigning a pending complaint also moves it
// to in_progress as part of the same atomic update, producing a single
// audit entry noting the assignment.
func (s *ComplaintService) AssignManager(ctx context.Context, complaintID string, managerID int, actor *models.User) (*models.Complaint, error) {
	c, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins assign complaints", models.ErrNotAuthorized)
	}
	if c.Status == models.StatusResolved {
		return nil, models.ErrComplaintResolved
	}
	if !policy.CanAssign(actor, c) {
		return nil, models.ErrAlreadyAssigned
	}

	manager, err := s.userRepo.FindByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager.Role != models.RoleManager {
		return nil, fmt.Errorf("%w: user %d is not a manager", models.ErrValidation, managerID)
	}

	now := time.Now().UTC()
	c.AssignedManagerID = &manager.ID
	c.AssignedManagerName = &manager.Name
	c.UpdatedAt = now
	if c.Status == models.StatusPending {
		c.Status = models.StatusInProgress
	}

	update := &models.ComplaintUpdate{
		ID:            uuid.NewString(),
		ComplaintID:   c.ID,
		Status:        c.Status,
		Note:          fmt.Sprintf("Complaint assigned to manager %s", manager.Name),
		UpdatedBy:     actor.ID,
		UpdatedByName: actor.Name,
		CreatedAt:     now,
	}

	if err := s.saveWithUpdate(ctx, c, update); err != nil {
		return nil, err
	}

	log.Info().
		Str("complaint_id", c.ID).
		Int("manager_id", manager.ID).
		Int("actor_id", actor.ID).
		Msg("complaint assigned")
	return c, nil
}

// saveWithUpdate persists the complaint upsert and the audit append in one
// transaction. Rolls back both on any failure so a complaint record can
// never advance without its audit entry (or vice versa).
func (s *ComplaintService) saveWithUpdate(ctx context.Context, c *models.Complaint, u *models.ComplaintUpdate) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	defer tx.Rollback(ctx) // no-op after a successful commit

	if err := s.complaintRepo.Save(ctx, tx, c); err != nil {
		return err
	}
	if err := s.updateRepo.Append(ctx, tx, u); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}
