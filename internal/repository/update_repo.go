// Package repository provides the data access layer for the CMS-pro
// application. This file implements the append-only audit trail of
// complaint updates.
package repository

import (
	"context"
	"fmt"

	"github.com/subalakshmi-817/CMS-pro/internal/database"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
)

// UpdateRepository handles all database operations on complaint updates.
//
// Immutability note: updates are never modified or deleted once created.
// They are the permanent record of every status change and assignment.
type UpdateRepository struct{}

// NewUpdateRepository creates and returns a new UpdateRepository instance.
func NewUpdateRepository() *UpdateRepository {
	return &UpdateRepository{}
}

// Append inserts one audit-trail entry.
//
// Append takes a Querier so the service layer can run it in the same
// transaction as the complaint upsert it records; the two succeed or
// fail together, which is what keeps the update timeline consistent
// with the complaint's current status.
func (r *UpdateRepository) Append(ctx context.Context, q database.Querier, u *models.ComplaintUpdate) error {
	query := `
		INSERT INTO complaint_updates (id, complaint_id, status, note, updated_by, updated_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		u.ID, u.ComplaintID, u.Status, u.Note, u.UpdatedBy, u.UpdatedByName, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

// ListByComplaint retrieves the audit trail for one complaint in
// chronological ascending order, oldest first.
func (r *UpdateRepository) ListByComplaint(ctx context.Context, complaintID string) ([]models.ComplaintUpdate, error) {
	query := `
		SELECT id, complaint_id, status, note, updated_by, updated_by_name, created_at
		FROM complaint_updates
		WHERE complaint_id = $1
		ORDER BY created_at ASC
	`

	rows, err := database.DB.Query(ctx, query, complaintID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	defer rows.Close()

	var updates []models.ComplaintUpdate
	for rows.Next() {
		var u models.ComplaintUpdate
		if err := rows.Scan(
			&u.ID, &u.ComplaintID, &u.Status, &u.Note, &u.UpdatedBy, &u.UpdatedByName, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
		}
		updates = append(updates, u)
	}

	return updates, nil
}

// ListRecent retrieves the most recent updates across all complaints,
// newest first. Used by the admin audit view.
func (r *UpdateRepository) ListRecent(ctx context.Context, limit int) ([]models.ComplaintUpdate, error) {
	query := `
		SELECT id, complaint_id, status, note, updated_by, updated_by_name, created_at
		FROM complaint_updates
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := database.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	defer rows.Close()

	var updates []models.ComplaintUpdate
	for rows.Next() {
		var u models.ComplaintUpdate
		if err := rows.Scan(
			&u.ID, &u.ComplaintID, &u.Status, &u.Note, &u.UpdatedBy, &u.UpdatedByName, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
		}
		updates = append(updates, u)
	}

	return updates, nil
}
