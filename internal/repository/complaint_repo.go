// Package repository provides the data access layer for the CMS-pro
// application. This file implements the complaint repository: listing,
// lookup, and whole-record upsert of complaints.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/subalakshmi-817/CMS-pro/internal/database"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
)

// complaintColumns is the canonical column list shared by every SELECT so
// scan order stays in one place.
const complaintColumns = `id, title, description, category, location, priority, status,
		reporter_id, reporter_name, assigned_manager_id, assigned_manager_name,
		image_url, created_at, updated_at, resolved_at`

// ComplaintRepository handles all database operations on complaints.
type ComplaintRepository struct{}

// NewComplaintRepository creates and returns a new ComplaintRepository instance.
func NewComplaintRepository() *ComplaintRepository {
	return &ComplaintRepository{}
}

// GetByID retrieves a single complaint by its ID.
//
// Returns models.ErrComplaintNotFound when the id is unknown; any other
// failure is wrapped as a persistence error.
func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id = $1`

	var c models.Complaint
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Location, &c.Priority, &c.Status,
		&c.ReporterID, &c.ReporterName, &c.AssignedManagerID, &c.AssignedManagerName,
		&c.ImageURL, &c.CreatedAt, &c.UpdatedAt, &c.ResolvedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, models.ErrComplaintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	return &c, nil
}

// ListAll retrieves every complaint ordered by creation time descending.
// Role-based visibility is applied by the policy package on top of this
// result, never in SQL, so there is exactly one place the rule lives.
func (r *ComplaintRepository) ListAll(ctx context.Context) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Category, &c.Location, &c.Priority, &c.Status,
			&c.ReporterID, &c.ReporterName, &c.AssignedManagerID, &c.AssignedManagerName,
			&c.ImageURL, &c.CreatedAt, &c.UpdatedAt, &c.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
		}
		complaints = append(complaints, c)
	}

	return complaints, nil
}

// Save upserts the complaint as a whole record, keyed by id. Last writer
// wins; there is no optimistic concurrency token.
//
// Save takes a Querier so the service layer can run it inside the same
// transaction as the audit append. Pass database.DB for a standalone write.
func (r *ComplaintRepository) Save(ctx context.Context, q database.Querier, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (` + complaintColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			location = EXCLUDED.location,
			priority = EXCLUDED.priority,
			status = EXCLUDED.status,
			assigned_manager_id = EXCLUDED.assigned_manager_id,
			assigned_manager_name = EXCLUDED.assigned_manager_name,
			image_url = EXCLUDED.image_url,
			updated_at = EXCLUDED.updated_at,
			resolved_at = EXCLUDED.resolved_at
	`

	_, err := q.Exec(ctx, query,
		c.ID, c.Title, c.Description, c.Category, c.Location, c.Priority, c.Status,
		c.ReporterID, c.ReporterName, c.AssignedManagerID, c.AssignedManagerName,
		c.ImageURL, c.CreatedAt, c.UpdatedAt, c.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}
