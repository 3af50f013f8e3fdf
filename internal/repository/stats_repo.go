package repository

import (
	"context"
	"fmt"

	"github.com/subalakshmi-817/CMS-pro/internal/database"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
)

// StatsRepository computes aggregate complaint counts for dashboards.
type StatsRepository struct{}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// GetComplaintStats returns per-status counts scoped to what the given
// user is allowed to see: students count their own reports, managers
// their assignments, admins everything. The scoping mirrors the policy
// package's visibility rule; the SQL only narrows the aggregate.
func (r *StatsRepository) GetComplaintStats(ctx context.Context, user *models.User) (*models.ComplaintStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
			COUNT(*) FILTER (WHERE status = 'resolved') AS resolved
		FROM complaints
	`

	var args []interface{}
	switch user.Role {
	case models.RoleStudent:
		query += ` WHERE reporter_id = $1`
		args = append(args, user.ID)
	case models.RoleManager:
		query += ` WHERE assigned_manager_id = $1`
		args = append(args, user.ID)
	}

	var stats models.ComplaintStats
	err := database.DB.QueryRow(ctx, query, args...).Scan(
		&stats.Total, &stats.Pending, &stats.InProgress, &stats.Resolved,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	return &stats, nil
}
