// Package policy is the single source of truth for role-based visibility
// and authorization over complaints. Handlers and services consult it;
// nothing else re-implements role checks.
//
// All functions are pure predicates or in-memory filters over already
// loaded data. The package has no storage or network dependencies.
package policy

import (
	"sort"
	"strings"

	"github.com/subalakshmi-817/CMS-pro/internal/models"
)

// CanView reports whether user may see the complaint.
//
// Students see only complaints they reported, managers only complaints
// assigned to them, admins see everything.
func CanView(user *models.User, c *models.Complaint) bool {
	if user == nil || c == nil {
		return false
	}
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		return c.AssignedManagerID != nil && *c.AssignedManagerID == user.ID
	case models.RoleStudent:
		return c.ReporterID == user.ID
	}
	return false
}

// CanManage reports whether user may mutate the complaint's status.
// True for admins, and for managers currently assigned to the complaint.
func CanManage(user *models.User, c *models.Complaint) bool {
	if user == nil || c == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	return user.Role == models.RoleManager &&
		c.AssignedManagerID != nil && *c.AssignedManagerID == user.ID
}

// CanAssign reports whether user may assign a manager to the complaint.
// Only admins assign, and only while the complaint has no assignee;
// re-assignment is rejected rather than left undefined.
func CanAssign(user *models.User, c *models.Complaint) bool {
	if user == nil || c == nil {
		return false
	}
	return user.Role == models.RoleAdmin && c.AssignedManagerID == nil
}

// Filter describes the optional query refinements composed on top of the
// role-based visibility rule.
type Filter struct {
	// Query is matched case-insensitively as a substring against title,
	// description, and location; a complaint matches if any field contains it.
	Query string

	// Status, when non-empty, must equal the complaint status exactly.
	Status models.ComplaintStatus
}

// VisibleComplaints returns the complaints user may see, refined by f,
// sorted by creation time descending (most recent first).
//
// The role filter always applies first; search and status filters compose
// after it. The input slice is not modified.
func VisibleComplaints(user *models.User, complaints []models.Complaint, f Filter) []models.Complaint {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Complaint, 0, len(complaints))
	for i := range complaints {
		c := complaints[i]
		if !CanView(user, &c) {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if query != "" && !matchesQuery(&c, query) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matchesQuery(c *models.Complaint, query string) bool {
	return strings.Contains(strings.ToLower(c.Title), query) ||
		strings.Contains(strings.ToLower(c.Description), query) ||
		strings.Contains(strings.ToLower(c.Location), query)
}
