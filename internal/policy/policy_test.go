// Package policy_test provides unit tests for role-based visibility and
// authorization rules. The policy is pure, so tests build complaints
// in memory and assert on the filtered output.
package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
	"github.com/subalakshmi-817/CMS-pro/internal/policy"
)

var (
	student = &models.User{ID: 1, Name: "Rahul Kumar", Role: models.RoleStudent}
	manager = &models.User{ID: 2, Name: "Ramesh Patel", Role: models.RoleManager}
	admin   = &models.User{ID: 3, Name: "Dr. Sharma", Role: models.RoleAdmin}
)

// fixture returns a small complaint set covering every role relationship:
// one reported by the student, one assigned to the manager, one unrelated.
func fixture() []models.Complaint {
	base := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	managerID := manager.ID
	otherID := 99

	return []models.Complaint{
		{
			ID: "c-1", Title: "Wifi down", Description: "no internet in Block A",
			Location: "Block A", Status: models.StatusPending,
			ReporterID: student.ID, ReporterName: student.Name,
			CreatedAt: base,
		},
		{
			ID: "c-2", Title: "Projector flickers", Description: "lab projector",
			Location: "Lab - Computer Science", Status: models.StatusInProgress,
			ReporterID: 50, AssignedManagerID: &managerID,
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID: "c-3", Title: "Leaking tap", Description: "hostel washroom",
			Location: "Hostel - Boys", Status: models.StatusResolved,
			ReporterID: 51, AssignedManagerID: &otherID,
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

// TestVisibleComplaints_Roles verifies the role filter: students see only
// their own reports, managers only their assignments, admins the full set.
func TestVisibleComplaints_Roles(t *testing.T) {
	complaints := fixture()

	tests := []struct {
		name string
		user *models.User
		ids  []string
	}{
		{"student sees only own reports", student, []string{"c-1"}},
		{"manager sees only assigned", manager, []string{"c-2"}},
		{"admin sees everything newest first", admin, []string{"c-3", "c-2", "c-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.VisibleComplaints(tt.user, complaints, policy.Filter{})

			var ids []string
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

// TestVisibleComplaints_StudentNeverSeesOthers is the negative form of the
// visibility rule: no complaint with a foreign reporter id may appear.
func TestVisibleComplaints_StudentNeverSeesOthers(t *testing.T) {
	got := policy.VisibleComplaints(student, fixture(), policy.Filter{})

	require.NotEmpty(t, got)
	for _, c := range got {
		assert.Equal(t, student.ID, c.ReporterID)
	}
}

// TestVisibleComplaints_SearchAndStatus verifies that the free-text search
// and the exact status filter compose after the role filter.
func TestVisibleComplaints_SearchAndStatus(t *testing.T) {
	complaints := fixture()

	tests := []struct {
		name   string
		filter policy.Filter
		ids    []string
	}{
		{"query matches title case-insensitively", policy.Filter{Query: "WIFI"}, []string{"c-1"}},
		{"query matches description", policy.Filter{Query: "washroom"}, []string{"c-3"}},
		{"query matches location", policy.Filter{Query: "block a"}, []string{"c-1"}},
		{"query with no hits", policy.Filter{Query: "cafeteria"}, nil},
		{"status filter is exact", policy.Filter{Status: models.StatusResolved}, []string{"c-3"}},
		{"status and query compose", policy.Filter{Query: "lab", Status: models.StatusInProgress}, []string{"c-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.VisibleComplaints(admin, complaints, tt.filter)

			var ids []string
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

// TestCanManage verifies the mutation gate: admins always, managers only
// on complaints assigned to them, students never.
func TestCanManage(t *testing.T) {
	managerID := manager.ID
	assigned := &models.Complaint{ID: "c-2", AssignedManagerID: &managerID}
	unassigned := &models.Complaint{ID: "c-1", ReporterID: student.ID}

	assert.True(t, policy.CanManage(admin, assigned))
	assert.True(t, policy.CanManage(admin, unassigned))
	assert.True(t, policy.CanManage(manager, assigned))
	assert.False(t, policy.CanManage(manager, unassigned))
	assert.False(t, policy.CanManage(student, assigned))
	assert.False(t, policy.CanManage(student, unassigned))
	assert.False(t, policy.CanManage(nil, assigned))
}

// TestCanAssign verifies that only admins assign, and only while the
// complaint is unassigned.
func TestCanAssign(t *testing.T) {
	managerID := manager.ID
	assigned := &models.Complaint{ID: "c-2", AssignedManagerID: &managerID}
	unassigned := &models.Complaint{ID: "c-1"}

	assert.True(t, policy.CanAssign(admin, unassigned))
	assert.False(t, policy.CanAssign(admin, assigned), "re-assignment is rejected")
	assert.False(t, policy.CanAssign(manager, unassigned))
	assert.False(t, policy.CanAssign(student, unassigned))
}
