// Package models defines the domain entities and data transfer objects for CMS-pro.
// It includes database models mapped to PostgreSQL tables, form DTOs for API input,
// and view models returned to the mobile client.
package models

import "time"

// ============================================================================
// Enumerations
// ============================================================================

// Role identifies the access level of a user account.
// Roles form a closed set; every authorization decision in the policy
// package branches on this value and nothing else.
type Role string

// Valid roles. Students report complaints, managers work the complaints
// assigned to them, admins see and control everything.
const (
	RoleStudent Role = "student"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// ComplaintStatus is the lifecycle state of a complaint.
// The state machine moves strictly forward:
// pending -> in_progress -> resolved, with pending -> resolved allowed.
// Resolved is terminal.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
)

// Valid reports whether s is one of the known statuses.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Rank returns the position of s in the forward-moving lifecycle.
// Used to check that an audit timeline is monotonic non-decreasing.
func (s ComplaintStatus) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusResolved:
		return 2
	}
	return -1
}

// Category is the closed set of complaint categories.
// CategoryOthers is the classifier fallback when no keyword matches.
type Category string

const (
	CategoryWifi           Category = "wifi"
	CategoryLab            Category = "lab"
	CategoryHostel         Category = "hostel"
	CategoryElectrical     Category = "electrical"
	CategoryInfrastructure Category = "infrastructure"
	CategoryLibrary        Category = "library"
	CategoryOthers         Category = "others"
)

// Categories lists every category in fixed enumeration order.
// The classifier depends on this order for its first-seen-wins tie rule.
var Categories = []Category{
	CategoryWifi,
	CategoryLab,
	CategoryHostel,
	CategoryElectrical,
	CategoryInfrastructure,
	CategoryLibrary,
	CategoryOthers,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Priority is the urgency level assigned to a complaint.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Locations is the fixed set of campus locations offered by the client
// when submitting a complaint. Free-text values are still accepted.
var Locations = []string{
	"Block A",
	"Block B",
	"Block C",
	"Lab - Computer Science",
	"Lab - Electronics",
	"Lab - Mechanical",
	"Hostel - Boys",
	"Hostel - Girls",
	"Library - Main",
	"Library - Reference",
	"Cafeteria",
	"Auditorium",
	"Sports Complex",
	"Administrative Block",
	"Others",
}

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// User represents a system user account with role-based access control.
//
// Database Table: users
// Security Note: PasswordHash must never be exposed in API responses or logs.
type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	Role         Role      `db:"role" json:"role"`
	Department   string    `db:"department" json:"department,omitempty"`
	EmployeeID   string    `db:"employee_id" json:"employeeId,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Complaint represents a reported campus issue tracked through the
// three-state lifecycle. Created by a student; status and assignment are
// mutated only through the complaint service; never deleted in normal flow.
//
// Invariant: ResolvedAt is non-nil if and only if Status == StatusResolved.
//
// Database Table: complaints
// Related: ComplaintUpdate (one-to-many, append-only)
type Complaint struct {
	ID                  string          `db:"id" json:"id"`
	Title               string          `db:"title" json:"title"`
	Description         string          `db:"description" json:"description"`
	Category            Category        `db:"category" json:"category"`
	Location            string          `db:"location" json:"location"`
	Priority            Priority        `db:"priority" json:"priority"`
	Status              ComplaintStatus `db:"status" json:"status"`
	ReporterID          int             `db:"reporter_id" json:"reporterId"`
	ReporterName        string          `db:"reporter_name" json:"reporterName"`
	AssignedManagerID   *int            `db:"assigned_manager_id" json:"assignedManagerId,omitempty"`
	AssignedManagerName *string         `db:"assigned_manager_name" json:"assignedManagerName,omitempty"`
	ImageURL            *string         `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updatedAt"`
	ResolvedAt          *time.Time      `db:"resolved_at" json:"resolvedAt,omitempty"`
}

// ComplaintUpdate is an immutable audit-trail entry recording a status
// change or assignment event on a complaint.
//
// Database Table: complaint_updates
// Immutability: once created, updates are never modified or deleted.
// Invariant: updates for a complaint, ordered by CreatedAt, form a
// monotonic non-decreasing status timeline.
type ComplaintUpdate struct {
	ID            string          `db:"id" json:"id"`
	ComplaintID   string          `db:"complaint_id" json:"complaintId"`
	Status        ComplaintStatus `db:"status" json:"status"`
	Note          string          `db:"note" json:"note"`
	UpdatedBy     int             `db:"updated_by" json:"updatedBy"`
	UpdatedByName string          `db:"updated_by_name" json:"updatedByName"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
}

// ============================================================================
// Data Transfer Objects (DTOs) - API Input
// ============================================================================

// LoginForm represents user login credentials.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupForm represents the self-service registration payload.
// Self-registered accounts are always students; managers and admins are
// created through the admin API.
type SignupForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	EmployeeID string `json:"employeeId"`
}

// CreateUserForm represents the admin user-creation payload.
type CreateUserForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	EmployeeID string `json:"employeeId"`
}

// CreateComplaintForm represents a new complaint submission.
// Category and Priority are optional; when absent the classifier
// suggestion is applied server-side.
type CreateComplaintForm struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Location    string   `json:"location"`
	Priority    Priority `json:"priority"`
	ImageURL    string   `json:"imageUrl"`
}

// ChangeStatusForm represents a status-change request.
// Note is mandatory when Status is resolved.
type ChangeStatusForm struct {
	Status ComplaintStatus `json:"status"`
	Note   string          `json:"note"`
}

// AssignForm represents an assignment request naming the manager
// who will take over the complaint.
type AssignForm struct {
	ManagerID int `json:"managerId"`
}

// SuggestForm carries the free text the classifier scores.
type SuggestForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ============================================================================
// View Models - API Output
// ============================================================================

// ComplaintStats holds the per-status complaint counts shown on the
// dashboard. Counts are scoped to what the requesting user may see.
type ComplaintStats struct {
	Total      int `db:"total" json:"total"`
	Pending    int `db:"pending" json:"pending"`
	InProgress int `db:"in_progress" json:"inProgress"`
	Resolved   int `db:"resolved" json:"resolved"`
}

// Meta bundles the fixed vocabularies the client renders as pickers.
type Meta struct {
	Categories []Category        `json:"categories"`
	Locations  []string          `json:"locations"`
	Priorities []Priority        `json:"priorities"`
	Statuses   []ComplaintStatus `json:"statuses"`
}
