// Package services_test provides unit tests for the services layer.
// Complaint service tests verify the lifecycle state machine, the
// mandatory resolution note, manager assignment, and that every mutation
// persists the complaint and its audit entry in one transaction.
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subalakshmi-817/CMS-pro/internal/database"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
	"github.com/subalakshmi-817/CMS-pro/internal/services"
)

var (
	student = &models.User{ID: 7, Name: "Priya", Role: models.RoleStudent}
	manager = &models.User{ID: 3, Name: "Arun", Role: models.RoleManager}
	admin   = &models.User{ID: 1, Name: "Admin", Role: models.RoleAdmin}
)

// complaintTestColumns mirrors the canonical complaint column order.
var complaintTestColumns = []string{
	"id", "title", "description", "category", "location", "priority", "status",
	"reporter_id", "reporter_name", "assigned_manager_id", "assigned_manager_name",
	"image_url", "created_at", "updated_at", "resolved_at",
}

// complaintRow builds a mocked complaint row in the given status, with an
// optional assigned manager.
func complaintRow(status models.ComplaintStatus, managerID *int, managerName *string) *pgxmock.Rows {
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return pgxmock.NewRows(complaintTestColumns).
		AddRow("c-100", "Wifi down", "No signal in Block A", models.CategoryWifi,
			"Block A", models.PriorityHigh, status,
			7, "Priya", managerID, managerName, nil, created, created, nil)
}

// anyArgs returns n pgxmock.AnyArg matchers, for expectations that do
// not care about the statement arguments.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

// expectGetByID sets up the lookup every mutation starts with.
func expectGetByID(mock pgxmock.PgxPoolIface, rows *pgxmock.Rows) {
	mock.ExpectQuery("SELECT(.+)FROM complaints WHERE id").
		WithArgs("c-100").
		WillReturnRows(rows)
}

// expectSaveWithUpdate sets up the transactional pair every successful
// mutation performs: the complaint upsert and the audit append, bracketed
// by begin and commit.
func expectSaveWithUpdate(mock pgxmock.PgxPoolIface) {
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO complaints").
		WithArgs(anyArgs(15)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO complaint_updates").
		WithArgs(anyArgs(7)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
}

func withMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	oldDB := database.DB
	database.DB = mock
	t.Cleanup(func() { database.DB = oldDB })

	return mock
}

// TestComplaintService_Create verifies complaint submission.
//
// Test Cases:
//   - Classifier fill: missing category/priority are derived from the text
//   - Client values kept: valid category/priority pass through untouched
//   - Empty title / description: rejected before any database call
func TestComplaintService_Create(t *testing.T) {
	t.Run("classifier fills missing category and priority", func(t *testing.T) {
		mock := withMockDB(t)
		mock.ExpectExec("INSERT INTO complaints").
			WithArgs(anyArgs(15)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		service := services.NewComplaintService()

		form := models.CreateComplaintForm{
			Title:       "Wifi not working",
			Description: "The hostel wifi has been down since morning",
		}
		c, err := service.Create(context.Background(), form, student)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, models.StatusPending, c.Status, "new complaints start pending")
		assert.Equal(t, models.CategoryWifi, c.Category)
		assert.Equal(t, models.PriorityMedium, c.Priority, `"not working" is a medium keyword`)
		assert.Equal(t, 7, c.ReporterID)
		assert.Equal(t, "Priya", c.ReporterName)
		assert.Nil(t, c.AssignedManagerID)
		assert.Nil(t, c.ResolvedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("client-supplied values are kept", func(t *testing.T) {
		mock := withMockDB(t)
		mock.ExpectExec("INSERT INTO complaints").
			WithArgs(anyArgs(15)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		service := services.NewComplaintService()

		form := models.CreateComplaintForm{
			Title:       "Chairs missing",
			Description: "Half the chairs in the reading room are gone",
			Category:    models.CategoryLibrary,
			Priority:    models.PriorityLow,
		}
		c, err := service.Create(context.Background(), form, student)

		require.NoError(t, err)
		assert.Equal(t, models.CategoryLibrary, c.Category)
		assert.Equal(t, models.PriorityLow, c.Priority)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("whitespace title rejected", func(t *testing.T) {
		mock := withMockDB(t)
		service := services.NewComplaintService()

		_, err := service.Create(context.Background(), models.CreateComplaintForm{
			Title:       "   ",
			Description: "something",
		}, student)

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet(), "no database call for invalid input")
	})

	t.Run("empty description rejected", func(t *testing.T) {
		mock := withMockDB(t)
		service := services.NewComplaintService()

		_, err := service.Create(context.Background(), models.CreateComplaintForm{
			Title: "Wifi down",
		}, student)

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestComplaintService_ChangeStatus verifies the lifecycle state machine
// and its guards, in the order the service checks them.
func TestComplaintService_ChangeStatus(t *testing.T) {
	managerID := 3
	managerName := "Arun"

	t.Run("assigned manager resolves complaint", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusInProgress, &managerID, &managerName))
		expectSaveWithUpdate(mock)

		service := services.NewComplaintService()

		c, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusResolved, "Router replaced", manager)

		require.NoError(t, err)
		assert.Equal(t, models.StatusResolved, c.Status)
		require.NotNil(t, c.ResolvedAt, "resolvedAt set exactly when resolving")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin moves pending to in_progress with default note", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusPending, nil, nil))
		expectSaveWithUpdate(mock)

		service := services.NewComplaintService()

		c, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusInProgress, "", admin)

		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, c.Status)
		assert.Nil(t, c.ResolvedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown status rejected before lookup", func(t *testing.T) {
		mock := withMockDB(t)
		service := services.NewComplaintService()

		_, err := service.ChangeStatus(context.Background(), "c-100",
			"closed", "note", admin)

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("resolving without a note rejected", func(t *testing.T) {
		mock := withMockDB(t)
		service := services.NewComplaintService()

		_, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusResolved, "   ", manager)

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown complaint", func(t *testing.T) {
		mock := withMockDB(t)
		mock.ExpectQuery("SELECT(.+)FROM complaints WHERE id").
			WithArgs("c-100").
			WillReturnError(pgx.ErrNoRows)

		service := services.NewComplaintService()

		_, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusInProgress, "", admin)

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("student cannot change status", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusPending, nil, nil))

		service := services.NewComplaintService()

		_, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusInProgress, "", student)

		assert.ErrorIs(t, err, models.ErrNotAuthorized)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unassigned manager cannot change status", func(t *testing.T) {
		mock := withMockDB(t)
		otherID := 4
		otherName := "Meena"
		expectGetByID(mock, complaintRow(models.StatusInProgress, &otherID, &otherName))

		service := services.NewComplaintService()

		_, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusResolved, "done", manager)

		assert.ErrorIs(t, err, models.ErrNotAuthorized)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("resolved is terminal", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusResolved, &managerID, &managerName))

		service := services.NewComplaintService()

		_, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusInProgress, "", admin)

		assert.ErrorIs(t, err, models.ErrState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeating the current status rejected", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusInProgress, &managerID, &managerName))

		service := services.NewComplaintService()

		_, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusInProgress, "", manager)

		assert.ErrorIs(t, err, models.ErrState,
			"duplicate transition must not append a redundant audit row")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure rolls back", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusPending, nil, nil))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO complaints").
			WithArgs(anyArgs(15)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("INSERT INTO complaint_updates").
			WithArgs(anyArgs(7)...).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		service := services.NewComplaintService()

		_, err := service.ChangeStatus(context.Background(), "c-100",
			models.StatusInProgress, "", admin)

		assert.ErrorIs(t, err, models.ErrPersistence)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestComplaintService_AssignManager verifies admin-only manager
// assignment, including the automatic pending to in_progress move.
func TestComplaintService_AssignManager(t *testing.T) {
	userColumns := []string{"id", "email", "name", "role", "department", "employee_id", "password_hash", "created_at"}
	testTime := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("assigning pending complaint moves it to in_progress", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusPending, nil, nil))
		mock.ExpectQuery("SELECT(.+)FROM users WHERE id").
			WithArgs(3).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(3, "arun@campus.edu", "Arun", models.RoleManager, "Facilities", "EMP-031", "hash", testTime))
		expectSaveWithUpdate(mock)

		service := services.NewComplaintService()

		c, err := service.AssignManager(context.Background(), "c-100", 3, admin)

		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, c.Status)
		require.NotNil(t, c.AssignedManagerID)
		assert.Equal(t, 3, *c.AssignedManagerID)
		require.NotNil(t, c.AssignedManagerName)
		assert.Equal(t, "Arun", *c.AssignedManagerName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("only admins assign", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusPending, nil, nil))

		service := services.NewComplaintService()

		_, err := service.AssignManager(context.Background(), "c-100", 3, manager)

		assert.ErrorIs(t, err, models.ErrNotAuthorized)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("re-assignment rejected", func(t *testing.T) {
		mock := withMockDB(t)
		otherID := 4
		otherName := "Meena"
		expectGetByID(mock, complaintRow(models.StatusInProgress, &otherID, &otherName))

		service := services.NewComplaintService()

		_, err := service.AssignManager(context.Background(), "c-100", 3, admin)

		assert.ErrorIs(t, err, models.ErrState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("resolved complaint cannot be assigned", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusResolved, nil, nil))

		service := services.NewComplaintService()

		_, err := service.AssignManager(context.Background(), "c-100", 3, admin)

		assert.ErrorIs(t, err, models.ErrState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("assignee must hold the manager role", func(t *testing.T) {
		mock := withMockDB(t)
		expectGetByID(mock, complaintRow(models.StatusPending, nil, nil))
		mock.ExpectQuery("SELECT(.+)FROM users WHERE id").
			WithArgs(7).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(7, "priya@campus.edu", "Priya", models.RoleStudent, "CSE", "", "hash", testTime))

		service := services.NewComplaintService()

		_, err := service.AssignManager(context.Background(), "c-100", 7, admin)

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
