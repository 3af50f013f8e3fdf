// Package services_test provides unit tests for the services layer.
// Auth service tests verify bcrypt hashing, credential verification, and
// self-service student signup.
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
	"github.com/subalakshmi-817/CMS-pro/internal/services"
	"golang.org/x/crypto/bcrypt"
)

// TestAuthService_HashPassword verifies bcrypt password hashing.
//
// Security Requirements Tested:
//   - Hash output is non-empty and differs from the plaintext
//   - Hash verifies against the original password
func TestAuthService_HashPassword(t *testing.T) {
	service := services.NewAuthService()

	hash, err := service.HashPassword("Sup3rSecret")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Sup3rSecret", hash, "hash must not equal plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Sup3rSecret")))
}

// TestAuthService_Authenticate verifies credential checking.
//
// Test Cases:
//   - Valid credentials: returns the user
//   - Wrong password: invalid-credentials error
//   - Unknown email: the same invalid-credentials error, so the API never
//     reveals which accounts exist
func TestAuthService_Authenticate(t *testing.T) {
	userColumns := []string{"id", "email", "name", "role", "department", "employee_id", "password_hash", "created_at"}
	testTime := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// MinCost keeps the test fast; CompareHashAndPassword reads the cost
	// from the hash itself.
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		mock := withMockDB(t)
		mock.ExpectQuery("SELECT(.+)FROM users WHERE email").
			WithArgs("priya@campus.edu").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(7, "priya@campus.edu", "Priya", models.RoleStudent, "CSE", "", string(hash), testTime))

		service := services.NewAuthService()

		user, err := service.Authenticate(context.Background(), "priya@campus.edu", "Sup3rSecret")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, 7, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		mock := withMockDB(t)
		mock.ExpectQuery("SELECT(.+)FROM users WHERE email").
			WithArgs("priya@campus.edu").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(7, "priya@campus.edu", "Priya", models.RoleStudent, "CSE", "", string(hash), testTime))

		service := services.NewAuthService()

		user, err := service.Authenticate(context.Background(), "priya@campus.edu", "wrong")

		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email", func(t *testing.T) {
		mock := withMockDB(t)
		mock.ExpectQuery("SELECT(.+)FROM users WHERE email").
			WithArgs("nobody@campus.edu").
			WillReturnError(pgx.ErrNoRows)

		service := services.NewAuthService()

		user, err := service.Authenticate(context.Background(), "nobody@campus.edu", "whatever")

		assert.ErrorIs(t, err, models.ErrInvalidCredentials,
			"unknown account and wrong password must be indistinguishable")
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestAuthService_Signup verifies self-service registration. Signup
// accounts are always students; managers and admins come from the admin API.
func TestAuthService_Signup(t *testing.T) {
	testTime := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("successful signup", func(t *testing.T) {
		mock := withMockDB(t)
		mock.ExpectQuery("SELECT(.+)FROM users WHERE email").
			WithArgs("new@campus.edu").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("new@campus.edu", "New Student", models.RoleStudent, "ECE", "", pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(12, testTime))

		service := services.NewAuthService()

		user, err := service.Signup(context.Background(), models.SignupForm{
			Name:       "New Student",
			Email:      "new@campus.edu",
			Password:   "Sup3rSecret",
			Department: "ECE",
		})

		require.NoError(t, err)
		assert.Equal(t, 12, user.ID)
		assert.Equal(t, models.RoleStudent, user.Role, "self-service accounts are students")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		mock := withMockDB(t)
		mock.ExpectQuery("SELECT(.+)FROM users WHERE email").
			WithArgs("priya@campus.edu").
			WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "role", "department", "employee_id", "password_hash", "created_at"}).
				AddRow(7, "priya@campus.edu", "Priya", models.RoleStudent, "CSE", "", "hash", testTime))

		service := services.NewAuthService()

		_, err := service.Signup(context.Background(), models.SignupForm{
			Name:     "Priya Again",
			Email:    "priya@campus.edu",
			Password: "Sup3rSecret",
		})

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		mock := withMockDB(t)
		service := services.NewAuthService()

		_, err := service.Signup(context.Background(), models.SignupForm{Email: "x@campus.edu"})

		assert.ErrorIs(t, err, models.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
