// Package repository provides the data access layer for the CMS-pro
// application. This file handles user account lookup, listing, and
// lifecycle operations.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/subalakshmi-817/CMS-pro/internal/database"
	"github.com/subalakshmi-817/CMS-pro/internal/models"
)

// UserRepository handles user-related database operations: accounts,
// authentication lookups, and the manager roster.
type UserRepository struct{}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail retrieves a user by their email address.
// Used during login to validate credentials; the result includes the
// password hash, so it must never be serialized to a response.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, name, role, department, employee_id, password_hash, created_at
		FROM users WHERE email = $1`

	var user models.User
	err := database.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role,
		&user.Department, &user.EmployeeID, &user.PasswordHash, &user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	return &user, nil
}

// FindByID retrieves a user by their unique ID.
// Used for session validation and to denormalize names onto complaints.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, email, name, role, department, employee_id, password_hash, created_at
		FROM users WHERE id = $1`

	var user models.User
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role,
		&user.Department, &user.EmployeeID, &user.PasswordHash, &user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	return &user, nil
}

// ListManagers retrieves all users with the manager role, ordered by name.
// Populates the assignable-manager picker on the complaint detail screen.
func (r *UserRepository) ListManagers(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, email, name, role, department, employee_id, created_at
		FROM users WHERE role = 'manager' ORDER BY name`

	return r.list(ctx, query)
}

// ListAll retrieves all users regardless of role, newest account first.
// Used by the admin user-management view.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, email, name, role, department, employee_id, created_at
		FROM users ORDER BY created_at DESC`

	return r.list(ctx, query)
}

func (r *UserRepository) list(ctx context.Context, query string) ([]models.User, error) {
	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Name, &user.Role,
			&user.Department, &user.EmployeeID, &user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
		}
		users = append(users, user)
	}

	return users, nil
}

// Create inserts a new user. Password must be bcrypt-hashed before the
// call. Populates user.ID and user.CreatedAt from the database.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, name, role, department, employee_id, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := database.DB.QueryRow(ctx, query,
		user.Email, user.Name, user.Role, user.Department, user.EmployeeID, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

// Delete removes a user by ID. Hard delete; complaints keep the
// denormalized reporter and manager names, so history stays readable.
func (r *UserRepository) Delete(ctx context.Context, userID int) error {
	query := `DELETE FROM users WHERE id = $1`
	if _, err := database.DB.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}
