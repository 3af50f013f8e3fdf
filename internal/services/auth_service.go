// Package services provides the business logic layer for the CMS-pro
// application. This file implements authentication: credential
// verification with bcrypt and account registration.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/subalakshmi-817/CMS-pro/internal/models"
	"github.com/subalakshmi-817/CMS-pro/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 12 gives 2^12 iterations, a reasonable cost for an
// interactive login on current hardware.
const bcryptCost = 12

// AuthService handles authentication and password management.
//
// Security notes:
//   - bcrypt comparison is constant-time, preventing timing attacks
//   - "user not found" and "wrong password" both surface as
//     models.ErrInvalidCredentials so the API never reveals which
//     accounts exist
//   - plaintext passwords are never stored or logged
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService creates and returns a new AuthService instance.
func NewAuthService() *AuthService {
	return &AuthService{
		userRepo: repository.NewUserRepository(),
	}
}

// Authenticate verifies user credentials and returns the user on success.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword generates a bcrypt hash of the provided plaintext password.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// Signup registers a new student account from the self-service form.
// Managers and admins are provisioned through the admin API instead.
func (s *AuthService) Signup(ctx context.Context, form models.SignupForm) (*models.User, error) {
	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", models.ErrValidation)
	}
	if form.Password == "" {
		return nil, fmt.Errorf("%w: password is required", models.ErrValidation)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		Role:         models.RoleStudent,
		Department:   strings.TrimSpace(form.Department),
		EmployeeID:   strings.TrimSpace(form.EmployeeID),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
