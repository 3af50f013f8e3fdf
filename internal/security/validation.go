// Package security provides input validation functionality.
package security

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationService provides centralized input validation functions.
// All validation methods return descriptive errors that are safe to show
// to users.
type ValidationService struct {
	config *SecurityConfig
}

// NewValidationService creates a new validation service with security configuration.
func NewValidationService(config *SecurityConfig) *ValidationService {
	return &ValidationService{
		config: config,
	}
}

// ValidateEmail validates email address format according to RFC 5322.
func (v *ValidationService) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if len(email) > 255 {
		return fmt.Errorf("email must be less than 255 characters")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidatePassword validates password meets minimum security requirements:
// at least 8 characters with uppercase, lowercase, and a digit.
func (v *ValidationService) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must be less than 128 characters")
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

// ValidateComplaintTitle validates complaint title length and content.
func (v *ValidationService) ValidateComplaintTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("complaint title is required")
	}

	if utf8.RuneCountInString(title) > v.config.MaxTitleLength {
		return fmt.Errorf("complaint title must be %d characters or less", v.config.MaxTitleLength)
	}

	return nil
}

// ValidateDescription validates complaint description length and content.
func (v *ValidationService) ValidateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("complaint description is required")
	}

	if utf8.RuneCountInString(description) > v.config.MaxDescriptionLength {
		return fmt.Errorf("complaint description must be %d characters or less", v.config.MaxDescriptionLength)
	}

	return nil
}

// ValidateLocation validates a complaint location value. Location is
// optional at this layer; only the length is bounded.
func (v *ValidationService) ValidateLocation(location string) error {
	if utf8.RuneCountInString(location) > v.config.MaxLocationLength {
		return fmt.Errorf("location must be %d characters or less", v.config.MaxLocationLength)
	}
	return nil
}

// ValidateNote validates a status-change or resolution note. Whether a
// note is mandatory depends on the transition and is decided by the
// complaint service; here only the length is bounded.
func (v *ValidationService) ValidateNote(note string) error {
	if utf8.RuneCountInString(note) > v.config.MaxNoteLength {
		return fmt.Errorf("note must be %d characters or less", v.config.MaxNoteLength)
	}
	return nil
}
