// Package security provides centralized security configuration, input
// validation, and rate limiting for the CMS-pro API.
package security

import (
	"time"
)

// SecurityConfig holds all security-related configuration values.
type SecurityConfig struct {
	// Secure password storage
	BcryptCost int // Cost factor for bcrypt hashing

	// Session management
	SessionTimeout    time.Duration // Session inactivity timeout
	SessionCookieName string        // Name of session cookie
	SessionSecure     bool          // Require HTTPS for session cookies
	SessionHTTPOnly   bool          // Prevent JavaScript access to session cookies
	SessionSameSite   string        // CSRF protection via SameSite attribute

	// Input validation limits
	MaxTitleLength       int // Maximum characters in a complaint title
	MaxDescriptionLength int // Maximum characters in a complaint description
	MaxLocationLength    int // Maximum characters in a location
	MaxNoteLength        int // Maximum characters in a status/resolution note
	QueryTimeout         time.Duration

	// Rate limiting (requests per window)
	RateLimitLogin  int // Login attempts per minute per IP
	RateLimitSubmit int // Complaint submissions per minute per user
	RateLimitStatus int // Status changes per minute per user
}

// DefaultSecurityConfig returns security configuration with recommended defaults.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		BcryptCost: 12,

		SessionTimeout:    8 * time.Hour,
		SessionCookieName: "session_id",
		SessionSecure:     true,
		SessionHTTPOnly:   true,
		SessionSameSite:   "Lax",

		MaxTitleLength:       200,
		MaxDescriptionLength: 5000,
		MaxLocationLength:    100,
		MaxNoteLength:        2000,
		QueryTimeout:         30 * time.Second,

		RateLimitLogin:  5,  // per minute per IP
		RateLimitSubmit: 10, // per minute per user
		RateLimitStatus: 20, // per minute per user
	}
}
