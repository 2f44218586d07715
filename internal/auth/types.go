// Package auth stores the API access token between runs and reports its
// status. Everything here is local; no network calls are made.
package auth

import "time"

// State represents the state of the stored credentials.
type State int

const (
	// StateValid means a token is stored and not known to be expired.
	StateValid State = iota
	// StateMissing means no token is stored.
	StateMissing
	// StateExpired means the stored token's expiry has passed.
	StateExpired
	// StateInvalid means the stored token cannot be decoded.
	StateInvalid
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateMissing:
		return "missing"
	case StateExpired:
		return "expired"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Status describes the stored credentials.
type Status struct {
	State     State
	Summary   string    // Brief one-line summary
	Username  string    // Username given at login
	Subject   string    // Token subject claim
	ExpiresAt time.Time // Zero when the token has no expiry
	SavedAt   time.Time
	Path      string
}

// Credentials is the persisted login.
type Credentials struct {
	AccessToken string    `yaml:"access_token"`
	TokenType   string    `yaml:"token_type"`
	Username    string    `yaml:"username"`
	SavedAt     time.Time `yaml:"saved_at"`
}
