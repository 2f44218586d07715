package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kindergarten/rollcall/pkg/errors"
)

// Checker reports the status of stored credentials.
type Checker struct {
	now func() time.Time
}

// NewChecker creates a new credentials checker.
func NewChecker() *Checker {
	return &Checker{now: time.Now}
}

// Source is where Check reads credentials from. *Store implements it.
type Source interface {
	Load() (*Credentials, error)
	Path() string
}

// Check loads the credentials from the store and inspects them.
func (c *Checker) Check(store Source) (*Status, error) {
	creds, err := store.Load()
	if err != nil {
		if errors.IsNotFound(err) {
			return &Status{
				State:   StateMissing,
				Summary: "Not logged in",
				Path:    store.Path(),
			}, nil
		}
		return nil, err
	}

	status := c.Inspect(creds)
	status.Path = store.Path()
	return status, nil
}

// Inspect decodes the token claims without verifying the signature. The
// server remains the authority on whether the token is accepted.
func (c *Checker) Inspect(creds *Credentials) *Status {
	if creds == nil || creds.AccessToken == "" {
		return &Status{State: StateMissing, Summary: "Not logged in"}
	}

	status := &Status{
		Username: creds.Username,
		SavedAt:  creds.SavedAt,
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(creds.AccessToken, claims); err != nil {
		status.State = StateInvalid
		status.Summary = "Stored token is not a valid JWT"
		return status
	}

	status.Subject = claims.Subject
	if status.Username == "" {
		status.Username = claims.Subject
	}
	if claims.ExpiresAt != nil {
		status.ExpiresAt = claims.ExpiresAt.Time
	}

	now := c.now()
	switch {
	case !status.ExpiresAt.IsZero() && !now.Before(status.ExpiresAt):
		status.State = StateExpired
		status.Summary = fmt.Sprintf("Token for %s expired at %s", status.Username, status.ExpiresAt.Local().Format(time.RFC3339))
	case status.ExpiresAt.IsZero():
		status.State = StateValid
		status.Summary = fmt.Sprintf("Logged in as %s", status.Username)
	default:
		status.State = StateValid
		status.Summary = fmt.Sprintf("Logged in as %s (expires in %s)", status.Username, status.ExpiresAt.Sub(now).Round(time.Minute))
	}
	return status
}
