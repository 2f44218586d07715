// Package api is a typed client for the kindergarten REST API.
package api

import (
	"github.com/kindergarten/rollcall/internal/transport"
	"github.com/kindergarten/rollcall/pkg/attendance"
	"github.com/kindergarten/rollcall/pkg/constants"
)

// API paths.
const (
	pathToken          = "api/auth/token"
	pathMe             = "api/auth/me"
	pathGroups         = "api/groups/"
	pathChildren       = "api/children/"
	pathAttendance     = "api/attendance/"
	pathAttendanceBulk = "api/attendance/bulk"
)

// IdempotencyKeyHeader identifies a bulk submission.
const IdempotencyKeyHeader = "Idempotency-Key"

// Client calls the kindergarten API.
type Client struct {
	transport   *transport.Client
	rosterLimit int
}

var _ attendance.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRosterLimit sets the page size used when fetching a roster.
func WithRosterLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.rosterLimit = limit
		}
	}
}

// New creates an API client on top of a transport.
func New(tc *transport.Client, opts ...Option) *Client {
	c := &Client{
		transport:   tc,
		rosterLimit: constants.RosterPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RosterLimit returns the roster page size.
func (c *Client) RosterLimit() int {
	return c.rosterLimit
}
