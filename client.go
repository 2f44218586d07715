// Package rollcall is a client for a kindergarten-management REST API
// focused on daily attendance.
//
// The Client wraps the typed endpoints (login, current user, groups) and
// hands out attendance reconcilers that load a group's roster for a day,
// track local edits against the server baseline and save the whole day in
// one bulk request.
//
// Example usage:
//
//	client, err := rollcall.New(
//	    rollcall.WithBaseURL("https://kg.example.com/"),
//	    rollcall.WithToken(token),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := client.Attendance()
//	date := civil.DateOf(time.Now())
//	if err := r.Load(ctx, groupID, date); err != nil {
//	    log.Fatal(errors.UserMessage(err))
//	}
//	r.Edit(childID, attendance.Absent(attendance.AbsenceSickLeave, "fever"))
//	result, err := r.Save(ctx, groupID, date)
package rollcall

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/kindergarten/rollcall/internal/api"
	"github.com/kindergarten/rollcall/internal/transport"
	"github.com/kindergarten/rollcall/pkg/attendance"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// Types returned by the API.
type (
	// User is the authenticated account.
	User = api.User

	// Group is a kindergarten group.
	Group = api.Group

	// Token is an issued access token.
	Token = api.TokenResponse
)

// Compile-time interface check to ensure proper implementation.
var _ attendance.Backend = (*Client)(nil)

// Client talks to the kindergarten API.
type Client struct {
	options *options
	api     *api.Client
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	topts := []transport.Option{transport.WithUserAgent(o.userAgent)}
	if o.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(o.httpClient))
	} else {
		topts = append(topts, transport.WithTimeout(o.timeout))
	}
	if o.tokens != nil {
		topts = append(topts, transport.WithTokenSource(o.tokens))
	}
	if o.tokenType != "" {
		topts = append(topts, transport.WithAuthenticator(&transport.SchemeAuth{Scheme: o.tokenType}))
	}

	tc, err := transport.New(o.baseURL, topts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", o.baseURL, err)
	}

	return &Client{
		options: o,
		api:     api.New(tc, api.WithRosterLimit(o.rosterLimit)),
	}, nil
}

// Attendance returns a new attendance reconciler backed by this client.
// Each editing session should use its own reconciler.
func (c *Client) Attendance(opts ...attendance.Option) *attendance.Reconciler {
	base := []attendance.Option{attendance.WithRosterLimit(c.options.rosterLimit)}
	if c.options.logger != nil {
		base = append(base, attendance.WithLogger(c.options.logger))
	}
	return attendance.New(c, append(base, opts...)...)
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	return c.api.Login(ctx, username, password)
}

// CurrentUser returns the account the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	return c.api.CurrentUser(ctx)
}

// GroupsForTeacher lists the groups led by a teacher.
func (c *Client) GroupsForTeacher(ctx context.Context, teacherID, skip, limit int) ([]Group, error) {
	return c.api.GroupsForTeacher(ctx, teacherID, skip, limit)
}

// FetchChildren returns the roster of a group.
func (c *Client) FetchChildren(ctx context.Context, groupID int) ([]attendance.Child, error) {
	return c.api.FetchChildren(ctx, groupID)
}

// FetchAttendance returns the records stored for a group on a day.
func (c *Client) FetchAttendance(ctx context.Context, groupID int, date civil.Date) ([]attendance.Record, error) {
	return c.api.FetchAttendance(ctx, groupID, date)
}

// SubmitBulkAttendance upserts a full day.
func (c *Client) SubmitBulkAttendance(ctx context.Context, req attendance.BulkRequest) ([]attendance.Record, error) {
	return c.api.SubmitBulkAttendance(ctx, req)
}

// RosterLimit returns the roster page size.
func (c *Client) RosterLimit() int {
	return c.options.rosterLimit
}
