package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/kindergarten/rollcall/internal/transport"
	"github.com/kindergarten/rollcall/pkg/attendance"
	"github.com/kindergarten/rollcall/pkg/logging"
)

// FetchChildren returns the roster of a group, at most one page.
func (c *Client) FetchChildren(ctx context.Context, groupID int) ([]attendance.Child, error) {
	query := url.Values{
		"group_id": {strconv.Itoa(groupID)},
		"limit":    {strconv.Itoa(c.rosterLimit)},
	}
	resp, err := c.transport.Get(ctx, pathChildren, query)
	if err != nil {
		return nil, err
	}

	var dtos []ChildDTO
	if err := transport.DecodeResponse(resp, &dtos); err != nil {
		return nil, err
	}
	children := make([]attendance.Child, len(dtos))
	for i, dto := range dtos {
		children[i] = dto.toChild(groupID)
	}
	return children, nil
}

// FetchAttendance returns the records stored for a group on a day.
func (c *Client) FetchAttendance(ctx context.Context, groupID int, date civil.Date) ([]attendance.Record, error) {
	query := url.Values{
		"group_id":        {strconv.Itoa(groupID)},
		"attendance_date": {date.String()},
	}
	resp, err := c.transport.Get(ctx, pathAttendance, query)
	if err != nil {
		return nil, err
	}

	var dtos []AttendanceRecordDTO
	if err := transport.DecodeResponse(resp, &dtos); err != nil {
		return nil, err
	}
	return toRecords(dtos), nil
}

// SubmitBulkAttendance upserts a full day and returns the stored records.
// Each submission carries a fresh idempotency key.
func (c *Client) SubmitBulkAttendance(ctx context.Context, req attendance.BulkRequest) ([]attendance.Record, error) {
	key := uuid.NewString()
	logging.FromContext(ctx).Debug().
		Str("idempotency_key", key).
		Int("items", len(req.Items)).
		Msg("Posting bulk attendance")

	header := http.Header{IdempotencyKeyHeader: {key}}
	resp, err := c.transport.PostJSON(ctx, pathAttendanceBulk, toBulkDTO(req), header)
	if err != nil {
		return nil, err
	}

	var dtos []AttendanceRecordDTO
	if err := transport.DecodeResponse(resp, &dtos); err != nil {
		return nil, err
	}
	return toRecords(dtos), nil
}
