package attendance

import (
	"context"

	"cloud.google.com/go/civil"
)

// Backend is the remote attendance service.
type Backend interface {
	// FetchChildren returns the roster of a group in server order.
	FetchChildren(ctx context.Context, groupID int) ([]Child, error)

	// FetchAttendance returns the records already stored for a group and day.
	FetchAttendance(ctx context.Context, groupID int, date civil.Date) ([]Record, error)

	// SubmitBulkAttendance upserts a full day and returns the accepted records.
	SubmitBulkAttendance(ctx context.Context, req BulkRequest) ([]Record, error)
}

// BulkRequest is a full-day attendance snapshot for one group.
type BulkRequest struct {
	GroupID int
	Date    civil.Date
	Items   []Record
}
