package attendance_test

import (
	"context"
	"sync"

	"cloud.google.com/go/civil"

	"github.com/kindergarten/rollcall/pkg/attendance"
)

// mockBackend implements attendance.Backend with overridable functions.
// Nil functions return empty results.
type mockBackend struct {
	FetchChildrenFunc   func(ctx context.Context, groupID int) ([]attendance.Child, error)
	FetchAttendanceFunc func(ctx context.Context, groupID int, date civil.Date) ([]attendance.Record, error)
	SubmitFunc          func(ctx context.Context, req attendance.BulkRequest) ([]attendance.Record, error)

	mu            sync.Mutex
	childrenCalls int
	recordCalls   int
	submitted     []attendance.BulkRequest
}

func (m *mockBackend) FetchChildren(ctx context.Context, groupID int) ([]attendance.Child, error) {
	m.mu.Lock()
	m.childrenCalls++
	m.mu.Unlock()
	if m.FetchChildrenFunc != nil {
		return m.FetchChildrenFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *mockBackend) FetchAttendance(ctx context.Context, groupID int, date civil.Date) ([]attendance.Record, error) {
	m.mu.Lock()
	m.recordCalls++
	m.mu.Unlock()
	if m.FetchAttendanceFunc != nil {
		return m.FetchAttendanceFunc(ctx, groupID, date)
	}
	return nil, nil
}

func (m *mockBackend) SubmitBulkAttendance(ctx context.Context, req attendance.BulkRequest) ([]attendance.Record, error) {
	m.mu.Lock()
	m.submitted = append(m.submitted, req)
	m.mu.Unlock()
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockBackend) submits() []attendance.BulkRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]attendance.BulkRequest(nil), m.submitted...)
}

// echo returns the submitted items as the accepted records.
func echo(_ context.Context, req attendance.BulkRequest) ([]attendance.Record, error) {
	return req.Items, nil
}

func roster(children ...attendance.Child) func(context.Context, int) ([]attendance.Child, error) {
	return func(context.Context, int) ([]attendance.Child, error) {
		return children, nil
	}
}

func records(recs ...attendance.Record) func(context.Context, int, civil.Date) ([]attendance.Record, error) {
	return func(context.Context, int, civil.Date) ([]attendance.Record, error) {
		return recs, nil
	}
}

var (
	day = civil.Date{Year: 2024, Month: 5, Day: 14}
	ann = attendance.Child{ID: 1, FullName: "Ann", GroupID: 3}
	bo  = attendance.Child{ID: 2, FullName: "Bo", GroupID: 3}
)
