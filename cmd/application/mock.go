package application

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/kindergarten/rollcall"
	"github.com/kindergarten/rollcall/pkg/attendance"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	APIFunc          func() (API, error)
	CredentialsFunc  func() Credentials
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NowFunc          func() time.Time
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// API returns the API using the mock function or nil.
func (m *Mock) API() (API, error) {
	if m.APIFunc != nil {
		return m.APIFunc()
	}
	return nil, nil
}

// Credentials returns the store using the mock function or nil.
func (m *Mock) Credentials() Credentials {
	if m.CredentialsFunc != nil {
		return m.CredentialsFunc()
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Now returns the time using the mock function or time.Now.
func (m *Mock) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return time.Now()
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)

// MockAPI provides a mock implementation of API for testing.
// Nil function fields return zero values.
type MockAPI struct {
	LoginFunc            func(ctx context.Context, username, password string) (*rollcall.Token, error)
	CurrentUserFunc      func(ctx context.Context) (*rollcall.User, error)
	GroupsForTeacherFunc func(ctx context.Context, teacherID, skip, limit int) ([]rollcall.Group, error)
	FetchChildrenFunc    func(ctx context.Context, groupID int) ([]attendance.Child, error)
	FetchAttendanceFunc  func(ctx context.Context, groupID int, date civil.Date) ([]attendance.Record, error)
	SubmitFunc           func(ctx context.Context, req attendance.BulkRequest) ([]attendance.Record, error)
	RosterLimitValue     int
}

// Login calls LoginFunc.
func (m *MockAPI) Login(ctx context.Context, username, password string) (*rollcall.Token, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &rollcall.Token{}, nil
}

// CurrentUser calls CurrentUserFunc.
func (m *MockAPI) CurrentUser(ctx context.Context) (*rollcall.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return &rollcall.User{}, nil
}

// GroupsForTeacher calls GroupsForTeacherFunc.
func (m *MockAPI) GroupsForTeacher(ctx context.Context, teacherID, skip, limit int) ([]rollcall.Group, error) {
	if m.GroupsForTeacherFunc != nil {
		return m.GroupsForTeacherFunc(ctx, teacherID, skip, limit)
	}
	return nil, nil
}

// FetchChildren calls FetchChildrenFunc.
func (m *MockAPI) FetchChildren(ctx context.Context, groupID int) ([]attendance.Child, error) {
	if m.FetchChildrenFunc != nil {
		return m.FetchChildrenFunc(ctx, groupID)
	}
	return nil, nil
}

// FetchAttendance calls FetchAttendanceFunc.
func (m *MockAPI) FetchAttendance(ctx context.Context, groupID int, date civil.Date) ([]attendance.Record, error) {
	if m.FetchAttendanceFunc != nil {
		return m.FetchAttendanceFunc(ctx, groupID, date)
	}
	return nil, nil
}

// SubmitBulkAttendance calls SubmitFunc, echoing the request when unset.
func (m *MockAPI) SubmitBulkAttendance(ctx context.Context, req attendance.BulkRequest) ([]attendance.Record, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return req.Items, nil
}

// RosterLimit returns RosterLimitValue.
func (m *MockAPI) RosterLimit() int {
	return m.RosterLimitValue
}

// Ensure MockAPI implements API at compile time.
var _ API = (*MockAPI)(nil)
