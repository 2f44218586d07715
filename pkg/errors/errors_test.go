package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kindergarten/rollcall/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "group",
			ID:       "7",
		}
		assert.Equal(t, "group with ID 7 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("child", "3")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("group_id", 0, "must be positive")
		assert.Equal(t, "validation failed for field group_id: must be positive", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad request"}
		assert.Equal(t, "validation failed: bad request", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusUnauthorized, pkgerrors.ErrUnauthorized},
		{http.StatusForbidden, pkgerrors.ErrForbidden},
		{http.StatusNotFound, pkgerrors.ErrNotFound},
		{http.StatusUnprocessableEntity, pkgerrors.ErrInvalidInput},
		{http.StatusTooManyRequests, pkgerrors.ErrRateLimited},
		{http.StatusBadGateway, pkgerrors.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := pkgerrors.NewAPIError("api/attendance/bulk", tt.status, "boom")
			assert.True(t, errors.Is(err, tt.target))
			assert.Contains(t, err.Error(), "api/attendance/bulk")
			assert.Contains(t, err.Error(), fmt.Sprint(tt.status))
		})
	}

	t.Run("conflict maps to nothing", func(t *testing.T) {
		err := pkgerrors.NewAPIError("api/children/", http.StatusConflict, "dup")
		assert.False(t, errors.Is(err, pkgerrors.ErrUnavailable))
		assert.False(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("with wrapped error", func(t *testing.T) {
		baseErr := errors.New("connection reset")
		err := pkgerrors.WrapAPI("api/auth/me", 0, baseErr)
		var apiErr *pkgerrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, baseErr, apiErr.Unwrap())
		assert.NotContains(t, err.Error(), "status")
	})
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("fetch", "children", "group 4", pkgerrors.ErrForbidden)
	var resErr *pkgerrors.ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "fetch", resErr.Operation)
	assert.Contains(t, err.Error(), "group 4")
	assert.True(t, pkgerrors.IsForbidden(err))

	assert.NoError(t, pkgerrors.WrapResource("fetch", "children", "", nil))
}

func TestIOAndParseErrors(t *testing.T) {
	ioErr := pkgerrors.WrapIO("write", "/tmp/token.yaml", errors.New("disk full"))
	assert.Contains(t, ioErr.Error(), "/tmp/token.yaml")

	parseErr := pkgerrors.WrapParse("date", "", errors.New("bad month"))
	assert.Equal(t, "date parse error: bad month", parseErr.Error())

	fileErr := pkgerrors.NewParseError("yaml", "token.yaml", "invalid indentation", nil)
	assert.Contains(t, fileErr.Error(), "token.yaml")
}

func TestAuthenticationError(t *testing.T) {
	err := pkgerrors.NewAuthenticationError("anna", "password", "invalid credentials", nil)
	assert.Contains(t, err.Error(), "anna")
	assert.Contains(t, err.Error(), "password")
	assert.True(t, pkgerrors.IsUnauthorized(err))
}

func TestIsTimeoutAndCanceled(t *testing.T) {
	assert.True(t, pkgerrors.IsTimeout(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.True(t, pkgerrors.IsCanceled(fmt.Errorf("wrapped: %w", context.Canceled)))
	assert.False(t, pkgerrors.IsTimeout(errors.New("other")))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"nothing to save", pkgerrors.ErrNothingToSave, "There is no attendance to save."},
		{"in progress", fmt.Errorf("save: %w", pkgerrors.ErrSaveInProgress), "Attendance is already being saved, please wait."},
		{"forbidden", pkgerrors.NewAPIError("api/children/", 403, "Not authorized"), "You do not have access to this group."},
		{"unauthorized", pkgerrors.NewAPIError("api/auth/me", 401, ""), "Your session has expired, please log in again."},
		{"api message", pkgerrors.NewAPIError("api/attendance/bulk", 500, "database error"), "database error"},
		{"api status only", pkgerrors.NewAPIError("api/attendance/bulk", 409, ""), "The server returned an error (409)."},
		{"plain", errors.New("something odd"), "something odd"},
		{"login", pkgerrors.NewAuthenticationError("anna", "password", "invalid username or password", nil), "Login failed: invalid username or password."},
		{"superseded", pkgerrors.ErrSuperseded, "A newer selection replaced this one."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkgerrors.UserMessage(tt.err))
		})
	}
}
