package groups

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindergarten/rollcall"
	"github.com/kindergarten/rollcall/cmd/application"
	"github.com/kindergarten/rollcall/pkg/errors"
)

func newApp(api application.API, format string) *application.Mock {
	return &application.Mock{
		APIFunc:          func() (application.API, error) { return api, nil },
		OutputFormatFunc: func() string { return format },
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

var testGroups = []rollcall.Group{
	{ID: 3, Name: "Sunflowers", TeacherID: 5, TeacherName: "Anna Ivanova", AgeMin: 3, AgeMax: 4, Capacity: 20},
	{ID: 4, Name: "Bees", TeacherID: 5, AgeMin: 5},
}

func TestList(t *testing.T) {
	t.Run("defaults to the current user", func(t *testing.T) {
		var gotTeacher, gotLimit int
		api := &application.MockAPI{
			CurrentUserFunc: func(context.Context) (*rollcall.User, error) {
				return &rollcall.User{ID: 5, Username: "anna", Role: "teacher"}, nil
			},
			GroupsForTeacherFunc: func(_ context.Context, teacherID, _, limit int) ([]rollcall.Group, error) {
				gotTeacher, gotLimit = teacherID, limit
				return testGroups, nil
			},
		}

		out, err := execute(t, NewCommand(newApp(api, "table")), "list")
		require.NoError(t, err)

		assert.Equal(t, 5, gotTeacher)
		assert.Equal(t, 0, gotLimit)
		assert.Contains(t, out, "Sunflowers")
		assert.Contains(t, out, "3-4")
		assert.Contains(t, out, "5+")
	})

	t.Run("explicit teacher", func(t *testing.T) {
		api := &application.MockAPI{
			CurrentUserFunc: func(context.Context) (*rollcall.User, error) {
				t.Error("CurrentUser should not be called")
				return nil, nil
			},
			GroupsForTeacherFunc: func(_ context.Context, teacherID, skip, limit int) ([]rollcall.Group, error) {
				assert.Equal(t, 9, teacherID)
				assert.Equal(t, 10, skip)
				assert.Equal(t, 5, limit)
				return nil, nil
			},
		}

		out, err := execute(t, NewCommand(newApp(api, "table")), "list", "--teacher", "9", "--skip", "10", "--limit", "5")
		require.NoError(t, err)
		assert.Contains(t, out, "No groups found for teacher 9.")
	})

	t.Run("non-teacher needs --teacher", func(t *testing.T) {
		api := &application.MockAPI{
			CurrentUserFunc: func(context.Context) (*rollcall.User, error) {
				return &rollcall.User{ID: 1, Username: "dad", Role: "parent"}, nil
			},
		}

		_, err := execute(t, NewCommand(newApp(api, "table")), "list")
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("json", func(t *testing.T) {
		api := &application.MockAPI{
			GroupsForTeacherFunc: func(context.Context, int, int, int) ([]rollcall.Group, error) {
				return testGroups, nil
			},
		}

		out, err := execute(t, NewCommand(newApp(api, "json")), "list", "-t", "5")
		require.NoError(t, err)

		var got []rollcall.Group
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, testGroups, got)
	})
}
