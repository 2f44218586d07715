package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindergarten/rollcall"
	"github.com/kindergarten/rollcall/internal/cmd/table"
	"github.com/kindergarten/rollcall/pkg/attendance"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "table", "JSON", "yaml", "wide"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatWide))
	assert.IsType(t, &TableFormatter{}, NewFormatter(""))
}

func TestDetectFormat(t *testing.T) {
	t.Run("explicit format wins", func(t *testing.T) {
		assert.Equal(t, FormatYAML, DetectFormat("YAML", &bytes.Buffer{}))
		assert.Equal(t, FormatTable, DetectFormat("table", &bytes.Buffer{}))
	})

	t.Run("non-terminal writer defaults to json", func(t *testing.T) {
		assert.Equal(t, FormatJSON, DetectFormat("", &bytes.Buffer{}))
	})

	t.Run("regular file defaults to json", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, FormatJSON, DetectFormat("", f))
	})
}

func TestTableFormatter(t *testing.T) {
	t.Run("table data", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewFormatter(FormatTable).Format(&buf, table.Data{
			Headers:         []string{"ID", "Name"},
			Rows:            [][]string{{"1", "Ann"}, {"2", "Bo"}},
			ColumnAlignment: []table.Align{table.AlignRight, table.AlignLeft},
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Ann")
		assert.Contains(t, buf.String(), "Bo")
	})

	t.Run("non-tabular falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"a": 1}))
		assert.JSONEq(t, `{"a":1}`, buf.String())
	})
}

func TestFormatGroups(t *testing.T) {
	groups := []rollcall.Group{{ID: 3, Name: "Sunflowers", AgeMin: 3, AgeMax: 4}}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatGroups(&buf, "yaml", groups))
		assert.Contains(t, buf.String(), "name: Sunflowers")
		assert.Contains(t, buf.String(), "age_min: 3")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatGroups(&buf, "", groups))
		assert.Contains(t, buf.String(), "3-4")
	})
}

func TestNewRosterView(t *testing.T) {
	view := NewRosterView(nil)
	assert.NotNil(t, view.Children)
	assert.Empty(t, view.Children)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"children":[]`)
}

func TestFormatChanges(t *testing.T) {
	cs := &attendance.Changeset{
		GroupID: 3,
		Entries: []attendance.EntryChange{{
			ChildID:     2,
			DisplayName: "Bo",
			Current:     attendance.Present(),
			Changes:     []attendance.FieldChange{{Path: "present", OldValue: "false", NewValue: "true"}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatChanges(&buf, "json", cs))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 3, decoded["group_id"])
	entries := decoded["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "Bo", entries[0].(map[string]any)["name"])
}
