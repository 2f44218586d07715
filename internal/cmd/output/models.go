package output

import (
	"io"

	"github.com/kindergarten/rollcall"
	"github.com/kindergarten/rollcall/internal/cmd/constants"
	"github.com/kindergarten/rollcall/internal/cmd/table"
	"github.com/kindergarten/rollcall/pkg/attendance"
)

// EntryView is the structured form of one roster row.
type EntryView struct {
	ChildID       int    `json:"child_id"`
	Name          string `json:"name"`
	Present       bool   `json:"present"`
	AbsenceType   string `json:"absence_type,omitempty"`
	AbsenceReason string `json:"absence_reason,omitempty"`
	Pending       bool   `json:"pending"`
	Unconfirmed   bool   `json:"unconfirmed,omitempty"`
}

// SummaryView is the structured form of attendance counts.
type SummaryView struct {
	Total       int            `json:"total"`
	Present     int            `json:"present"`
	Absent      int            `json:"absent"`
	Pending     int            `json:"pending"`
	Unconfirmed int            `json:"unconfirmed"`
	ByType      map[string]int `json:"by_absence_type,omitempty"`
}

// RosterView is the structured form of an attendance set.
type RosterView struct {
	GroupID  int         `json:"group_id"`
	Date     string      `json:"date"`
	Summary  SummaryView `json:"summary"`
	Children []EntryView `json:"children"`
	Save     *SaveView   `json:"save,omitempty"`
}

// SaveView is the structured form of a save result.
type SaveView struct {
	Confirmed        int   `json:"confirmed"`
	Unconfirmed      []int `json:"unconfirmed,omitempty"`
	EditedDuringSave []int `json:"edited_during_save,omitempty"`
}

// NewRosterView converts a set for structured output.
func NewRosterView(set *attendance.Set) RosterView {
	view := RosterView{Children: []EntryView{}}
	if set == nil {
		return view
	}
	view.GroupID = set.GroupID
	view.Date = set.Date.String()
	view.Summary = newSummaryView(set.Summary())

	for _, e := range set.Entries() {
		ev := EntryView{
			ChildID:       e.ChildID,
			Name:          e.DisplayName,
			Present:       e.Current.Present,
			AbsenceReason: e.Current.AbsenceReason,
			Pending:       e.HasPendingChanges(),
			Unconfirmed:   e.Unconfirmed,
		}
		if e.Current.AbsenceType != attendance.AbsenceNone {
			ev.AbsenceType = string(e.Current.AbsenceType)
		}
		view.Children = append(view.Children, ev)
	}
	return view
}

func newSummaryView(sum attendance.Summary) SummaryView {
	view := SummaryView{
		Total:       sum.Total,
		Present:     sum.Present,
		Absent:      sum.Absent,
		Pending:     sum.Pending,
		Unconfirmed: sum.Unconfirmed,
	}
	if len(sum.ByType) > 0 {
		view.ByType = make(map[string]int, len(sum.ByType))
		for t, n := range sum.ByType {
			view.ByType[t.String()] = n
		}
	}
	return view
}

// FormatRoster writes an attendance set in the requested format.
func FormatRoster(w io.Writer, format string, set *attendance.Set) error {
	formatter := NewFormatter(Format(format))

	var outputData any
	if constants.IsTable(format) {
		outputData = table.RosterToTableData(set, format == constants.FormatWide)
	} else {
		outputData = NewRosterView(set)
	}

	return formatter.Format(w, outputData)
}

// FormatSaved writes the reconciled set together with the save result.
// Table output prints the roster only; callers report the result as text.
func FormatSaved(w io.Writer, format string, set *attendance.Set, result attendance.SaveResult) error {
	if constants.IsTable(format) {
		return FormatRoster(w, format, set)
	}

	view := NewRosterView(set)
	view.Save = &SaveView{
		Confirmed:        result.Confirmed,
		Unconfirmed:      result.Unconfirmed,
		EditedDuringSave: result.EditedDuringSave,
	}
	return NewFormatter(Format(format)).Format(w, view)
}

// FormatSummary writes attendance counts in the requested format.
func FormatSummary(w io.Writer, format string, sum attendance.Summary) error {
	formatter := NewFormatter(Format(format))

	var outputData any
	if constants.IsTable(format) {
		outputData = table.SummaryToTableData(sum)
	} else {
		outputData = newSummaryView(sum)
	}

	return formatter.Format(w, outputData)
}

// FormatChanges writes the pending changes of a set.
func FormatChanges(w io.Writer, format string, cs *attendance.Changeset) error {
	formatter := NewFormatter(Format(format))

	var outputData any
	if constants.IsTable(format) {
		outputData = table.ChangesToTableData(cs)
	} else {
		outputData = cs
	}

	return formatter.Format(w, outputData)
}

// FormatGroups writes groups in the requested format.
func FormatGroups(w io.Writer, format string, groups []rollcall.Group) error {
	formatter := NewFormatter(Format(format))

	var outputData any
	if constants.IsTable(format) {
		outputData = table.GroupsToTableData(groups)
	} else {
		outputData = groups
	}

	return formatter.Format(w, outputData)
}
