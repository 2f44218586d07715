// Package table converts rollcall types into rows for table output.
package table

import (
	"fmt"
	"strconv"

	"github.com/kindergarten/rollcall"
	"github.com/kindergarten/rollcall/internal/cmd/emoji"
	"github.com/kindergarten/rollcall/pkg/attendance"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// RosterToTableData converts an attendance set to table format.
// Wide output adds the baseline column.
func RosterToTableData(set *attendance.Set, wide bool) Data {
	headers := []string{"ID", "Name", "Present", "Absence", "Reason", "Status"}
	align := []Align{AlignRight, AlignLeft, AlignCenter, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Saved As")
		align = append(align, AlignLeft)
	}

	entries := set.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.ChildID),
			e.DisplayName,
			presentCell(e.Current),
			absenceCell(e.Current),
			orDash(e.Current.AbsenceReason),
			statusCell(e),
		}
		if wide {
			row = append(row, e.Baseline.String())
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// ChangesToTableData converts a changeset to one row per changed field.
func ChangesToTableData(cs *attendance.Changeset) Data {
	var rows [][]string
	for _, e := range cs.Entries {
		if len(e.Changes) == 0 {
			// Unconfirmed rows may carry no field change.
			rows = append(rows, []string{strconv.Itoa(e.ChildID), e.DisplayName, "-", "-", "-", unconfirmedCell(e.Unconfirmed)})
			continue
		}
		for _, c := range e.Changes {
			rows = append(rows, []string{
				strconv.Itoa(e.ChildID),
				e.DisplayName,
				c.Path,
				orDash(c.OldValue),
				orDash(c.NewValue),
				unconfirmedCell(e.Unconfirmed),
			})
		}
	}

	return Data{
		Headers:         []string{"ID", "Name", "Field", "Saved", "Pending", "Note"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// SummaryToTableData converts attendance counts to a key-value table.
func SummaryToTableData(sum attendance.Summary) Data {
	rows := [][]string{
		{"Total", strconv.Itoa(sum.Total)},
		{"Present", strconv.Itoa(sum.Present)},
		{"Absent", strconv.Itoa(sum.Absent)},
	}
	for _, t := range append([]attendance.AbsenceType{attendance.AbsenceNone}, attendance.AbsenceTypes...) {
		if n := sum.ByType[t]; n > 0 {
			rows = append(rows, []string{"  " + t.String(), strconv.Itoa(n)})
		}
	}
	rows = append(rows, []string{"Pending", strconv.Itoa(sum.Pending)})
	if sum.Unconfirmed > 0 {
		rows = append(rows, []string{"Unconfirmed", strconv.Itoa(sum.Unconfirmed)})
	}

	return Data{
		Headers:         []string{"Count", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// GroupsToTableData converts groups to table format.
func GroupsToTableData(groups []rollcall.Group) Data {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			strconv.Itoa(g.ID),
			g.Name,
			FormatAgeRange(g.AgeMin, g.AgeMax),
			FormatCapacity(g.Capacity),
			orDash(g.TeacherName),
		})
	}

	return Data{
		Headers:         []string{"ID", "Name", "Ages", "Capacity", "Teacher"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignCenter, AlignRight, AlignLeft},
	}
}

// FormatAgeRange formats a group's age range in years.
func FormatAgeRange(minAge, maxAge int) string {
	switch {
	case minAge == 0 && maxAge == 0:
		return "-"
	case maxAge == 0:
		return fmt.Sprintf("%d+", minAge)
	case minAge == 0:
		return fmt.Sprintf("up to %d", maxAge)
	default:
		return fmt.Sprintf("%d-%d", minAge, maxAge)
	}
}

// FormatCapacity formats a group capacity, "-" when unknown.
func FormatCapacity(capacity int) string {
	if capacity <= 0 {
		return "-"
	}
	return strconv.Itoa(capacity)
}

func presentCell(m attendance.Mark) string {
	if m.Present {
		return emoji.Present
	}
	return emoji.Absent
}

func absenceCell(m attendance.Mark) string {
	if m.Present || m.AbsenceType == attendance.AbsenceNone {
		return "-"
	}
	return m.AbsenceType.String()
}

func statusCell(e attendance.Entry) string {
	switch {
	case e.Unconfirmed:
		return emoji.Warning + " unconfirmed"
	case e.HasPendingChanges():
		return emoji.Pending + " pending"
	default:
		return emoji.Success + " saved"
	}
}

func unconfirmedCell(unconfirmed bool) string {
	if unconfirmed {
		return emoji.Warning + " unconfirmed"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
