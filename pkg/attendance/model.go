// Package attendance implements the attendance-marking workflow for one
// kindergarten group on one day.
//
// A Reconciler loads the group roster together with any attendance already
// recorded on the server, lets the caller edit marks locally, and saves the
// whole day back in a single bulk request. Each Entry keeps the last
// server-confirmed Mark as its baseline so pending changes are always a pure
// comparison between Current and Baseline.
//
//	r := attendance.New(backend)
//	if err := r.Load(ctx, 3, civil.DateOf(time.Now())); err != nil {
//		return err
//	}
//	r.Edit(12, attendance.Absent(attendance.AbsenceSickLeave, "fever"))
//	result, err := r.Save(ctx, 3, date)
package attendance

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// AbsenceType classifies why a child is absent.
type AbsenceType string

// Absence types understood by the backend.
const (
	AbsenceNone      AbsenceType = ""
	AbsenceSickLeave AbsenceType = "sick_leave"
	AbsenceVacation  AbsenceType = "vacation"
	AbsenceOther     AbsenceType = "other"
)

// AbsenceTypes lists the recognized absence types in display order.
var AbsenceTypes = []AbsenceType{AbsenceSickLeave, AbsenceVacation, AbsenceOther}

var folder = cases.Fold()

// ParseAbsenceType maps s onto a recognized absence type. Matching ignores
// case and surrounding whitespace; anything else yields AbsenceNone.
func ParseAbsenceType(s string) AbsenceType {
	folded := folder.String(strings.TrimSpace(s))
	for _, t := range AbsenceTypes {
		if folded == string(t) {
			return t
		}
	}
	return AbsenceNone
}

// IsValid reports whether t is one of the recognized absence types.
func (t AbsenceType) IsValid() bool {
	return slices.Contains(AbsenceTypes, t)
}

// String returns the wire value, or "none".
func (t AbsenceType) String() string {
	if t == AbsenceNone {
		return "none"
	}
	return string(t)
}

// Mark is the attendance state of one child.
type Mark struct {
	Present       bool        `json:"present"`
	AbsenceType   AbsenceType `json:"absence_type,omitempty"`
	AbsenceReason string      `json:"absence_reason,omitempty"`
}

// Present returns a present mark.
func Present() Mark {
	return Mark{Present: true}
}

// Absent returns a normalized absent mark.
func Absent(absenceType AbsenceType, reason string) Mark {
	return Mark{AbsenceType: absenceType, AbsenceReason: reason}.Normalize()
}

// Normalize enforces the mark invariants: present children carry no absence
// details, unrecognized types become AbsenceNone and blank reasons are
// dropped.
func (m Mark) Normalize() Mark {
	if m.Present {
		return Mark{Present: true}
	}
	m.AbsenceType = ParseAbsenceType(string(m.AbsenceType))
	if strings.TrimSpace(m.AbsenceReason) == "" {
		m.AbsenceReason = ""
	}
	return m
}

// String renders the mark for logs and tables.
func (m Mark) String() string {
	if m.Present {
		return "present"
	}
	switch {
	case m.AbsenceType == AbsenceNone && m.AbsenceReason == "":
		return "absent"
	case m.AbsenceReason == "":
		return fmt.Sprintf("absent (%s)", m.AbsenceType)
	default:
		return fmt.Sprintf("absent (%s: %s)", m.AbsenceType, m.AbsenceReason)
	}
}

// Entry is one child's row in an attendance set.
type Entry struct {
	ChildID     int
	DisplayName string

	// Current is the locally edited mark.
	Current Mark

	// Baseline is the mark last confirmed by the server.
	Baseline Mark

	// Unconfirmed is set when a successful save did not echo this child back.
	// It holds until a later save confirms the child or the set is reloaded.
	Unconfirmed bool
}

// HasPendingChanges reports whether the entry differs from what the server
// last confirmed.
func (e Entry) HasPendingChanges() bool {
	return e.Unconfirmed || e.Current != e.Baseline
}

// Child is a roster member as returned by the backend.
type Child struct {
	ID       int
	FullName string
	GroupID  int
}

// DisplayName returns the child's name, falling back to the ID.
func (c Child) DisplayName() string {
	if name := strings.TrimSpace(c.FullName); name != "" {
		return name
	}
	return fmt.Sprintf("Child #%d", c.ID)
}

// Record is an attendance record for one child on one day.
type Record struct {
	ChildID       int
	Present       bool
	AbsenceType   AbsenceType
	AbsenceReason string
}

// Mark returns the normalized mark carried by the record.
func (r Record) Mark() Mark {
	return Mark{
		Present:       r.Present,
		AbsenceType:   r.AbsenceType,
		AbsenceReason: r.AbsenceReason,
	}.Normalize()
}

// recordFor builds the submitted record for a child.
func recordFor(childID int, m Mark) Record {
	return Record{
		ChildID:       childID,
		Present:       m.Present,
		AbsenceType:   m.AbsenceType,
		AbsenceReason: m.AbsenceReason,
	}
}
