package attendance

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// Set is the ordered attendance roster of one group on one day.
// Entries keep the order in which the roster was returned.
type Set struct {
	GroupID int
	Date    civil.Date

	entries []Entry
	index   map[int]int
}

// newSet merges a roster with existing records. Records are indexed by child
// with later duplicates replacing earlier ones; the number of replaced
// records and of repeated roster children is returned for logging.
func newSet(groupID int, date civil.Date, children []Child, records []Record) (set *Set, duplicateRecords, duplicateChildren int) {
	byChild := make(map[int]Mark, len(records))
	for _, rec := range records {
		if _, seen := byChild[rec.ChildID]; seen {
			duplicateRecords++
		}
		byChild[rec.ChildID] = rec.Mark()
	}

	set = &Set{
		GroupID: groupID,
		Date:    date,
		entries: make([]Entry, 0, len(children)),
		index:   make(map[int]int, len(children)),
	}
	for _, child := range children {
		if _, seen := set.index[child.ID]; seen {
			duplicateChildren++
			continue
		}
		mark := byChild[child.ID]
		set.index[child.ID] = len(set.entries)
		set.entries = append(set.entries, Entry{
			ChildID:     child.ID,
			DisplayName: child.DisplayName(),
			Current:     mark,
			Baseline:    mark,
		})
	}
	return set, duplicateRecords, duplicateChildren
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of the entries in roster order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry returns the entry for a child.
func (s *Set) Entry(childID int) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	i, ok := s.index[childID]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Pending returns the entries with pending changes.
func (s *Set) Pending() []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if e.HasPendingChanges() {
			out = append(out, e)
		}
	}
	return out
}

// HasPendingChanges reports whether any entry has pending changes.
func (s *Set) HasPendingChanges() bool {
	if s == nil {
		return false
	}
	for _, e := range s.entries {
		if e.HasPendingChanges() {
			return true
		}
	}
	return false
}

// ChildIDs returns the child IDs in roster order.
func (s *Set) ChildIDs() []int {
	if s == nil {
		return nil
	}
	ids := make([]int, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ChildID
	}
	return ids
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	clone := &Set{
		GroupID: s.GroupID,
		Date:    s.Date,
		entries: s.Entries(),
		index:   make(map[int]int, len(s.index)),
	}
	for id, i := range s.index {
		clone.index[id] = i
	}
	return clone
}

func (s *Set) matches(groupID int, date civil.Date) bool {
	return s.GroupID == groupID && s.Date == date
}

// apply sets the current mark of a child and returns the entry before and
// after the change.
func (s *Set) apply(childID int, m Mark) (before, after Entry, ok bool) {
	i, ok := s.index[childID]
	if !ok {
		return Entry{}, Entry{}, false
	}
	before = s.entries[i]
	s.entries[i].Current = m
	return before, s.entries[i], true
}

// bulkRequest snapshots every entry's current mark.
func (s *Set) bulkRequest() BulkRequest {
	items := make([]Record, len(s.entries))
	for i, e := range s.entries {
		items[i] = recordFor(e.ChildID, e.Current)
	}
	return BulkRequest{GroupID: s.GroupID, Date: s.Date, Items: items}
}

// entryUpdate pairs an entry before and after reconciliation.
type entryUpdate struct {
	before, after Entry
}

// reconcile applies the records accepted by a bulk save. submitted holds the
// marks that were sent. Confirmed entries take the server mark as baseline;
// their current mark follows the server unless it was edited after
// submission. Entries missing from the response are flagged unconfirmed.
func (s *Set) reconcile(records []Record, submitted map[int]Mark) (result SaveResult, updates []entryUpdate, unknown int) {
	accepted := make(map[int]Mark, len(records))
	for _, rec := range records {
		if _, ok := s.index[rec.ChildID]; !ok {
			unknown++
			continue
		}
		accepted[rec.ChildID] = rec.Mark()
	}

	for i := range s.entries {
		e := &s.entries[i]
		before := *e

		server, ok := accepted[e.ChildID]
		if !ok {
			e.Unconfirmed = true
			result.Unconfirmed = append(result.Unconfirmed, e.ChildID)
		} else {
			if e.Current == submitted[e.ChildID] {
				e.Current = server
			} else {
				result.EditedDuringSave = append(result.EditedDuringSave, e.ChildID)
			}
			e.Baseline = server
			e.Unconfirmed = false
			result.Confirmed++
		}

		if *e != before {
			updates = append(updates, entryUpdate{before: before, after: *e})
		}
	}
	return result, updates, unknown
}

// FieldChange is a change to one field of an entry.
type FieldChange struct {
	Path     string `json:"path"`      // "present", "absence_type" or "absence_reason"
	OldValue string `json:"old_value"` // Baseline value
	NewValue string `json:"new_value"` // Current value
}

// EntryChange describes the pending changes of one entry.
type EntryChange struct {
	ChildID     int           `json:"child_id"`
	DisplayName string        `json:"name"`
	Baseline    Mark          `json:"baseline"`
	Current     Mark          `json:"current"`
	Unconfirmed bool          `json:"unconfirmed,omitempty"`
	Changes     []FieldChange `json:"changes"`
}

// Changeset lists the pending changes of a set in roster order.
type Changeset struct {
	GroupID int           `json:"group_id"`
	Date    civil.Date    `json:"date"`
	Entries []EntryChange `json:"entries"`
}

// HasChanges returns true if the changeset contains any change.
func (c *Changeset) HasChanges() bool {
	return len(c.Entries) > 0
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if !c.HasChanges() {
		return "No pending changes"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d pending change(s) for group %d on %s:\n", len(c.Entries), c.GroupID, c.Date)
	for _, e := range c.Entries {
		fmt.Fprintf(&sb, "  %s (#%d): %s -> %s", e.DisplayName, e.ChildID, e.Baseline, e.Current)
		if e.Unconfirmed {
			sb.WriteString(" [unconfirmed]")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Changes returns the changeset of entries with pending changes.
func (s *Set) Changes() *Changeset {
	cs := &Changeset{}
	if s == nil {
		return cs
	}
	cs.GroupID, cs.Date = s.GroupID, s.Date
	for _, e := range s.entries {
		if !e.HasPendingChanges() {
			continue
		}
		cs.Entries = append(cs.Entries, EntryChange{
			ChildID:     e.ChildID,
			DisplayName: e.DisplayName,
			Baseline:    e.Baseline,
			Current:     e.Current,
			Unconfirmed: e.Unconfirmed,
			Changes:     diffMarks(e.Baseline, e.Current),
		})
	}
	return cs
}

func diffMarks(old, new Mark) []FieldChange {
	var changes []FieldChange
	if old.Present != new.Present {
		changes = append(changes, FieldChange{
			Path:     "present",
			OldValue: fmt.Sprint(old.Present),
			NewValue: fmt.Sprint(new.Present),
		})
	}
	if old.AbsenceType != new.AbsenceType {
		changes = append(changes, FieldChange{
			Path:     "absence_type",
			OldValue: old.AbsenceType.String(),
			NewValue: new.AbsenceType.String(),
		})
	}
	if old.AbsenceReason != new.AbsenceReason {
		changes = append(changes, FieldChange{
			Path:     "absence_reason",
			OldValue: old.AbsenceReason,
			NewValue: new.AbsenceReason,
		})
	}
	return changes
}

// Summary holds attendance counts for a set.
type Summary struct {
	Total       int
	Present     int
	Absent      int
	Pending     int
	Unconfirmed int
	ByType      map[AbsenceType]int
}

// Summary counts the current marks of the set.
func (s *Set) Summary() Summary {
	sum := Summary{ByType: make(map[AbsenceType]int)}
	if s == nil {
		return sum
	}
	for _, e := range s.entries {
		sum.Total++
		if e.Current.Present {
			sum.Present++
		} else {
			sum.Absent++
			sum.ByType[e.Current.AbsenceType]++
		}
		if e.HasPendingChanges() {
			sum.Pending++
		}
		if e.Unconfirmed {
			sum.Unconfirmed++
		}
	}
	return sum
}
