package attendance

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"

	"github.com/kindergarten/rollcall/pkg/attendance"
	"github.com/kindergarten/rollcall/pkg/constants"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// absence is one parsed --absent value.
type absence struct {
	ChildID int
	Type    attendance.AbsenceType
	Reason  string
}

// parseAbsence parses "ID", "ID=TYPE" or "ID=TYPE:REASON".
// TYPE is one of sick_leave, vacation, other or none.
func parseAbsence(s string) (absence, error) {
	idPart, rest, hasType := strings.Cut(strings.TrimSpace(s), "=")

	id, err := parseChildID(idPart)
	if err != nil {
		return absence{}, errors.NewValidationError("absent", s, err.Error())
	}
	a := absence{ChildID: id}
	if !hasType {
		return a, nil
	}

	typePart, reason, _ := strings.Cut(rest, ":")
	typePart = strings.TrimSpace(typePart)
	if typePart != "" && !strings.EqualFold(typePart, "none") {
		a.Type = attendance.ParseAbsenceType(typePart)
		if a.Type == attendance.AbsenceNone {
			return absence{}, errors.NewValidationError("absent", s,
				"unknown absence type "+strconv.Quote(typePart)+" (want sick_leave, vacation or other)")
		}
	}

	a.Reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(a.Reason) > constants.MaxAbsenceReasonLength {
		return absence{}, errors.NewValidationError("absent", s,
			"reason longer than "+strconv.Itoa(constants.MaxAbsenceReasonLength)+" characters")
	}
	return a, nil
}

func parseChildID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, errors.New("child id must be a positive number, got " + strconv.Quote(s))
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD date. Empty input and "today" mean the
// civil date of now; "yesterday" is the day before.
func parseDate(s string, now time.Time) (civil.Date, error) {
	today := civil.DateOf(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, errors.NewValidationError("date", s, "expected "+constants.DateLayout+" layout")
	}
	return d, nil
}

// plan is the set of edits requested on the command line.
type plan struct {
	AllPresent bool
	Present    []int
	Absent     []absence
}

// newPlan validates the requested edits. A child may not be both present
// and absent in the same invocation.
func newPlan(allPresent bool, present []int, absent []string) (*plan, error) {
	p := &plan{AllPresent: allPresent}

	seen := make(map[int]string)
	for _, id := range present {
		if id <= 0 {
			return nil, errors.NewValidationError("present", id, "child id must be a positive number")
		}
		seen[id] = "present"
		p.Present = append(p.Present, id)
	}
	for _, s := range absent {
		a, err := parseAbsence(s)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[a.ChildID]; ok {
			return nil, errors.NewValidationError("absent", s,
				"child "+strconv.Itoa(a.ChildID)+" is already marked "+prev)
		}
		seen[a.ChildID] = "absent"
		p.Absent = append(p.Absent, a)
	}

	if !p.AllPresent && len(p.Present) == 0 && len(p.Absent) == 0 {
		return nil, errors.NewValidationError("", nil, "nothing to mark: use --present, --absent or --all-present")
	}
	return p, nil
}

// marks resolves the plan against a loaded set. Every referenced child must
// be on the roster.
func (p *plan) marks(set *attendance.Set) (map[int]attendance.Mark, error) {
	marks := make(map[int]attendance.Mark)
	if p.AllPresent {
		for _, id := range set.ChildIDs() {
			marks[id] = attendance.Present()
		}
	}

	for _, id := range p.Present {
		if _, ok := set.Entry(id); !ok {
			return nil, notOnRoster(id, set)
		}
		marks[id] = attendance.Present()
	}
	for _, a := range p.Absent {
		if _, ok := set.Entry(a.ChildID); !ok {
			return nil, notOnRoster(a.ChildID, set)
		}
		marks[a.ChildID] = attendance.Absent(a.Type, a.Reason)
	}
	return marks, nil
}

func notOnRoster(childID int, set *attendance.Set) error {
	return errors.NewValidationError("child", childID,
		"child "+strconv.Itoa(childID)+" is not on the roster of group "+strconv.Itoa(set.GroupID))
}
