package attendance

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/kindergarten/rollcall/pkg/constants"
	"github.com/kindergarten/rollcall/pkg/errors"
	"github.com/kindergarten/rollcall/pkg/logging"
)

// State is the lifecycle state of a reconciler session.
type State int

// Session states.
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateSaving
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSaving:
		return "saving"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SaveResult reports how a successful bulk save was reconciled.
type SaveResult struct {
	// Confirmed is the number of entries echoed back by the server.
	Confirmed int

	// Unconfirmed lists children missing from the response.
	Unconfirmed []int

	// EditedDuringSave lists confirmed children whose local mark changed
	// while the request was in flight and therefore still differs.
	EditedDuringSave []int

	// Superseded is set when a newer load replaced the set before the
	// response arrived. The response was not applied.
	Superseded bool
}

// Reconciler owns the attendance set of one editing session.
// It is safe for concurrent use.
type Reconciler struct {
	backend     Backend
	logger      *zerolog.Logger
	rosterLimit int
	hooks       *hooks

	mu         sync.Mutex
	state      State
	err        error
	set        *Set
	generation uint64
	saving     bool
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. By default the logger is taken from the
// context of each call.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithRosterLimit sets the roster page size used to detect truncation.
func WithRosterLimit(limit int) Option {
	return func(r *Reconciler) {
		if limit > 0 {
			r.rosterLimit = limit
		}
	}
}

// New creates a reconciler backed by the given service.
func New(backend Backend, opts ...Option) *Reconciler {
	r := &Reconciler{
		backend:     backend,
		rosterLimit: constants.RosterPageSize,
		hooks:       newHooks(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnStateChange registers a callback for state transitions.
func (r *Reconciler) OnStateChange(fn StateChangeHook) {
	r.hooks.OnStateChange(fn)
}

// OnEntryUpdated registers a callback for entry changes.
func (r *Reconciler) OnEntryUpdated(fn EntryUpdatedHook) {
	r.hooks.OnEntryUpdated(fn)
}

// State returns the current state and the error of the last failed
// operation, if any.
func (r *Reconciler) State() (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.err
}

// Snapshot returns a copy of the loaded set, or nil before a successful load.
func (r *Reconciler) Snapshot() *Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set.Clone()
}

// Load replaces the session with the roster of groupID on date.
//
// A roster failure fails the load and leaves no set. A failure to read
// existing records is logged and the day starts with every child absent.
// Uncommitted edits of a previous set are discarded.
func (r *Reconciler) Load(ctx context.Context, groupID int, date civil.Date) error {
	if groupID <= 0 {
		return errors.NewValidationError("group_id", groupID, "must be a positive integer")
	}
	if !date.IsValid() {
		return errors.NewValidationError("date", date, "must be a valid calendar date")
	}

	r.mu.Lock()
	r.generation++
	gen := r.generation
	prev := r.state
	r.state = StateLoading
	r.err = nil
	r.set = nil
	r.saving = false
	r.mu.Unlock()
	r.hooks.triggerStateChange(prev, StateLoading)

	log := r.log(ctx).With().Int("group_id", groupID).Str("date", date.String()).Logger()
	log.Debug().Msg("Loading attendance")

	children, err := r.backend.FetchChildren(ctx, groupID)
	if err != nil {
		err = errors.WrapResource("fetch", "children", "group "+strconv.Itoa(groupID), err)
		if !r.finishLoad(gen, nil, err) {
			return errors.ErrSuperseded
		}
		log.Error().Err(err).Msg("Failed to load roster")
		return err
	}
	if len(children) >= r.rosterLimit {
		log.Warn().
			Int("children", len(children)).
			Int("limit", r.rosterLimit).
			Msg("Roster reached the page size limit and may be truncated")
	}

	records, err := r.backend.FetchAttendance(ctx, groupID, date)
	if err != nil {
		log.Warn().Err(err).Msg("Could not read existing attendance, starting from an unmarked day")
		records = nil
	}

	set, dupRecords, dupChildren := newSet(groupID, date, children, records)
	if dupRecords > 0 {
		log.Debug().Int("duplicates", dupRecords).Msg("Duplicate attendance records, keeping the last one per child")
	}
	if dupChildren > 0 {
		log.Warn().Int("duplicates", dupChildren).Msg("Roster lists some children more than once")
	}

	if !r.finishLoad(gen, set, nil) {
		log.Debug().Msg("Load superseded by a newer one")
		return errors.ErrSuperseded
	}

	log.Info().
		Int("children", set.Len()).
		Int("records", len(records)).
		Msg("Attendance loaded")
	return nil
}

// finishLoad installs the outcome of a load unless a newer load started.
func (r *Reconciler) finishLoad(gen uint64, set *Set, err error) bool {
	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		return false
	}
	prev := r.state
	if err != nil {
		r.state = StateFailed
		r.err = err
	} else {
		r.state = StateReady
		r.set = set
	}
	next := r.state
	r.mu.Unlock()

	r.hooks.triggerStateChange(prev, next)
	return true
}

// Edit sets the mark of a child. The mark is normalized first, so a present
// mark never carries absence details. Edit returns false when no set is
// loaded or the child is not in it. Edits are allowed while a save is in
// flight.
func (r *Reconciler) Edit(childID int, mark Mark) bool {
	mark = mark.Normalize()

	r.mu.Lock()
	if r.set == nil {
		r.mu.Unlock()
		return false
	}
	before, after, ok := r.set.apply(childID, mark)
	r.mu.Unlock()

	if ok && before != after {
		r.hooks.triggerEntryUpdates([]entryUpdate{{before: before, after: after}})
	}
	return ok
}

// Save submits the full day for groupID on date, which must match the
// loaded set.
//
// Every entry is sent, not only the changed ones. On success the response
// is reconciled into the set; on failure the set is left untouched and the
// error is also kept in the session state. Only one save may be in flight.
func (r *Reconciler) Save(ctx context.Context, groupID int, date civil.Date) (SaveResult, error) {
	r.mu.Lock()
	switch {
	case r.set == nil:
		r.mu.Unlock()
		return SaveResult{}, errors.ErrNotLoaded
	case r.saving:
		r.mu.Unlock()
		return SaveResult{}, errors.ErrSaveInProgress
	case r.set.Len() == 0:
		r.mu.Unlock()
		return SaveResult{}, errors.ErrNothingToSave
	case !r.set.matches(groupID, date):
		loaded := fmt.Sprintf("group %d on %s", r.set.GroupID, r.set.Date)
		r.mu.Unlock()
		return SaveResult{}, errors.NewValidationError("group_id", groupID,
			fmt.Sprintf("group %d on %s does not match the loaded %s", groupID, date, loaded))
	}

	req := r.set.bulkRequest()
	submitted := make(map[int]Mark, len(req.Items))
	for _, item := range req.Items {
		submitted[item.ChildID] = Mark{
			Present:       item.Present,
			AbsenceType:   item.AbsenceType,
			AbsenceReason: item.AbsenceReason,
		}
	}
	gen := r.generation
	r.saving = true
	prev := r.state
	r.state = StateSaving
	r.err = nil
	r.mu.Unlock()
	r.hooks.triggerStateChange(prev, StateSaving)

	log := r.log(ctx).With().Int("group_id", groupID).Str("date", date.String()).Logger()
	log.Debug().Int("items", len(req.Items)).Msg("Submitting attendance")

	records, err := r.backend.SubmitBulkAttendance(ctx, req)

	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		if err != nil {
			log.Debug().Err(err).Msg("Superseded save failed")
		}
		log.Warn().Msg("Save completed after the set was reloaded, response discarded")
		return SaveResult{Superseded: true}, nil
	}
	r.saving = false
	r.state = StateReady

	if err != nil {
		err = errors.WrapResource("submit", "attendance", fmt.Sprintf("group %d on %s", groupID, date), err)
		r.err = err
		r.mu.Unlock()
		r.hooks.triggerStateChange(StateSaving, StateReady)
		log.Error().Err(err).Msg("Failed to save attendance")
		return SaveResult{}, err
	}

	result, updates, unknown := r.set.reconcile(records, submitted)
	r.mu.Unlock()
	r.hooks.triggerStateChange(StateSaving, StateReady)
	r.hooks.triggerEntryUpdates(updates)

	if unknown > 0 {
		log.Debug().Int("records", unknown).Msg("Response contained children outside the roster")
	}
	if len(result.Unconfirmed) > 0 {
		log.Warn().Ints("child_ids", result.Unconfirmed).Msg("Server did not confirm some children")
	}
	log.Info().
		Int("confirmed", result.Confirmed).
		Int("unconfirmed", len(result.Unconfirmed)).
		Msg("Attendance saved")
	return result, nil
}

func (r *Reconciler) log(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}
