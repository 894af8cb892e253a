package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

// Hard per-session headcount bounds. Input minimums below MinHeadcount are
// clamped up; no session ever grows past MaxHeadcount.
const (
	MinHeadcount = 2
	MaxHeadcount = 3
)

// Input errors are fatal and surfaced before allocation starts.
var (
	ErrEmptyStaffID       = errors.New("staff id is empty")
	ErrDuplicateStaffID   = errors.New("duplicate staff id")
	ErrNoAvailability     = errors.New("staff has no availability")
	ErrDuplicateSessionID = errors.New("duplicate session id")
	ErrUnknownTimeBlock   = errors.New("session time block is not canonical")
	ErrInconsistentState  = errors.New("schedule state is inconsistent")
)

// Engine handles the logic of assigning staff to sessions. Sessions and
// staff keep their input order throughout; every tie-break below falls back
// to that order (or to session id) so repeated runs on identical input
// produce identical output.
type Engine struct {
	Sessions []models.Session
	Staff    []models.Staff

	staffByID map[string]*models.Staff
	assigned  map[string][]models.Placement // session id -> placements
	loads     *loadTracker
}

// New creates an engine for one run. The engine owns no state across runs;
// callers wanting concurrent runs must hand each its own copy of the tables.
func New(sessions []models.Session, staff []models.Staff) *Engine {
	e := &Engine{
		Sessions: make([]models.Session, len(sessions)),
		Staff:    staff,
		assigned: make(map[string][]models.Placement, len(sessions)),
		loads:    newLoadTracker(),
	}
	copy(e.Sessions, sessions)
	for i := range e.Sessions {
		if e.Sessions[i].MinRequired < MinHeadcount {
			e.Sessions[i].MinRequired = MinHeadcount
		}
		if e.Sessions[i].MinRequired > MaxHeadcount {
			e.Sessions[i].MinRequired = MaxHeadcount
		}
	}
	e.staffByID = make(map[string]*models.Staff, len(staff))
	for i := range e.Staff {
		e.staffByID[e.Staff[i].ID] = &e.Staff[i]
	}
	return e
}

// Validate checks the structural input invariants. Any error here stops the
// run before allocation; the engine never allocates with ambiguous identity.
func (e *Engine) Validate() error {
	staffIDs := make(map[string]bool, len(e.Staff))
	for _, st := range e.Staff {
		if strings.TrimSpace(st.ID) == "" {
			return ErrEmptyStaffID
		}
		if staffIDs[st.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateStaffID, st.ID)
		}
		staffIDs[st.ID] = true
		if len(st.Availability) == 0 {
			return fmt.Errorf("%w: %s", ErrNoAvailability, st.ID)
		}
		for _, b := range st.Availability {
			if !b.Valid() {
				return fmt.Errorf("%w: staff %s lists %q", ErrUnknownTimeBlock, st.ID, b)
			}
		}
	}

	sessionIDs := make(map[string]bool, len(e.Sessions))
	for _, sess := range e.Sessions {
		if sessionIDs[sess.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateSessionID, sess.ID)
		}
		sessionIDs[sess.ID] = true
		if !sess.TimeBlock.Valid() {
			return fmt.Errorf("%w: session %s has %q", ErrUnknownTimeBlock, sess.ID, sess.TimeBlock)
		}
	}
	return nil
}

// Run executes the full pipeline: validate, greedy allocation, completeness
// pass, balancing pass, result build. Constraint shortfalls do not fail the
// run; they come back in the result's Shortfall.
func (e *Engine) Run() (*models.ScheduleResult, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.allocate()
	e.complete()
	e.balance()
	return e.buildResult()
}

// loadTracker is the only mutable shared state in a run: who is placed
// where, per time block, plus the total session count per staff member.
type loadTracker struct {
	perBlock map[models.TimeBlock]map[string]string // staff id -> session id
	load     map[string]int
}

func newLoadTracker() *loadTracker {
	t := &loadTracker{
		perBlock: make(map[models.TimeBlock]map[string]string, len(models.TimeBlocks)),
		load:     make(map[string]int),
	}
	for _, b := range models.TimeBlocks {
		t.perBlock[b] = make(map[string]string)
	}
	return t
}

// placedInBlock reports whether the staff member already holds a session in
// the given block. Double-booking within a block is a hard constraint.
func (t *loadTracker) placedInBlock(staffID string, block models.TimeBlock) bool {
	_, ok := t.perBlock[block][staffID]
	return ok
}

func (t *loadTracker) place(staffID string, block models.TimeBlock, sessionID string) {
	t.perBlock[block][staffID] = sessionID
	t.load[staffID]++
}

// move rebinds a staff member to a different session in the same block.
// Total load is unchanged; only the balancing pass uses this.
func (t *loadTracker) move(staffID string, block models.TimeBlock, sessionID string) {
	t.perBlock[block][staffID] = sessionID
}

// eligiblePoolSize counts staff available in the block, ignoring current
// placement. Used to order sessions scarcest-first before allocation.
func (e *Engine) eligiblePoolSize(block models.TimeBlock) int {
	n := 0
	for i := range e.Staff {
		if e.Staff[i].Available(block) {
			n++
		}
	}
	return n
}

// sessionOrder returns the processing order for the greedy allocator:
// sessions with fewer eligible staff first, ties by session id.
func (e *Engine) sessionOrder() []int {
	pool := make(map[string]int, len(e.Sessions))
	for _, sess := range e.Sessions {
		pool[sess.ID] = e.eligiblePoolSize(sess.TimeBlock)
	}
	order := make([]int, len(e.Sessions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := e.Sessions[order[a]], e.Sessions[order[b]]
		if pool[sa.ID] != pool[sb.ID] {
			return pool[sa.ID] < pool[sb.ID]
		}
		return sa.ID < sb.ID
	})
	return order
}

// sortedSessionIDs returns all session ids ascending; the balancing pass and
// the shortfall reports scan in this order.
func (e *Engine) sortedSessionIDs() []string {
	ids := make([]string, 0, len(e.Sessions))
	for _, sess := range e.Sessions {
		ids = append(ids, sess.ID)
	}
	sort.Strings(ids)
	return ids
}

func (e *Engine) sessionByID(id string) *models.Session {
	for i := range e.Sessions {
		if e.Sessions[i].ID == id {
			return &e.Sessions[i]
		}
	}
	return nil
}

func countVeterans(placed []models.Placement) int {
	n := 0
	for _, p := range placed {
		if p.Veteran {
			n++
		}
	}
	return n
}
