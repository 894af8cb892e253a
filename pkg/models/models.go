package models

// TimeBlock is one of the three canonical daily intervals that every
// session and every availability marker maps onto.
type TimeBlock string

const (
	BlockMorning   TimeBlock = "09:10-11:05"
	BlockMidday    TimeBlock = "11:20-13:15"
	BlockAfternoon TimeBlock = "13:30-14:20"
)

// TimeBlocks lists the canonical blocks in chronological order.
var TimeBlocks = []TimeBlock{BlockMorning, BlockMidday, BlockAfternoon}

// Valid reports whether t is one of the canonical blocks.
func (t TimeBlock) Valid() bool {
	for _, b := range TimeBlocks {
		if t == b {
			return true
		}
	}
	return false
}

// Staff represents a schedulable person
type Staff struct {
	ID           string      `json:"id"`
	PartnerPrefs []string    `json:"partner_prefs,omitempty"` // ranked, up to 3
	CoursePrefs  []string    `json:"course_prefs,omitempty"`  // ranked, up to 2
	Availability []TimeBlock `json:"availability"`
	Veteran      bool        `json:"veteran"`
}

// Available reports whether the staff member can work the given block.
func (s *Staff) Available(block TimeBlock) bool {
	for _, b := range s.Availability {
		if b == block {
			return true
		}
	}
	return false
}

// Session represents one course section occurrence that needs staffing
type Session struct {
	ID          string    `json:"id"`
	TimeBlock   TimeBlock `json:"time_block"`
	Course      string    `json:"course"`
	Section     string    `json:"section"`
	MinRequired int       `json:"min_required"`
}

// Placement is one staff member placed into a session
type Placement struct {
	StaffID string `json:"staff_id"`
	Veteran bool   `json:"veteran"`
}

// Assignment is the set of staff placed into one session
type Assignment struct {
	SessionID string      `json:"session_id"`
	Assigned  []Placement `json:"assigned"`
}

// Shortfall collects the non-fatal constraint gaps left after all passes
type Shortfall struct {
	UnderStaffed []string `json:"under_staffed,omitempty"` // session IDs below their minimum
	Unbalanced   []string `json:"unbalanced,omitempty"`    // session IDs without veteran coverage
	Unplaced     []string `json:"unplaced,omitempty"`      // staff IDs with zero placements
}

// ScheduleResult is the engine output: final assignments plus load counters
type ScheduleResult struct {
	Assignments map[string]Assignment `json:"assignments"` // session ID -> assignment
	StaffLoad   map[string]int        `json:"staff_load"`  // staff ID -> session count
	Shortfall   Shortfall             `json:"shortfall"`
}

// ScheduleInput is the data structure for the scheduling endpoint
type ScheduleInput struct {
	Sessions []Session `json:"sessions"`
	Staff    []Staff   `json:"staff"`
}

// ScheduleResponse is the wire shape returned by the scheduling endpoints
type ScheduleResponse struct {
	Assignments     map[string]Assignment `json:"assignments"`
	StaffLoad       map[string]int        `json:"staff_load"`
	UnderStaffed    []string              `json:"under_staffed"`
	Unbalanced      []string              `json:"unbalanced"`
	UnplacedStaff   []string              `json:"unplaced_staff"`
	SessionCount    int                   `json:"session_count"`
	StaffCount      int                   `json:"staff_count"`
	UnbalancedCount int                   `json:"unbalanced_count"`
}
