package scheduler

import (
	"fmt"

	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

// buildResult assembles the final assignment map, per-staff load counters and
// the shortfall report. Pure transformation; the only failure mode is an
// internal consistency defect, which aborts rather than returning silently
// wrong data.
func (e *Engine) buildResult() (*models.ScheduleResult, error) {
	res := &models.ScheduleResult{
		Assignments: make(map[string]models.Assignment, len(e.Sessions)),
		StaffLoad:   make(map[string]int, len(e.Staff)),
	}

	totalAssigned := 0
	for _, id := range e.sortedSessionIDs() {
		sess := e.sessionByID(id)
		placed := e.assigned[id]
		res.Assignments[id] = models.Assignment{
			SessionID: id,
			Assigned:  placed,
		}
		totalAssigned += len(placed)

		if len(placed) < sess.MinRequired {
			res.Shortfall.UnderStaffed = append(res.Shortfall.UnderStaffed, id)
		}
		if len(placed) > 0 && countVeterans(placed) == 0 {
			res.Shortfall.Unbalanced = append(res.Shortfall.Unbalanced, id)
		}
	}

	totalLoad := 0
	for i := range e.Staff {
		st := &e.Staff[i]
		load := e.loads.load[st.ID]
		res.StaffLoad[st.ID] = load
		totalLoad += load
		if load == 0 {
			res.Shortfall.Unplaced = append(res.Shortfall.Unplaced, st.ID)
		}
	}

	if totalAssigned != totalLoad {
		return nil, fmt.Errorf("%w: %d placements vs %d load", ErrInconsistentState, totalAssigned, totalLoad)
	}
	return res, nil
}
