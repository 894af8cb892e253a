package scheduler

import (
	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

// balance repairs veteran coverage after placement has settled. For every
// non-empty session with zero veterans it looks for a donor session in the
// same time block holding two or more veterans, then swaps one veteran in
// for one non-veteran out. Headcounts are unchanged by a one-for-one swap,
// so neither session can drop below its minimum. Sessions scan in id order;
// running balance again on its own output changes nothing.
func (e *Engine) balance() {
	ids := e.sortedSessionIDs()
	for _, needyID := range ids {
		needy := e.sessionByID(needyID)
		placed := e.assigned[needyID]
		if len(placed) == 0 || countVeterans(placed) > 0 {
			continue
		}

		for _, donorID := range ids {
			if donorID == needyID {
				continue
			}
			donor := e.sessionByID(donorID)
			if donor.TimeBlock != needy.TimeBlock {
				continue
			}
			if countVeterans(e.assigned[donorID]) < 2 {
				continue
			}
			if e.swapVeteran(needy, donor) {
				break
			}
		}
		// No same-block donor: the session stays flagged unbalanced in
		// the result, never dropped from the schedule.
	}
}

// swapVeteran moves the donor's first veteran into the needy session and the
// needy session's first non-veteran back to the donor. Both staff already
// hold a session in this block, so availability is preserved; it is checked
// anyway before mutating.
func (e *Engine) swapVeteran(needy, donor *models.Session) bool {
	vetIdx := -1
	for i, p := range e.assigned[donor.ID] {
		if p.Veteran {
			vetIdx = i
			break
		}
	}
	nonVetIdx := -1
	for i, p := range e.assigned[needy.ID] {
		if !p.Veteran {
			nonVetIdx = i
			break
		}
	}
	if vetIdx < 0 || nonVetIdx < 0 {
		return false
	}

	vet := e.assigned[donor.ID][vetIdx]
	nonVet := e.assigned[needy.ID][nonVetIdx]

	vetStaff, okVet := e.staffByID[vet.StaffID]
	nonVetStaff, okNonVet := e.staffByID[nonVet.StaffID]
	if !okVet || !okNonVet {
		return false
	}
	if !vetStaff.Available(needy.TimeBlock) || !nonVetStaff.Available(donor.TimeBlock) {
		return false
	}

	e.assigned[donor.ID][vetIdx] = nonVet
	e.assigned[needy.ID][nonVetIdx] = vet
	e.loads.move(vet.StaffID, needy.TimeBlock, needy.ID)
	e.loads.move(nonVet.StaffID, donor.TimeBlock, donor.ID)
	return true
}
