package scheduler

import (
	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

// loadBonusCeiling caps the lighter-load preference: a staff member with
// zero placements gets a +4 edge, fading to nothing at four sessions.
const loadBonusCeiling = 4

// allocate runs the greedy pass: sessions scarcest-pool-first, each filled
// from the highest-scoring eligible candidates until its minimum is met or
// its pool runs dry.
func (e *Engine) allocate() {
	for _, idx := range e.sessionOrder() {
		sess := &e.Sessions[idx]

		for len(e.assigned[sess.ID]) < sess.MinRequired {
			best := e.pickCandidate(sess, false)
			if best == nil {
				break // pool exhausted, reported as a shortfall later
			}
			e.placeStaff(best, sess)
		}

		// A session that met its minimum with zero veterans gets one more
		// slot offered to a veteran right away, so the balancing pass has
		// less to repair. The pass still verifies the invariant globally.
		if len(e.assigned[sess.ID]) >= sess.MinRequired &&
			len(e.assigned[sess.ID]) < MaxHeadcount &&
			countVeterans(e.assigned[sess.ID]) == 0 {
			if vet := e.pickCandidate(sess, true); vet != nil {
				e.placeStaff(vet, sess)
			}
		}
	}
}

// pickCandidate returns the highest-scoring staff member eligible for the
// session, or nil if none remain. Eligible means available in the session's
// block and not already holding a session in that block. A light bonus for
// lightly loaded staff spreads placements before the completeness pass has
// to. Ties go to the first-listed staff member, which keeps the pass
// deterministic.
func (e *Engine) pickCandidate(sess *models.Session, veteransOnly bool) *models.Staff {
	var best *models.Staff
	bestScore := 0
	for i := range e.Staff {
		st := &e.Staff[i]
		if veteransOnly && !st.Veteran {
			continue
		}
		if !st.Available(sess.TimeBlock) {
			continue
		}
		if e.loads.placedInBlock(st.ID, sess.TimeBlock) {
			continue
		}
		w := score(st, sess, e.assigned[sess.ID])
		if bonus := loadBonusCeiling - e.loads.load[st.ID]; bonus > 0 {
			w += bonus
		}
		if best == nil || w > bestScore {
			best = st
			bestScore = w
		}
	}
	return best
}

func (e *Engine) placeStaff(st *models.Staff, sess *models.Session) {
	e.assigned[sess.ID] = append(e.assigned[sess.ID], models.Placement{
		StaffID: st.ID,
		Veteran: st.Veteran,
	})
	e.loads.place(st.ID, sess.TimeBlock, sess.ID)
}

// complete guarantees everyone-placed-once: any staff member the greedy pass
// left with zero placements goes into the least-loaded session they are
// eligible for (ties by session id). Staff with no eligible session are
// reported unplaced rather than forced past the cap.
func (e *Engine) complete() {
	for i := range e.Staff {
		st := &e.Staff[i]
		if e.loads.load[st.ID] > 0 {
			continue
		}

		var target *models.Session
		for _, id := range e.sortedSessionIDs() {
			sess := e.sessionByID(id)
			if !st.Available(sess.TimeBlock) {
				continue
			}
			if len(e.assigned[sess.ID]) >= MaxHeadcount {
				continue
			}
			if e.loads.placedInBlock(st.ID, sess.TimeBlock) {
				continue
			}
			if target == nil || len(e.assigned[sess.ID]) < len(e.assigned[target.ID]) {
				target = sess
			}
		}
		if target != nil {
			e.placeStaff(st, target)
		}
		// No target: left unplaced, picked up by the result builder.
	}
}
