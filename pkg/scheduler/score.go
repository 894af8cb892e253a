package scheduler

import (
	"strings"

	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

// Additive score weights. Veteran status deliberately contributes nothing:
// experience mix is enforced structurally by the allocator and the balancing
// pass, never by score, so veterans cannot crowd newer staff out of
// high-score sessions.
const (
	firstChoiceWeight  = 6
	secondChoiceWeight = 3
)

// Partner bonus by preference rank (1st, 2nd, 3rd).
var partnerWeights = [3]int{4, 3, 2}

// score computes the compatibility weight of placing st into sess given the
// session's current partial assignment. Pure and deterministic; callers must
// filter out staff unavailable in the session's block before scoring —
// ineligible pairs are never in a candidate pool at all.
func score(st *models.Staff, sess *models.Session, placed []models.Placement) int {
	w := 0
	if len(st.CoursePrefs) > 0 && strings.EqualFold(st.CoursePrefs[0], sess.Course) {
		w += firstChoiceWeight
	}
	if len(st.CoursePrefs) > 1 && strings.EqualFold(st.CoursePrefs[1], sess.Course) {
		w += secondChoiceWeight
	}
	for rank, partner := range st.PartnerPrefs {
		if rank >= len(partnerWeights) {
			break
		}
		if partner == "" {
			continue
		}
		for _, p := range placed {
			if p.StaffID == partner {
				w += partnerWeights[rank]
				break
			}
		}
	}
	return w
}
