package emotion

import (
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/logger"
)

// Tracker dampens state transitions so a metric oscillating around a
// boundary does not flicker the display. A candidate state must repeat
// for dwell consecutive cycles before it commits. The one exception is
// escalation to Overloaded, which commits on the cycle it appears:
// missing a critical state is worse than a moment of flicker.
//
// Owned by the poll path; not safe for concurrent use.
type Tracker struct {
	committed  State
	candidate  State
	streak     int
	dwell      int
	lastCommit time.Time
	log        logger.Logger
}

func NewTracker(dwell int, log logger.Logger) *Tracker {
	return &Tracker{
		committed: Calm,
		candidate: Calm,
		dwell:     dwell,
		log:       log,
	}
}

// Observe feeds one raw classification into the tracker and returns the
// committed state along with whether this cycle changed it.
func (t *Tracker) Observe(raw State, now time.Time) (State, bool) {
	if raw == t.committed {
		t.streak = 0
		t.candidate = t.committed

		return t.committed, false
	}

	if raw == Overloaded && raw > t.committed {
		t.commit(raw, now)
		return t.committed, true
	}

	if raw == t.candidate {
		t.streak++
	} else {
		t.candidate = raw
		t.streak = 1
	}

	if t.streak >= t.dwell {
		t.commit(t.candidate, now)
		return t.committed, true
	}

	return t.committed, false
}

func (t *Tracker) commit(next State, now time.Time) {
	held := time.Duration(0)
	if !t.lastCommit.IsZero() {
		held = now.Sub(t.lastCommit)
	}

	t.log.Info().
		Str("from", t.committed.String()).
		Str("to", next.String()).
		Dur("held", held).
		Msg("Mood changed")

	t.committed = next
	t.candidate = next
	t.streak = 0
	t.lastCommit = now
}

// Committed returns the current committed state
func (t *Tracker) Committed() State {
	return t.committed
}

// LastCommit returns when the committed state last changed
func (t *Tracker) LastCommit() time.Time {
	return t.lastCommit
}

// SetDwell adjusts the dwell requirement. Takes effect from the next
// observation; an in-progress streak is kept.
func (t *Tracker) SetDwell(dwell int) {
	t.dwell = dwell
}
