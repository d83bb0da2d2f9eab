package animation

import (
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"codeberg.org/tuxtray/tuxtray/internal/logger"
)

// Scheduler plays the frame sequence for the committed mood state on
// its own clock, decoupled from the poll cadence that selects the
// state. Higher stress speeds playback up via the multiplier.
//
// Owned by the animation path; not safe for concurrent use.
type Scheduler struct {
	set            *Set
	state          emotion.State
	source         emotion.State
	seq            []Frame
	index          int
	frameStart     time.Time
	multiplier     float64
	maxRate        float64
	loggedFallback map[emotion.State]bool
	log            logger.Logger
}

// NewScheduler starts on the Calm sequence with a neutral multiplier.
// maxRate is the playback multiplier at stress 100; values below 1 are
// treated as 1 (no speed-up).
func NewScheduler(set *Set, maxRate float64, log logger.Logger) *Scheduler {
	if maxRate < 1 {
		maxRate = 1
	}

	s := &Scheduler{
		set:            set,
		multiplier:     1,
		maxRate:        maxRate,
		loggedFallback: make(map[emotion.State]bool),
		log:            log,
	}
	s.resolve(emotion.Calm)

	return s
}

// Transition switches playback to a new committed state: the sequence
// is re-resolved and playback restarts at frame zero.
func (s *Scheduler) Transition(state emotion.State, now time.Time) {
	s.resolve(state)
	s.index = 0
	s.frameStart = now
}

func (s *Scheduler) resolve(state emotion.State) {
	frames, source, degraded := s.set.Resolve(state)
	s.state = state
	s.source = source
	s.seq = frames

	if degraded && !s.loggedFallback[state] {
		s.loggedFallback[state] = true
		if source != state {
			s.log.Warn().
				Str("state", state.String()).
				Str("using", source.String()).
				Msg("No frames for state, falling back")
		} else {
			s.log.Warn().
				Str("state", state.String()).
				Msg("No frames loaded, using placeholder")
		}
	}
}

// SetStress recomputes the playback multiplier: linear from 1.0 at
// stress 0 to maxRate at stress 100.
func (s *Scheduler) SetStress(stress float64) {
	if stress < 0 {
		stress = 0
	}
	if stress > 100 {
		stress = 100
	}

	s.multiplier = 1 + (s.maxRate-1)*stress/100
}

// Tick returns the frame to display at the given instant, advancing
// (and wrapping) the frame index whenever the clock has crossed a
// frame boundary. Calling it again with the same instant returns the
// same frame without mutating playback state.
func (s *Scheduler) Tick(now time.Time) Frame {
	if s.frameStart.IsZero() {
		s.frameStart = now
	}

	target := s.frameTarget()
	if target > 0 {
		if elapsed := now.Sub(s.frameStart); elapsed >= target {
			steps := int(elapsed / target)
			s.index = (s.index + steps) % len(s.seq)
			s.frameStart = s.frameStart.Add(time.Duration(steps) * target)
		}
	}

	return s.seq[s.index]
}

// frameTarget is the effective display duration of the current frame
// after the stress multiplier.
func (s *Scheduler) frameTarget() time.Duration {
	d := s.seq[s.index].Duration
	if s.multiplier <= 1 {
		return d
	}

	return time.Duration(float64(d) / s.multiplier)
}

// State returns the committed state the scheduler was last given
func (s *Scheduler) State() emotion.State {
	return s.state
}

// Source returns the state whose frames are actually playing; differs
// from State when the fallback chain engaged.
func (s *Scheduler) Source() emotion.State {
	return s.source
}

// Multiplier returns the current playback multiplier
func (s *Scheduler) Multiplier() float64 {
	return s.multiplier
}
