package emotion

import (
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/logger"
)

// Reading is one raw acquisition pass. A nil field marks a counter that
// could not be read this cycle; everything else is a measured value.
type Reading struct {
	CPU  *float64 // percent of total capacity [0,100]
	RAM  *float64 // percent of total [0,100]
	Net  *float64 // KB/s summed across interfaces
	Time time.Time
}

// Sample is a fully populated reading, one per poll cycle. Degraded
// marks samples where at least one field was substituted.
type Sample struct {
	CPU      float64
	RAM      float64
	Net      float64
	Time     time.Time
	Degraded bool
}

// Normalizer fills unavailable reading fields with the last known good
// value, or zero when none exists yet. Owned by the poll path; not safe
// for concurrent use.
type Normalizer struct {
	lastCPU float64
	lastRAM float64
	lastNet float64
	log     logger.Logger
}

func NewNormalizer(log logger.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Normalize converts a reading into a sample, substituting missing
// fields and flagging the sample degraded when it does.
func (n *Normalizer) Normalize(r Reading) Sample {
	s := Sample{Time: r.Time}

	s.CPU, s.Degraded = n.field(r.CPU, &n.lastCPU, "cpu", s.Degraded)
	s.RAM, s.Degraded = n.field(r.RAM, &n.lastRAM, "ram", s.Degraded)
	s.Net, s.Degraded = n.field(r.Net, &n.lastNet, "network", s.Degraded)

	return s
}

func (n *Normalizer) field(value *float64, last *float64, name string, degraded bool) (float64, bool) {
	if value == nil {
		n.log.Debug().
			Str("metric", name).
			Float64("substituted", *last).
			Msg("Counter unavailable, using last known value")

		return *last, true
	}

	*last = *value

	return *value, degraded
}
