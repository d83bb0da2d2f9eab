package emotion

// metric pairs one measured value with its boundary set.
type metric struct {
	value  float64
	limits Limits
}

// Classifier maps a sample onto a state and a stress score. It is an
// immutable value: derive a new one via WithMode or WithThresholds
// instead of mutating in place.
type Classifier struct {
	thresholds Thresholds
	mode       Mode
}

func NewClassifier(t Thresholds, mode Mode) Classifier {
	return Classifier{thresholds: t, mode: mode}
}

// WithMode returns a classifier with the same thresholds and a new mode
func (c Classifier) WithMode(m Mode) Classifier {
	c.mode = m
	return c
}

// WithThresholds returns a classifier with the same mode and a new
// boundary set. The set must already be validated.
func (c Classifier) WithThresholds(t Thresholds) Classifier {
	c.thresholds = t
	return c
}

func (c Classifier) Mode() Mode {
	return c.mode
}

// Classify is total for any sample against a validated threshold set:
// exactly one state, stress in [0,100]. Rules are evaluated top-down by
// severity so the most severe match wins regardless of which metric
// triggered it.
func (c Classifier) Classify(s Sample) (State, float64) {
	metrics := c.metrics(s)

	stress := 0.0
	for _, m := range metrics {
		if r := stressRatio(m.value, m.limits); r > stress {
			stress = r
		}
	}
	stress *= 100

	// A critical ceiling on any single metric escalates without delay.
	for _, m := range metrics {
		if m.value >= m.limits.Critical {
			return Overloaded, stress
		}
	}

	high := 0
	for _, m := range metrics {
		if m.value >= m.limits.High {
			high++
		}
	}
	if high >= c.thresholds.MultipleResources {
		return Stressed, stress
	}

	for _, m := range metrics {
		if m.value >= m.limits.Busy {
			return Busy, stress
		}
	}

	for _, m := range metrics {
		if m.value > m.limits.Max {
			return Active, stress
		}
	}

	return Calm, stress
}

func (c Classifier) metrics(s Sample) []metric {
	switch c.mode {
	case ModeCPU:
		return []metric{{s.CPU, c.thresholds.CPU}}
	case ModeRAM:
		return []metric{{s.RAM, c.thresholds.RAM}}
	case ModeNetwork:
		return []metric{{s.Net, c.thresholds.Net}}
	default:
		return []metric{
			{s.CPU, c.thresholds.CPU},
			{s.RAM, c.thresholds.RAM},
			{s.Net, c.thresholds.Net},
		}
	}
}

// stressRatio normalizes a value into [0,1] across the span between the
// calm ceiling and the critical ceiling.
func stressRatio(value float64, l Limits) float64 {
	if value <= l.Max {
		return 0
	}

	span := l.Critical - l.Max
	if span <= 0 {
		return 1
	}

	return clamp((value-l.Max)/span, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
