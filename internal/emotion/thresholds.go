package emotion

import (
	"fmt"

	"codeberg.org/tuxtray/tuxtray/internal/errors"
)

// Limits holds the four boundaries for one metric. Max is the calm
// ceiling; Busy, High and Critical gate the escalating states. Ordering
// Max <= Busy <= High <= Critical is required and checked at load time,
// never by the classifier.
type Limits struct {
	Max      float64
	Busy     float64
	High     float64
	Critical float64
}

// Thresholds is the full validated boundary set. MultipleResources is
// how many metrics must sit at or above High before the combination
// counts as Stressed.
type Thresholds struct {
	CPU               Limits
	RAM               Limits
	Net               Limits
	MultipleResources int
}

// DefaultThresholds returns the stock boundary set: CPU and RAM in
// percent, network in KB/s.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPU:               Limits{Max: 20, Busy: 60, High: 70, Critical: 90},
		RAM:               Limits{Max: 30, Busy: 60, High: 75, Critical: 90},
		Net:               Limits{Max: 50, Busy: 600, High: 800, Critical: 2000},
		MultipleResources: 2,
	}
}

// Validate rejects boundary sets that would make classification
// ill-defined. Callers must not hand an unvalidated set to a Classifier.
func (t Thresholds) Validate() error {
	errFactory := errors.New()

	for _, m := range []struct {
		name   string
		limits Limits
	}{
		{"cpu", t.CPU},
		{"ram", t.RAM},
		{"network", t.Net},
	} {
		if m.limits.Max < 0 {
			return errFactory.WithMessage(ErrInvalidThresholds,
				fmt.Sprintf("%s thresholds must be non-negative", m.name))
		}
		if m.limits.Max > m.limits.Busy || m.limits.Busy > m.limits.High || m.limits.High > m.limits.Critical {
			return errFactory.WithData(ErrInvalidThresholds, struct {
				Metric   string
				Max      float64
				Busy     float64
				High     float64
				Critical float64
			}{
				Metric:   m.name,
				Max:      m.limits.Max,
				Busy:     m.limits.Busy,
				High:     m.limits.High,
				Critical: m.limits.Critical,
			})
		}
	}

	if t.MultipleResources < 2 || t.MultipleResources > 3 {
		return errFactory.WithMessage(ErrInvalidThresholds,
			fmt.Sprintf("multiple_resources must be 2 or 3, got %d", t.MultipleResources))
	}

	return nil
}
