package telemetry

import (
	"context"
	"time"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Repository persists snapshots
type Repository interface {
	Record(snapshot *Snapshot) error
	Close() error
}

// Snapshot captures one poll cycle: the committed mood plus the
// readings that produced it
type Snapshot struct {
	Timestamp time.Time
	State     string
	Stress    float64
	StressAvg float64
	CPU       float64
	RAM       float64
	Net       float64
	Degraded  bool
}
