package engine

import (
	"codeberg.org/tuxtray/tuxtray/internal/animation"
	"codeberg.org/tuxtray/tuxtray/internal/emotion"
)

// MetricSource supplies one reading per poll cycle.
type MetricSource interface {
	Sample() emotion.Reading
}

// Renderer receives the current frame and tooltip whenever either changes.
// Implementations are called from the engine loop and must not block.
type Renderer interface {
	Render(frame animation.Frame, tooltip string) error
}
