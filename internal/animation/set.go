package animation

import (
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/emotion"
)

// Frame is one displayable image with its nominal display duration.
// Image bytes are opaque to this package; the renderer decodes them.
type Frame struct {
	Name     string
	Image    []byte
	Duration time.Duration
}

// Set maps each mood state to its cyclic frame sequence. Immutable
// after load; missing sequences are covered by Resolve's fallback chain
// rather than treated as errors.
type Set struct {
	sequences   map[emotion.State][]Frame
	placeholder Frame
}

// placeholderImage is a 1x1 transparent PNG, shown when no skin
// provides frames for a state or any state below it.
var placeholderImage = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func NewSet(sequences map[emotion.State][]Frame) *Set {
	if sequences == nil {
		sequences = make(map[emotion.State][]Frame)
	}

	return &Set{
		sequences: sequences,
		placeholder: Frame{
			Name:     "placeholder",
			Image:    placeholderImage,
			Duration: time.Second,
		},
	}
}

// Frames returns the loaded sequence for a state without fallback
func (s *Set) Frames(state emotion.State) []Frame {
	return s.sequences[state]
}

// Resolve returns the sequence to play for a state. When the state has
// no frames it walks down the severity order to the nearest state that
// does, and finally to the static placeholder. The returned source is
// the state whose frames were chosen; degraded is true whenever the
// requested sequence was unavailable.
func (s *Set) Resolve(state emotion.State) (frames []Frame, source emotion.State, degraded bool) {
	if seq := s.sequences[state]; len(seq) > 0 {
		return seq, state, false
	}

	for lower := state - 1; lower >= emotion.Calm; lower-- {
		if seq := s.sequences[lower]; len(seq) > 0 {
			return seq, lower, true
		}
	}

	return []Frame{s.placeholder}, state, true
}

// Placeholder returns the built-in static frame
func (s *Set) Placeholder() Frame {
	return s.placeholder
}

// Empty reports whether no state has any frames loaded
func (s *Set) Empty() bool {
	for _, seq := range s.sequences {
		if len(seq) > 0 {
			return false
		}
	}

	return true
}
