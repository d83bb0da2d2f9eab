package animation_test

import (
	"testing"
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/animation"
	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"github.com/stretchr/testify/assert"
)

func TestResolveLoadedState(t *testing.T) {
	set := testSet()

	seq, source, degraded := set.Resolve(emotion.Calm)
	assert.Len(t, seq, 3)
	assert.Equal(t, emotion.Calm, source)
	assert.False(t, degraded)
}

func TestResolveFallbackChain(t *testing.T) {
	set := testSet() // frames for Calm and Busy only

	tests := []struct {
		name       string
		state      emotion.State
		wantSource emotion.State
	}{
		{"active falls to calm", emotion.Active, emotion.Calm},
		{"stressed falls to busy", emotion.Stressed, emotion.Busy},
		{"overloaded falls to busy", emotion.Overloaded, emotion.Busy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, source, degraded := set.Resolve(tt.state)
			assert.NotEmpty(t, seq)
			assert.Equal(t, tt.wantSource, source)
			assert.True(t, degraded)
		})
	}
}

func TestResolvePlaceholderWhenNothingLoaded(t *testing.T) {
	set := animation.NewSet(nil)

	seq, source, degraded := set.Resolve(emotion.Overloaded)
	assert.Len(t, seq, 1)
	assert.Equal(t, "placeholder", seq[0].Name)
	assert.Equal(t, emotion.Overloaded, source)
	assert.True(t, degraded)
	assert.True(t, set.Empty())
}

func TestPlaceholderFrameIsUsable(t *testing.T) {
	set := animation.NewSet(nil)

	p := set.Placeholder()
	assert.NotEmpty(t, p.Image)
	assert.Greater(t, p.Duration, time.Duration(0), "A zero duration would stall the scheduler math")
}
