package animation_test

import (
	"testing"
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/animation"
	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"codeberg.org/tuxtray/tuxtray/internal/logger"
	"github.com/stretchr/testify/assert"
)

func frames(state emotion.State, count int, d time.Duration) []animation.Frame {
	out := make([]animation.Frame, count)
	for i := range out {
		out[i] = animation.Frame{
			Name:     state.String() + "/" + string(rune('a'+i)),
			Image:    []byte{byte(i)},
			Duration: d,
		}
	}

	return out
}

func testSet() *animation.Set {
	return animation.NewSet(map[emotion.State][]animation.Frame{
		emotion.Calm: frames(emotion.Calm, 3, 100*time.Millisecond),
		emotion.Busy: frames(emotion.Busy, 2, 100*time.Millisecond),
	})
}

func newScheduler(set *animation.Set) *animation.Scheduler {
	return animation.NewScheduler(set, 2.5, logger.NewLogger())
}

func TestSchedulerAdvancesOnFrameBoundary(t *testing.T) {
	s := newScheduler(testSet())
	t0 := time.Now()

	assert.Equal(t, "calm/a", s.Tick(t0).Name)
	assert.Equal(t, "calm/a", s.Tick(t0.Add(50*time.Millisecond)).Name,
		"No advance before the frame duration elapses")
	assert.Equal(t, "calm/b", s.Tick(t0.Add(100*time.Millisecond)).Name)
	assert.Equal(t, "calm/c", s.Tick(t0.Add(200*time.Millisecond)).Name)
	assert.Equal(t, "calm/a", s.Tick(t0.Add(300*time.Millisecond)).Name,
		"Index wraps past the last frame")
}

func TestSchedulerTickIsIdempotent(t *testing.T) {
	s := newScheduler(testSet())
	t0 := time.Now()

	s.Tick(t0)
	now := t0.Add(100 * time.Millisecond)
	first := s.Tick(now)
	second := s.Tick(now)
	assert.Equal(t, first.Name, second.Name, "Same instant must return the same frame")

	third := s.Tick(now.Add(10 * time.Millisecond))
	assert.Equal(t, first.Name, third.Name, "No advance inside the same frame window")
}

func TestSchedulerCatchesUpAfterStall(t *testing.T) {
	s := newScheduler(testSet())
	t0 := time.Now()

	s.Tick(t0)
	// 350ms gap across 100ms frames: three boundaries crossed
	assert.Equal(t, "calm/a", s.Tick(t0.Add(350*time.Millisecond)).Name)
}

func TestSchedulerStressSpeedsPlayback(t *testing.T) {
	s := newScheduler(testSet())
	t0 := time.Now()

	s.SetStress(100)
	assert.InDelta(t, 2.5, s.Multiplier(), 0.001)

	s.Tick(t0)
	assert.Equal(t, "calm/b", s.Tick(t0.Add(40*time.Millisecond)).Name,
		"At multiplier 2.5 a 100ms frame lasts 40ms")
}

func TestSchedulerMultiplierInterpolation(t *testing.T) {
	s := newScheduler(testSet())

	s.SetStress(0)
	assert.InDelta(t, 1.0, s.Multiplier(), 0.001)

	s.SetStress(50)
	assert.InDelta(t, 1.75, s.Multiplier(), 0.001)

	s.SetStress(-10)
	assert.InDelta(t, 1.0, s.Multiplier(), 0.001, "Stress clamps at 0")

	s.SetStress(400)
	assert.InDelta(t, 2.5, s.Multiplier(), 0.001, "Stress clamps at 100")
}

func TestSchedulerTransitionResetsPlayback(t *testing.T) {
	s := newScheduler(testSet())
	t0 := time.Now()

	s.Tick(t0)
	s.Tick(t0.Add(100 * time.Millisecond))

	s.Transition(emotion.Busy, t0.Add(150*time.Millisecond))
	got := s.Tick(t0.Add(150 * time.Millisecond))
	assert.Equal(t, "busy/a", got.Name, "Transition restarts at frame zero")
	assert.Equal(t, emotion.Busy, s.State())
	assert.Equal(t, emotion.Busy, s.Source())
}

func TestSchedulerFallsBackToLowerState(t *testing.T) {
	s := newScheduler(testSet())
	t0 := time.Now()

	s.Transition(emotion.Stressed, t0)
	got := s.Tick(t0)
	assert.Equal(t, "busy/a", got.Name, "Stressed has no frames, Busy is the next below")
	assert.Equal(t, emotion.Stressed, s.State())
	assert.Equal(t, emotion.Busy, s.Source())
}

func TestSchedulerPlaceholderWhenSetEmpty(t *testing.T) {
	s := newScheduler(animation.NewSet(nil))
	t0 := time.Now()

	got := s.Tick(t0)
	assert.Equal(t, "placeholder", got.Name)
	assert.NotEmpty(t, got.Image, "Placeholder ships a real image")

	// Stays static no matter how much time passes
	assert.Equal(t, "placeholder", s.Tick(t0.Add(10*time.Second)).Name)
}
