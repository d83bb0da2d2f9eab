package emotion_test

import (
	"testing"
	"time"

	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"github.com/stretchr/testify/assert"
)

func sample(cpu, ram, net float64) emotion.Sample {
	return emotion.Sample{CPU: cpu, RAM: ram, Net: net, Time: time.Now()}
}

func TestClassifyScenarios(t *testing.T) {
	c := emotion.NewClassifier(emotion.DefaultThresholds(), emotion.ModeEmotion)

	tests := []struct {
		name string
		cpu  float64
		ram  float64
		net  float64
		want emotion.State
	}{
		{"all low", 15, 25, 10, emotion.Calm},
		{"moderate activity", 45, 50, 200, emotion.Active},
		{"single resource busy", 75, 30, 50, emotion.Busy},
		{"two resources high", 80, 80, 600, emotion.Stressed},
		{"cpu critical", 95, 40, 100, emotion.Overloaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, stress := c.Classify(sample(tt.cpu, tt.ram, tt.net))
			assert.Equal(t, tt.want, state, "Expected state %s", tt.want)
			assert.GreaterOrEqual(t, stress, 0.0, "Stress below range")
			assert.LessOrEqual(t, stress, 100.0, "Stress above range")
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	c := emotion.NewClassifier(emotion.DefaultThresholds(), emotion.ModeEmotion)

	// Exactly at the calm ceiling stays calm
	state, stress := c.Classify(sample(20, 30, 50))
	assert.Equal(t, emotion.Calm, state, "Expected Calm at exact ceilings")
	assert.Zero(t, stress, "Expected zero stress at calm ceilings")

	// Exactly at the busy threshold escalates
	state, _ = c.Classify(sample(60, 10, 10))
	assert.Equal(t, emotion.Busy, state, "Expected Busy at exact busy threshold")

	// Exactly two metrics at their high thresholds
	state, _ = c.Classify(sample(70, 75, 10))
	assert.Equal(t, emotion.Stressed, state, "Expected Stressed with two high metrics")

	// Exactly at the critical ceiling
	state, _ = c.Classify(sample(90, 10, 10))
	assert.Equal(t, emotion.Overloaded, state, "Expected Overloaded at exact critical ceiling")
}

func TestClassifyStressScore(t *testing.T) {
	c := emotion.NewClassifier(emotion.DefaultThresholds(), emotion.ModeEmotion)

	// CPU halfway between calm ceiling (20) and critical (90)
	_, stress := c.Classify(sample(55, 30, 50))
	assert.InDelta(t, 50.0, stress, 0.001, "Expected stress 50 at cpu midpoint")

	// Saturated metric clamps to 100
	_, stress = c.Classify(sample(100, 0, 0))
	assert.InDelta(t, 100.0, stress, 0.001, "Expected stress clamped to 100")

	// Highest metric ratio wins
	_, stress = c.Classify(sample(55, 75, 0))
	assert.InDelta(t, 75.0, stress, 0.001, "Expected stress from the hotter metric")
}

func TestClassifyMonotonicity(t *testing.T) {
	c := emotion.NewClassifier(emotion.DefaultThresholds(), emotion.ModeEmotion)

	prevState := emotion.Calm
	prevStress := 0.0
	for cpu := 0.0; cpu <= 100; cpu += 2.5 {
		state, stress := c.Classify(sample(cpu, 25, 10))
		assert.GreaterOrEqual(t, int(state), int(prevState),
			"Severity decreased while cpu rose to %.1f", cpu)
		assert.GreaterOrEqual(t, stress, prevStress,
			"Stress decreased while cpu rose to %.1f", cpu)
		prevState = state
		prevStress = stress
	}
}

func TestClassifySingleMetricModes(t *testing.T) {
	thresholds := emotion.DefaultThresholds()
	hotCPU := sample(95, 10, 10)

	state, stress := emotion.NewClassifier(thresholds, emotion.ModeCPU).Classify(hotCPU)
	assert.Equal(t, emotion.Overloaded, state, "CPU mode should see the hot cpu")
	assert.Greater(t, stress, 0.0)

	state, stress = emotion.NewClassifier(thresholds, emotion.ModeRAM).Classify(hotCPU)
	assert.Equal(t, emotion.Calm, state, "RAM mode should ignore the hot cpu")
	assert.Zero(t, stress, "RAM mode stress should ignore the hot cpu")

	state, _ = emotion.NewClassifier(thresholds, emotion.ModeNetwork).Classify(sample(10, 10, 2500))
	assert.Equal(t, emotion.Overloaded, state, "Network mode should see the hot interface")
}

func TestClassifyDegradedSample(t *testing.T) {
	c := emotion.NewClassifier(emotion.DefaultThresholds(), emotion.ModeEmotion)

	s := sample(75, 30, 50)
	s.Degraded = true

	state, _ := c.Classify(s)
	assert.Equal(t, emotion.Busy, state, "Degraded samples classify like any other")
}

func TestClassifierDerivation(t *testing.T) {
	c := emotion.NewClassifier(emotion.DefaultThresholds(), emotion.ModeEmotion)

	focused := c.WithMode(emotion.ModeRAM)
	assert.Equal(t, emotion.ModeRAM, focused.Mode())
	assert.Equal(t, emotion.ModeEmotion, c.Mode(), "Derivation must not mutate the original")

	tight := emotion.DefaultThresholds()
	tight.CPU.Critical = 50
	tight.CPU.High = 45
	tight.CPU.Busy = 40
	state, _ := c.WithThresholds(tight).Classify(sample(55, 10, 10))
	assert.Equal(t, emotion.Overloaded, state, "New thresholds should apply to the derived classifier")
}
