package emotion_test

import (
	"testing"

	"codeberg.org/tuxtray/tuxtray/internal/emotion"
	"codeberg.org/tuxtray/tuxtray/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThresholdsValid(t *testing.T) {
	require.NoError(t, emotion.DefaultThresholds().Validate())
}

func TestValidateRejectsBrokenOrdering(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*emotion.Thresholds)
	}{
		{"cpu max above busy", func(th *emotion.Thresholds) { th.CPU.Max = 65 }},
		{"ram busy above high", func(th *emotion.Thresholds) { th.RAM.Busy = 80 }},
		{"network high above critical", func(th *emotion.Thresholds) { th.Net.High = 3000 }},
		{"negative ceiling", func(th *emotion.Thresholds) { th.CPU.Max = -1 }},
		{"resource count too low", func(th *emotion.Thresholds) { th.MultipleResources = 1 }},
		{"resource count above metric count", func(th *emotion.Thresholds) { th.MultipleResources = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := emotion.DefaultThresholds()
			tt.mutate(&th)
			err := th.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, emotion.ErrInvalidThresholds),
				"Expected threshold validation code, got %v", err)
		})
	}
}

func TestValidateAllowsEqualBoundaries(t *testing.T) {
	th := emotion.DefaultThresholds()
	th.CPU.Busy = th.CPU.High

	assert.NoError(t, th.Validate(), "Equal adjacent boundaries are a legal degenerate config")
}
