package emotion

import "codeberg.org/tuxtray/tuxtray/internal/errors"

const (
	// Configuration errors
	ErrInvalidThresholds = errors.ErrorCode("emotion_invalid_thresholds")
	ErrUnknownMode       = errors.ErrorCode("emotion_unknown_mode")

	// Acquisition errors
	ErrMetricsUnavailable = errors.ErrMetricsUnavailable
)
