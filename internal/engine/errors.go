package engine

import "codeberg.org/tuxtray/tuxtray/internal/errors"

const (
	ErrMissingDependency = errors.ErrorCode("engine_missing_dependency")
	ErrInvalidInterval   = errors.ErrInvalidInterval
	ErrRenderFailed      = errors.ErrRenderFailed
)
