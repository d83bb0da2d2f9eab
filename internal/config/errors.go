package config

import "codeberg.org/tuxtray/tuxtray/internal/errors"

const (
	ErrInvalidConfig   = errors.ErrInvalidConfig
	ErrReadConfig      = errors.ErrReadConfig
	ErrBindFlags       = errors.ErrBindFlags
	ErrInvalidInterval = errors.ErrInvalidInterval
	ErrInvalidLogLevel = errors.ErrInvalidLogLevel
)
