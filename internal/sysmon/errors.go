package sysmon

import "codeberg.org/tuxtray/tuxtray/internal/errors"

const (
	ErrProcUnavailable = errors.ErrorCode("sysmon_proc_unavailable")
)
