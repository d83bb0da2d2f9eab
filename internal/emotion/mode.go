package emotion

import "codeberg.org/tuxtray/tuxtray/internal/errors"

// Mode selects which metrics drive classification. ModeEmotion uses all
// three; the single-metric modes restrict both the state rules and the
// stress score to one resource.
type Mode string

const (
	ModeEmotion Mode = "emotion"
	ModeCPU     Mode = "cpu"
	ModeRAM     Mode = "ram"
	ModeNetwork Mode = "network"
)

// ParseMode validates a mode name from configuration or a UI action.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeEmotion, ModeCPU, ModeRAM, ModeNetwork:
		return Mode(name), nil
	default:
		errFactory := errors.New()
		return "", errFactory.WithData(ErrUnknownMode, struct {
			Mode string
		}{
			Mode: name,
		})
	}
}

func (m Mode) String() string {
	return string(m)
}
