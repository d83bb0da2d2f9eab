package engine

import (
	"fmt"
	"io"

	"codeberg.org/tuxtray/tuxtray/internal/animation"
	"codeberg.org/tuxtray/tuxtray/internal/errors"
)

// ConsoleRenderer prints mood changes to a writer. It stands in for a
// tray surface when running in monitor mode. Frame churn within a mood
// is dropped; only tooltip changes produce output.
type ConsoleRenderer struct {
	out  io.Writer
	last string
}

func NewConsoleRenderer(out io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{out: out}
}

func (r *ConsoleRenderer) Render(frame animation.Frame, tooltip string) error {
	if tooltip == r.last {
		return nil
	}
	r.last = tooltip

	if _, err := fmt.Fprintf(r.out, "%s [%s]\n", tooltip, frame.Name); err != nil {
		return errors.New().Wrap(ErrRenderFailed, err)
	}

	return nil
}

type nopRenderer struct{}

// NewNopRenderer returns a renderer that discards every frame. Used when
// no display surface is attached.
func NewNopRenderer() Renderer {
	return nopRenderer{}
}

func (nopRenderer) Render(animation.Frame, string) error {
	return nil
}
