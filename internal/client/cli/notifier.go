package cli

import (
	"github.com/fatih/color"
	"io"
)

// Console prints alerts in bold yellow.
type Console struct {
	w     io.Writer
	color *color.Color
}

func NewConsole(w io.Writer) *Console {
	return &Console{
		w:     w,
		color: color.New(color.FgYellow, color.Bold),
	}
}

func (c *Console) Alert(msg string) {
	_, _ = c.color.Fprintln(c.w, "! "+msg)
}
