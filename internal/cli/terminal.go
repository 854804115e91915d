package cli

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// colorEnabled reports whether output written to w should carry colors.
// NO_COLOR and TERM=dumb are honored through color.NoColor.
func colorEnabled(w io.Writer, disabled bool) bool {
	if disabled || color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
