package report

import "github.com/fatih/color"

// Style colors the printed output.
type Style struct {
	Title *color.Color
	Label *color.Color
	Value *color.Color
	Error *color.Color
}

// NewStyle forces colors on or off; callers decide whether the output is a
// terminal.
func NewStyle(colored bool) Style {
	s := Style{
		Title: color.New(color.FgMagenta, color.Bold),
		Label: color.New(color.FgYellow),
		Value: color.New(color.FgGreen),
		Error: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{s.Title, s.Label, s.Value, s.Error} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}
