package printer

import (
	"github.com/fatih/color"
)

type ColorPrinter struct {
	Colored bool

	Success   func(format string, a ...interface{}) string
	Error     func(format string, a ...interface{}) string
	Warning   func(format string, a ...interface{}) string
	Info      func(format string, a ...interface{}) string
	Step      func(format string, a ...interface{}) string
	Debug     func(format string, a ...interface{}) string
	Highlight func(format string, a ...interface{}) string
}

func NewColorPrinter(colored bool) *ColorPrinter {
	sprintf := func(attrs ...color.Attribute) func(string, ...interface{}) string {
		c := color.New(attrs...)
		if !colored {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}

	return &ColorPrinter{
		Colored:   colored,
		Success:   sprintf(color.FgGreen),
		Error:     sprintf(color.FgRed),
		Warning:   sprintf(color.FgYellow),
		Info:      sprintf(color.FgBlue),
		Step:      sprintf(color.FgGreen, color.Bold),
		Debug:     sprintf(color.FgCyan),
		Highlight: sprintf(color.FgCyan),
	}
}
