package colors

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
)

// Labels that prefix CLI messages.
var (
	WarningLabel = Yellow("Warning:")
	DoneLabel    = Green("Done:")
)

// Status colours an HTTP status code for request logs.
func Status(code int) string {
	if code >= 400 {
		return Red(code)
	}
	return Green(code)
}

// Errorf formats an error message in red.
func Errorf(format string, a ...interface{}) error {
	return fmt.Errorf(Red(format), a...)
}
