package logging

import (
	"fmt"
	"io"
	"os"
)

// EnvDebug is the environment variable that turns on debug output.
const EnvDebug = "TL_DEBUG"

// output receives debug messages. Stderr keeps them out of rendered list output.
var output io.Writer = os.Stderr

// verbose is set from the application configuration
var verbose bool

// SetVerbose turns debug output on or off regardless of TL_DEBUG.
func SetVerbose(enabled bool) {
	verbose = enabled
}

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG environment variable or SetVerbose
func DebugEnabled() bool {
	return verbose || os.Getenv(EnvDebug) != ""
}

// SetOutput redirects debug output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, args...)
	}
}
