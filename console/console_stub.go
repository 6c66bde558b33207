//go:build !(js && wasm)

package console

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Outside the browser, messages go to a standard logger on stderr so that
// runtime warnings from generated views stay visible in tests and tools.
var logger = log.New(os.Stderr, "", log.LstdFlags)

// SetOutput redirects console messages. It is not available under js/wasm.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Log writes an informational message.
func Log(args ...any) {
	logger.Print(fmt.Sprintln(args...))
}

// Warn writes a warning.
func Warn(args ...any) {
	logger.Print("WARN " + fmt.Sprintln(args...))
}

// Error writes an error.
func Error(args ...any) {
	logger.Print("ERROR " + fmt.Sprintln(args...))
}
