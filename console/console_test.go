//go:build !(js && wasm)

package console

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestConsole_Prefixes(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	// Act
	Log("mounted", 3)
	Warn("slow")
	Error("failed:", "boom")

	// Assert
	out := buf.String()
	for _, want := range []string{"mounted 3\n", "WARN slow\n", "ERROR failed: boom\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %q", want, out)
		}
	}
}
