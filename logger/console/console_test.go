package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleLogger(ConsoleLoggerParams{Writer: &buf})

	c.Debug("hidden")
	c.Info("shown", "asset", "abc")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug output at info level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "asset=abc") {
		t.Fatalf("missing info line: %q", buf.String())
	}

	c.SetDebug(true)
	c.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("debug line missing after SetDebug: %q", buf.String())
	}
}
