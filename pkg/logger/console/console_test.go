package console

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConsoleLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{JSON: true, Prefix: "nodelink", Output: &buf})

	l.Info("layout stabilized", "ticks", 42)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["msg"] != "layout stabilized" {
		t.Fatalf("msg = %v", line["msg"])
	}
	if prefix, _ := line["prefix"].(string); !strings.HasPrefix(prefix, "nodelink") {
		t.Fatalf("prefix = %v", line["prefix"])
	}
	if line["ticks"] != float64(42) {
		t.Fatalf("ticks = %v", line["ticks"])
	}
}

func TestConsoleLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Output: &buf})
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written without Debug: %q", buf.String())
	}

	l = NewConsoleLogger(ConsoleLoggerParams{Debug: true, Output: &buf})
	l.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}
