package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		" INFO ":  log.InfoLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"warn":    log.WarnLevel,
		"verbose": log.WarnLevel,
		"":        log.WarnLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriterUsesPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "search")
	l.SetLevel(log.InfoLevel)
	l.Info("ready")

	if out := buf.String(); !strings.Contains(out, "search") || !strings.Contains(out, "ready") {
		t.Errorf("log output = %q", out)
	}
}
