package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Setup configures the global logger from the debug flag and the configured level.
// In IPC mode stdout carries the protocol, so logs are moved to stderr.
func Setup(debug bool, level string, ipc bool) {
	if ipc {
		log.SetOutput(os.Stderr)
	}
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(ParseLevel(level))
}

// ParseLevel maps a config string to a level, defaulting to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// ForIPC creates a prefixed logger on stderr for use while stdout carries msgpack.
func ForIPC(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// ForFormat creates a logger for the HTTP server, using JSON lines when asked.
func ForFormat(prefix, format string) *log.Logger {
	formatter := log.TextFormatter
	switch strings.ToLower(format) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}
	return NewWithConfig(prefix, log.GetLevel(), false, true, formatter)
}
