// ABOUTME: Logger construction for the CLI and MCP server.
// ABOUTME: File output rotates through lumberjack so stdout stays free for MCP.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to w at the named level. Unknown level
// names fall back to warn.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "lift",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           ParseLevel(level),
	})
}

// NewFile returns a logger appending to path with size-based rotation,
// and the rotating writer so callers can close it.
func NewFile(path, level string) (*log.Logger, io.Closer) {
	if !strings.HasSuffix(path, ".log") {
		path += ".log"
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	logger := log.NewWithOptions(rotator, log.Options{
		Prefix:          "lift",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           ParseLevel(level),
	})
	return logger, rotator
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a level name to a log level, defaulting to warn.
func ParseLevel(level string) log.Level {
	if level == "" {
		return log.WarnLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}
