// Package logging builds the structured logger shared by the commands.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/raycaster/internal/config"
)

// Prefix is prepended to every log line.
const Prefix = "raycaster"

// New returns a logger writing to w at the level named by LOG_LEVEL.
// Unknown or empty levels fall back to info.
func New(w io.Writer) *log.Logger {
	return NewWithLevel(w, config.GetEnv("LOG_LEVEL", "info"))
}

// NewWithLevel is New with an explicit level name.
func NewWithLevel(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
