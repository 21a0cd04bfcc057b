package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          "gobook",
	})
	return &Logger{Logger: l}
}

// ParseLevel maps a flag value such as "debug" or "warn" to a level.
func ParseLevel(s string) (log.Level, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConfigLoaded logs which configuration a project was opened with
func (l *Logger) ConfigLoaded(path, src, dest string) {
	if path == "" {
		path = "(defaults)"
	}
	l.Debug("config loaded",
		"config", path,
		"src", src,
		"dest", dest)
}

// SummaryParsed logs a successfully parsed outline
func (l *Logger) SummaryParsed(path string, entries int) {
	l.Debug("summary parsed",
		"path", path,
		"entries", entries)
}

// FileCreated logs a scaffolded file or directory
func (l *Logger) FileCreated(path string) {
	l.Info("created",
		"path", path)
}

// ChapterRendered logs a rendered chapter page
func (l *Logger) ChapterRendered(section, source, output string) {
	l.Debug("chapter rendered",
		"section", section,
		"source", source,
		"output", output)
}

// ChapterSkipped logs an entry that had no backing file
func (l *Logger) ChapterSkipped(name, reason string) {
	l.Debug("chapter skipped",
		"name", name,
		"reason", reason)
}

// BuildCompleted logs the end of a build
func (l *Logger) BuildCompleted(renderer string, pages int, duration time.Duration) {
	l.Info("build completed",
		"renderer", renderer,
		"pages", pages,
		"duration", duration.Round(time.Millisecond))
}

// SourceChanged logs a change picked up by the serve watcher
func (l *Logger) SourceChanged(dir string) {
	l.Info("source changed, rebuilding",
		"dir", dir)
}

// RebuildFailed logs a rebuild that failed while serving
func (l *Logger) RebuildFailed(err error) {
	l.Error("rebuild failed",
		"error", err)
}
