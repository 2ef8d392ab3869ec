// Package logging writes the deskhub audit trail to append-only files
// under .deskhub/logs: one global log (deskhub.log) plus one file per
// task (task-ID.log) so a single task's history can be read in
// isolation.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deskhub/deskhub/internal/domain"
)

var _ domain.Logger = (*Logger)(nil)

const globalLogName = "deskhub.log"

// Logger appends leveled entries to lazily-opened log files.
// The zero directory disables it entirely.
type Logger struct {
	dir   string
	level slog.Level

	mu    sync.Mutex
	files map[string]*os.File // open files keyed by filename
}

// New creates a Logger rooted at the deskhub directory. An empty
// directory yields a no-op logger.
func New(deskhubDir string, level slog.Level) *Logger {
	return &Logger{
		dir:   deskhubDir,
		level: level,
		files: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
// Unknown strings fall back to info.
func ParseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(taskID, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}

// log renders one entry and appends it to the global log and, when a
// task id is given, to that task's log as well. File problems are
// swallowed; logging must never take the operation down with it.
func (l *Logger) log(level slog.Level, taskID, category, msg string) {
	if l.dir == "" || level < l.level {
		return
	}

	scope := "global"
	if taskID != "" {
		scope = "task-" + taskID
	}
	entry := fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05"), level, scope, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.append(globalLogName, entry)
	if taskID != "" {
		l.append("task-"+taskID+".log", entry)
	}
}

// append writes the entry to the named log file, opening it on first
// use. Callers must hold l.mu.
func (l *Logger) append(name, entry string) {
	f, ok := l.files[name]
	if !ok {
		logsDir := filepath.Join(l.dir, "logs")
		if err := os.MkdirAll(logsDir, 0o750); err != nil {
			return
		}
		var err error
		f, err = os.OpenFile(filepath.Join(logsDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
		if err != nil {
			return
		}
		l.files[name] = f
	}
	_, _ = f.WriteString(entry)
}

// Close closes every open log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	for name, f := range l.files {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.files, name)
	}
	return lastErr
}
