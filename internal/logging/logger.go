package logging

// Leveled logging for autoclick

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelVerbose
	LogLevelDebug
)

// ParseLevel maps a level name to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "silent", "off":
		return LogLevelSilent, nil
	case "error":
		return LogLevelError, nil
	case "", "info":
		return LogLevelInfo, nil
	case "verbose":
		return LogLevelVerbose, nil
	case "debug":
		return LogLevelDebug, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger provides leveled logging to the console and an optional file
type Logger struct {
	mu      sync.Mutex
	level   LogLevel
	console bool
	file    *os.File
	fileLog *log.Logger
	stdout  *log.Logger
	stderr  *log.Logger
}

// NewLogger creates a new logger
func NewLogger(level LogLevel, logFile string) (*Logger, error) {
	l := &Logger{
		level:   level,
		console: true,
		stdout:  log.New(os.Stdout, "", 0),
		stderr:  log.New(os.Stderr, "", 0),
	}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = file
		l.fileLog = log.New(file, "", log.LstdFlags)
	}

	return l, nil
}

// NewWriterLogger creates a logger that writes every line to w and never to
// the console. Used by tests and embedders.
func NewWriterLogger(level LogLevel, w io.Writer) *Logger {
	return &Logger{
		level:   level,
		fileLog: log.New(w, "", 0),
		stdout:  log.New(io.Discard, "", 0),
		stderr:  log.New(io.Discard, "", 0),
	}
}

// Nop returns a logger that drops everything.
func Nop() *Logger {
	return NewWriterLogger(LogLevelSilent, io.Discard)
}

// Close closes the logger and flushes all data
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.fileLog = nil
		return err
	}
	return nil
}

// SetConsole enables or disables console output. The TUI disables it while it
// owns the terminal.
func (l *Logger) SetConsole(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = enabled
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.enabled(LogLevelError) {
		l.write(fmt.Sprintf("ERROR: "+format, v...), true)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.enabled(LogLevelInfo) {
		l.write(fmt.Sprintf("INFO: "+format, v...), false)
	}
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	if l.enabled(LogLevelVerbose) {
		l.write(fmt.Sprintf("VERBOSE: "+format, v...), false)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.enabled(LogLevelDebug) {
		l.write(fmt.Sprintf("DEBUG: "+format, v...), false)
	}
}

func (l *Logger) enabled(level LogLevel) bool {
	if l == nil {
		return false
	}
	return l.GetLevel() >= level
}

// write writes a message to the appropriate outputs
func (l *Logger) write(msg string, isError bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLog != nil {
		l.fileLog.Println(msg)
	}

	if !l.console {
		return
	}
	// Errors go to stderr, others to stdout only at verbose or debug
	if isError {
		l.stderr.Println(msg)
	} else if l.level >= LogLevelVerbose {
		l.stdout.Println(msg)
	}
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// LogStartup logs startup information
func (l *Logger) LogStartup(prefsPath, globalHotkey, localHotkey string, debounce time.Duration) {
	l.Info("Starting autoclick")
	l.Verbose("  Prefs: %s", prefsPath)
	l.Verbose("  Global hotkey: %s", globalHotkey)
	l.Verbose("  Local hotkey: %s", localHotkey)
	l.Verbose("  Debounce: %s", debounce)
}

// LogClick logs one synthetic click
func (l *Logger) LogClick(x, y int, count int, err error) {
	if err != nil {
		l.Debug("click at %d,%d skipped: %v", x, y, err)
		return
	}
	l.Debug("click #%d at %d,%d", count, x, y)
}

// LogToggle logs a scheduler state change
func (l *Logger) LogToggle(running bool, profile string, interval time.Duration) {
	if running {
		l.Info("clicking started (profile %q, every %s)", profile, interval)
		return
	}
	l.Info("clicking stopped")
}

// LogShutdown logs hotkey trigger totals for the session
func (l *Logger) LogShutdown(fired, suppressed int) {
	l.Info("Exiting autoclick")
	l.Verbose("  Hotkey toggles: %d (suppressed duplicates: %d)", fired, suppressed)
}
