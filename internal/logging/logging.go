package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Log levels
const (
	None    = 0
	Error   = 1
	Warning = 2
	Info    = 3
	Debug   = 4
)

// ParseLevel converts a string level to an integer level.
func ParseLevel(levelStr string) (int, error) {
	switch strings.ToLower(levelStr) {
	case "none":
		return None, nil
	case "error":
		return Error, nil
	case "warn", "warning":
		return Warning, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	default:
		return Info, fmt.Errorf("invalid log level string: '%s'", levelStr)
	}
}

// Logger receives diagnostics from every pipeline stage. A Logger failure
// must never affect the outcome of the run.
type Logger interface {
	Errorf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

// FileLogger writes leveled lines to stderr and appends error-severity
// lines to log_YYYY-MM-DD.log inside its directory. The file is opened
// lazily on the first error so clean runs create nothing.
type FileLogger struct {
	dir   string
	level int

	file       *os.File
	openFailed bool

	// now is injectable for tests.
	now func() time.Time
}

// NewFileLogger creates a logger writing error entries under dir at the
// given console level.
func NewFileLogger(dir string, level int) *FileLogger {
	return &FileLogger{dir: dir, level: level, now: time.Now}
}

// Errorf logs to stderr and appends a line to the daily log file.
// File-side failures are swallowed: the run outcome never depends on
// whether the log line landed.
func (l *FileLogger) Errorf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.console(Error, "[ERROR] "+msg)
	l.appendLine("ERROR", msg)
}

// Warnf logs to stderr only.
func (l *FileLogger) Warnf(format string, v ...interface{}) {
	l.console(Warning, "[WARN]  "+fmt.Sprintf(format, v...))
}

// Infof logs to stderr only.
func (l *FileLogger) Infof(format string, v ...interface{}) {
	l.console(Info, "[INFO]  "+fmt.Sprintf(format, v...))
}

// Debugf logs to stderr only.
func (l *FileLogger) Debugf(format string, v ...interface{}) {
	l.console(Debug, "[DEBUG] "+fmt.Sprintf(format, v...))
}

// Close closes the daily log file if one was opened.
func (l *FileLogger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *FileLogger) console(level int, line string) {
	if level <= l.level {
		fmt.Fprintln(os.Stderr, line)
	}
}

func (l *FileLogger) appendLine(level, msg string) {
	if l.openFailed {
		return
	}
	if l.file == nil {
		if err := l.open(); err != nil {
			// Remember the failure so we don't retry on every entry.
			l.openFailed = true
			fmt.Fprintf(os.Stderr, "[WARN]  could not open log file in '%s': %v\n", l.dir, err)
			return
		}
	}
	line := fmt.Sprintf("[%s] %s: %s\n", l.now().Format(time.RFC3339), level, msg)
	if _, err := l.file.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN]  log write failed: %v\n", err)
	}
}

func (l *FileLogger) open() error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("log_%s.log", l.now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(l.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	l.file = f
	return nil
}

// Nop discards everything. Useful as the injected logger in tests.
type Nop struct{}

func (Nop) Errorf(string, ...interface{}) {}
func (Nop) Warnf(string, ...interface{})  {}
func (Nop) Infof(string, ...interface{})  {}
func (Nop) Debugf(string, ...interface{}) {}
