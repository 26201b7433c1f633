package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
)

// LogLevel represents the severity level of a log message
type LogLevel int

// Log levels
const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// Module name attached to every record.
const moduleName = "raytracer"

var (
	colorFormat = logging.MustStringFormatter(
		`%{color}%{time:2006/01/02 15:04:05} [%{level:.5s}] %{shortfile}:%{color:reset} %{message}`,
	)
	plainFormat = logging.MustStringFormatter(
		`%{time:2006/01/02 15:04:05} [%{level:.5s}] %{shortfile}: %{message}`,
	)
)

// Logger handles logging functionalities
type Logger struct {
	log       *logging.Logger
	out       io.Writer
	file      *os.File
	level     LogLevel
	useColors bool
}

// ParseLevel converts a level name to a LogLevel. Unknown names map to INFO.
func ParseLevel(levelStr string) LogLevel {
	lvl, _ := LookupLevel(levelStr)
	return lvl
}

// LookupLevel is ParseLevel that also reports whether the name was known.
func LookupLevel(levelStr string) (LogLevel, bool) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DEBUG, true
	case "info":
		return INFO, true
	case "warn", "warning":
		return WARN, true
	case "error":
		return ERROR, true
	case "fatal":
		return FATAL, true
	default:
		return INFO, false
	}
}

func (lvl LogLevel) backendLevel() logging.Level {
	switch lvl {
	case DEBUG:
		return logging.DEBUG
	case WARN:
		return logging.WARNING
	case ERROR:
		return logging.ERROR
	case FATAL:
		return logging.CRITICAL
	default:
		return logging.INFO
	}
}

// NewLogger creates a new logger with the specified log level
func NewLogger(levelStr string) *Logger {
	l := &Logger{
		log:       logging.MustGetLogger(moduleName),
		out:       os.Stdout,
		level:     ParseLevel(levelStr),
		useColors: true,
	}

	// Report the caller of our wrappers, not the wrappers themselves.
	l.log.ExtraCalldepth = 1

	// Disable colors if not in a terminal
	if fileInfo, err := os.Stdout.Stat(); err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		l.useColors = false
	}

	l.rebuild()
	return l
}

// NewMultiLogger creates a logger that writes to both console and file
func NewMultiLogger(levelStr, filePath string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("logger: create log directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("logger: open log file: %w", err)
	}

	l := NewLogger(levelStr)
	l.file = file
	l.useColors = false
	l.SetOutput(io.MultiWriter(os.Stdout, file))

	return l, nil
}

// rebuild installs a fresh backend for the current sink, format and level.
func (l *Logger) rebuild() {
	format := plainFormat
	if l.useColors {
		format = colorFormat
	}

	backend := logging.NewBackendFormatter(logging.NewLogBackend(l.out, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(l.level.backendLevel(), "")
	l.log.SetBackend(leveled)
}

// Debug logs a debug message
func (l *Logger) Debug(v ...interface{}) {
	l.log.Debug(v...)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log.Debugf(format, v...)
}

// Info logs an info message
func (l *Logger) Info(v ...interface{}) {
	l.log.Info(v...)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(v ...interface{}) {
	l.log.Warning(v...)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log.Warningf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(v ...interface{}) {
	l.log.Error(v...)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(v ...interface{}) {
	l.log.Critical(v...)
	l.Close()
	os.Exit(1)
}

// Fatalf logs a formatted fatal message and exits the program
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.log.Criticalf(format, v...)
	l.Close()
	os.Exit(1)
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	return l.level
}

// SetLevel sets the log level
func (l *Logger) SetLevel(levelStr string) {
	l.level = ParseLevel(levelStr)
	l.rebuild()
}

// SetOutput sets the output writer for the logger
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
	l.rebuild()
}

// EnableColors enables or disables colored output
func (l *Logger) EnableColors(enable bool) {
	l.useColors = enable
	l.rebuild()
}

// Close closes the logger's file if it exists
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}
