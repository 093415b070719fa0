package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of LogLevel
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a LogLevel, defaulting to INFO
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(name) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// Entry represents a structured log entry
type Entry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Component string         `json:"component,omitempty"`
	RunID     string         `json:"run_id,omitempty"`
	Error     string         `json:"error,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Logger provides structured logging for the preprocessing pipeline
type Logger struct {
	level  LogLevel
	format string // "json" or "text"
	output io.Writer
	mu     sync.RWMutex
	exit   func(int)
}

// New creates a new logger instance writing text entries to stderr
func New() *Logger {
	return &Logger{
		level:  INFO,
		format: "text",
		output: os.Stderr,
		exit:   os.Exit,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetFormat sets the logging format ("json" or "text")
func (l *Logger) SetFormat(format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = strings.ToLower(format)
}

// SetOutput sets the logging output destination
func (l *Logger) SetOutput(output io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = output
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) {
	l.log(DEBUG, msg, fields...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) {
	l.log(INFO, msg, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log(WARN, msg, fields...)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	l.log(ERROR, msg, fields...)
}

// Fatal logs a fatal message and exits with status 1
func (l *Logger) Fatal(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	l.log(FATAL, msg, fields...)
	l.exit(1)
}

func (l *Logger) log(level LogLevel, msg string, fields ...Field) {
	l.mu.RLock()
	if level < l.level {
		l.mu.RUnlock()
		return
	}
	format := l.format
	l.mu.RUnlock()

	entry := &Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   msg,
		Fields:    make(map[string]any),
	}
	for _, field := range fields {
		field.Apply(entry)
	}

	var line string
	if format == "json" {
		if jsonBytes, err := json.Marshal(entry); err == nil {
			line = string(jsonBytes)
		} else {
			line = fmt.Sprintf("failed to marshal log entry: %v", err)
		}
	} else {
		line = formatText(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.output, line)
}

func formatText(entry *Entry) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s [%s] %s", entry.Timestamp, entry.Level, entry.Message))

	if entry.Component != "" {
		builder.WriteString(fmt.Sprintf(" component=%s", entry.Component))
	}
	if entry.RunID != "" {
		builder.WriteString(fmt.Sprintf(" run_id=%s", entry.RunID))
	}
	if entry.Error != "" {
		builder.WriteString(fmt.Sprintf(" error=%s", entry.Error))
	}
	for key, value := range entry.Fields {
		builder.WriteString(fmt.Sprintf(" %s=%v", key, value))
	}

	return builder.String()
}

// Field represents a log field
type Field interface {
	Apply(entry *Entry)
}

type kvField struct {
	key   string
	value any
}

func (f kvField) Apply(entry *Entry) {
	entry.Fields[f.key] = f.value
}

type errField struct {
	err error
}

func (f errField) Apply(entry *Entry) {
	entry.Error = f.err.Error()
}

type componentField struct {
	component string
}

func (f componentField) Apply(entry *Entry) {
	entry.Component = f.component
}

type runIDField struct {
	runID string
}

func (f runIDField) Apply(entry *Entry) {
	entry.RunID = f.runID
}

// String creates a string field
func String(key, value string) Field {
	return kvField{key: key, value: value}
}

// Int creates an integer field
func Int(key string, value int) Field {
	return kvField{key: key, value: value}
}

// Float creates a float field
func Float(key string, value float64) Field {
	return kvField{key: key, value: value}
}

// Err creates an error field
func Err(err error) Field {
	return errField{err: err}
}

// Component creates a component field
func Component(component string) Field {
	return componentField{component: component}
}

// RunID creates a run ID field
func RunID(runID string) Field {
	return runIDField{runID: runID}
}
