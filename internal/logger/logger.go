// Package logger provides the process-wide structured logger.
//
// Stdout carries the MCP protocol, so logs always go to stderr or to a file.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// EnvLogLevel names the environment variable consulted when no level is
// given explicitly.
const EnvLogLevel = "SWATCH_LOG_LEVEL"

// Logger is the global logger instance.
var Logger *log.Logger

// output is where Logger and component loggers write.
var output io.Writer = os.Stderr

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets the level and destination of the global logger.
//
// The level is taken from logLevel, then from $SWATCH_LOG_LEVEL, then
// defaults to info. An unknown level is an error. A non-empty logFile is
// opened for appending and replaces stderr; the returned closer releases it
// and is a no-op otherwise.
func Configure(logLevel, logFile string) (io.Closer, error) {
	name := logLevel
	if name == "" {
		name = os.Getenv(EnvLogLevel)
	}
	level, err := ParseLevel(name)
	if err != nil {
		return nil, err
	}

	var closer io.Closer = nopCloser{}
	out := io.Writer(os.Stderr)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	SetOutput(out, level)
	return closer, nil
}

// SetOutput replaces the global logger with one writing to w at level.
func SetOutput(w io.Writer, level log.Level) {
	output = w
	Logger = log.New(w)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
}

// ParseLevel converts a level name to a log.Level. The empty string means
// info.
func ParseLevel(name string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn, error or fatal)", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// ToolCall logs the dispatch of an MCP tool.
func ToolCall(tool string, keyvals ...interface{}) {
	Debug("Tool call", append([]interface{}{"tool", tool}, keyvals...)...)
}

// ForComponent returns a logger prefixed with component, sharing the global
// logger's destination and level. Level badges are colored when the
// destination is a terminal.
func ForComponent(component string) *log.Logger {
	styles := log.DefaultStyles()
	badge := func(name, bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(name).
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("15"))
	}
	styles.Levels[log.DebugLevel] = badge("DEBUG", "240")
	styles.Levels[log.InfoLevel] = badge("INFO", "33")
	styles.Levels[log.WarnLevel] = badge("WARN", "214")
	styles.Levels[log.ErrorLevel] = badge("ERROR", "196")
	styles.Levels[log.FatalLevel] = badge("FATAL", "88")

	styles.Keys["tool"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	l := log.NewWithOptions(output, log.Options{Prefix: component})
	l.SetStyles(styles)
	l.SetLevel(Logger.GetLevel())
	return l
}
