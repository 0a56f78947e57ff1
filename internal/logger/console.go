// Package logger provides the console logger used by stackarch commands.
//
// Messages go to stderr prefixed with [HH:MM:SS] and a level tag, so command
// output on stdout stays clean for piping.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log levels, lowest first.
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Color modes accepted by NewConsoleLogger.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var levelOrder = map[string]int{
	LevelTrace: 0,
	LevelDebug: 1,
	LevelInfo:  2,
	LevelWarn:  3,
	LevelError: 4,
}

// Logger is the logging surface the application layer depends on.
type Logger interface {
	Log(level, message string)
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ConsoleLogger writes timestamped, level-filtered lines to a writer.
// It is safe for concurrent use.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger. A nil writer discards everything.
// Unknown levels fall back to info. colorMode is auto, always or never; auto
// enables color only when the writer is a terminal.
func NewConsoleLogger(writer io.Writer, logLevel, colorMode string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    NormalizeLevel(logLevel),
		colorOutput: UseColor(writer, colorMode),
		now:         time.Now,
	}
}

// Discard returns a logger that drops every message.
func Discard() *ConsoleLogger {
	return NewConsoleLogger(nil, LevelError, ColorNever)
}

// NormalizeLevel lowercases level and maps unknown values to info.
func NormalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if _, ok := levelOrder[normalized]; ok {
		return normalized
	}
	return LevelInfo
}

// UseColor resolves a color mode against a writer.
func UseColor(w io.Writer, mode string) bool {
	switch strings.ToLower(mode) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Level returns the configured minimum level.
func (cl *ConsoleLogger) Level() string { return cl.logLevel }

func (cl *ConsoleLogger) shouldLog(level string) bool {
	msg, ok := levelOrder[level]
	if !ok {
		msg = levelOrder[LevelInfo]
	}
	return msg >= levelOrder[cl.logLevel]
}

// Log writes message at the given level.
func (cl *ConsoleLogger) Log(level, message string) {
	level = strings.ToLower(level)
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format("15:04:05")
	fmt.Fprintf(cl.writer, "[%s] %s %s\n", ts, cl.tag(level), message)
}

func (cl *ConsoleLogger) tag(level string) string {
	tag := "[" + strings.ToUpper(level) + "]"
	if !cl.colorOutput {
		return tag
	}
	var c *color.Color
	switch level {
	case LevelTrace, LevelDebug:
		c = color.New(color.FgHiBlack)
	case LevelWarn:
		c = color.New(color.FgYellow)
	case LevelError:
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	c.EnableColor()
	return c.Sprint(tag)
}

// Tracef logs at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...any) {
	cl.Log(LevelTrace, fmt.Sprintf(format, args...))
}

// Debugf logs at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof logs at info level.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs at warn level.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.Log(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs at error level.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.Log(LevelError, fmt.Sprintf(format, args...))
}

var _ Logger = (*ConsoleLogger)(nil)
