package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	DebugLevel LogLevel = iota + 1
	InfoLevel
	WarnLevel
	ErrorLevel
	NoLevel
)

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case NoLevel:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// Logger is a small leveled logger with a per-instance prefix.
type Logger struct {
	mu              sync.Mutex
	level           LogLevel
	prefix          string
	output          io.Writer
	timestampFormat string
}

func NewLogger(prefix string) *Logger {
	return &Logger{
		level:           InfoLevel,
		prefix:          prefix,
		output:          os.Stdout,
		timestampFormat: "2006-01-02 15:04:05",
	}
}

// SetLevel accepts "debug", "info", "warn", "error" or "disable"; anything
// else leaves the level unchanged.
func (l *Logger) SetLevel(level string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch strings.ToLower(level) {
	case "debug":
		l.level = DebugLevel
	case "info":
		l.level = InfoLevel
	case "warn":
		l.level = WarnLevel
	case "error":
		l.level = ErrorLevel
	case "disable", "none":
		l.level = NoLevel
	}
	return l
}

func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w != nil {
		l.output = w
	}
	return l
}

func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) log(level LogLevel, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level || l.level == NoLevel {
		return
	}
	fmt.Fprintf(l.output, "%s [%s] %s - %s\n",
		time.Now().Format(l.timestampFormat), level, l.prefix, msg)
}

func (l *Logger) Debug(v ...any) {
	l.log(DebugLevel, fmt.Sprint(v...))
}

func (l *Logger) Debugf(format string, v ...any) {
	l.log(DebugLevel, fmt.Sprintf(format, v...))
}

func (l *Logger) Info(v ...any) {
	l.log(InfoLevel, fmt.Sprint(v...))
}

func (l *Logger) Infof(format string, v ...any) {
	l.log(InfoLevel, fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(v ...any) {
	l.log(WarnLevel, fmt.Sprint(v...))
}

func (l *Logger) Warnf(format string, v ...any) {
	l.log(WarnLevel, fmt.Sprintf(format, v...))
}

func (l *Logger) Error(v ...any) {
	l.log(ErrorLevel, fmt.Sprint(v...))
}

func (l *Logger) Errorf(format string, v ...any) {
	l.log(ErrorLevel, fmt.Sprintf(format, v...))
}
