package observe

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger is a minimal structured logging interface.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging is best-effort and must not panic.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)

	// WithShape returns a logger that tags every entry with meta.
	WithShape(meta ShapeMeta) Logger
}

// Field is a structured log field.
type Field struct {
	Key   string
	Value any
}

// LogLevel is a logging threshold.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func lookupLevel(s string) (LogLevel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == s {
			return LogLevel(l), true
		}
	}
	return LevelInfo, false
}

// ParseLogLevel parses a level name. Unknown values mean info.
func ParseLogLevel(s string) LogLevel {
	l, _ := lookupLevel(s)
	return l
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "info"
	}
	return levelNames[l]
}

// sink serializes writes from a logger and everything derived from it.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *sink) write(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(line)
}

// jsonLogger writes one JSON object per line.
type jsonLogger struct {
	min   LogLevel
	out   *sink
	scope []Field
}

// NewLogger creates a JSON logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a JSON logger writing to w.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	return &jsonLogger{min: ParseLogLevel(level), out: &sink{w: w}}
}

func (l *jsonLogger) WithShape(meta ShapeMeta) Logger {
	scope := make([]Field, 0, len(l.scope)+4)
	scope = append(scope, l.scope...)
	scope = append(scope,
		Field{Key: AttrKind, Value: meta.Kind},
		Field{Key: AttrOverlay, Value: meta.Overlay},
	)
	if meta.Fingerprint != "" {
		scope = append(scope, Field{Key: AttrFingerprint, Value: meta.Fingerprint})
	}
	if meta.Bypass {
		scope = append(scope, Field{Key: AttrBypass, Value: true})
	}
	return &jsonLogger{min: l.min, out: l.out, scope: scope}
}

func (l *jsonLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.emit(LevelDebug, msg, fields)
}

func (l *jsonLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.emit(LevelInfo, msg, fields)
}

func (l *jsonLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.emit(LevelWarn, msg, fields)
}

func (l *jsonLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.emit(LevelError, msg, fields)
}

func (l *jsonLogger) emit(level LogLevel, msg string, fields []Field) {
	if level < l.min {
		return
	}

	entry := make(map[string]any, len(l.scope)+len(fields)+3)
	for _, f := range l.scope {
		entry[f.Key] = f.Value
	}
	// Call-site fields override scope fields; reserved keys override both.
	for _, f := range fields {
		entry[f.Key] = f.Value
	}
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.out.write(append(line, '\n'))
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...Field)  {}
func (nopLogger) Warn(context.Context, string, ...Field)  {}
func (nopLogger) Error(context.Context, string, ...Field) {}
func (nopLogger) Debug(context.Context, string, ...Field) {}
func (l nopLogger) WithShape(ShapeMeta) Logger           { return l }

var _ Logger = (*jsonLogger)(nil)
