package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu      sync.RWMutex
	current = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base    = newLogger(current, "")
)

// InitFromEnv sets the log level based on LOG_LEVEL (debug|info|warn|error)
// and the encoder based on LOG_FORMAT (json|console).
func InitFromEnv() {
	Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Init rebuilds the package logger.
func Init(level, format string) {
	lvl := zap.NewAtomicLevelAt(ParseLevel(level).zapLevel())
	l := newLogger(lvl, format)

	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	current = lvl
	base = l
}

// ParseLevel maps a level name to a Level, defaulting to info.
func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "error":
		return LevelError
	case "warn", "warning":
		return LevelWarn
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newLogger(level zap.AtomicLevel, format string) *zap.Logger {
	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.Level = level
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// L returns the structured logger for callers that attach fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Enabled reports whether messages at lvl are currently emitted.
func Enabled(lvl Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return current.Enabled(lvl.zapLevel())
}

// Sync flushes buffered entries; call before exit.
func Sync() {
	_ = L().Sync()
}

func Debugf(format string, args ...interface{}) {
	L().Sugar().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	L().Sugar().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	L().Sugar().Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	L().Sugar().Errorf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	L().Sugar().Fatalf(format, args...)
}
