package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap sugared logger behind the leveled helpers used across the service
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// Global logger instance
var GlobalLogger *Logger
var once sync.Once

func init() {
	// usable before InitLogger runs (tests, CLI)
	GlobalLogger = newLogger(zap.NewNop())
}

// InitLogger builds the global logger for the given environment and level.
// Production uses the JSON encoder, everything else a coloured console encoder.
func InitLogger(environment, level string) {
	once.Do(func() {
		var cfg zap.Config
		if environment == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewExample()
		}
		GlobalLogger = newLogger(base)
	})
}

// Only the sugared helpers sit one frame above the caller; Zap() callers log directly.
func newLogger(base *zap.Logger) *Logger {
	return &Logger{base: base, sugar: base.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "WARN":
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Zap exposes the structured logger for call sites that want typed fields
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...zap.Field) *Logger {
	return newLogger(l.base.With(fields...))
}

// Println logs a message at the INFO level
func (l *Logger) Println(v ...interface{}) {
	l.sugar.Info(v...)
}

// Printf logs a formatted message at the INFO level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Warnf logs a formatted message at the WARN level
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Error logs a message at the ERROR level
func (l *Logger) Error(v ...interface{}) {
	l.sugar.Error(v...)
}

// Errorf logs a formatted message at the ERROR level
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug logs a message at the DEBUG level
func (l *Logger) Debug(v ...interface{}) {
	l.sugar.Debug(v...)
}

// Debugf logs a formatted message at the DEBUG level
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Fatalf logs at FATAL and exits
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.base.Sync()
}
