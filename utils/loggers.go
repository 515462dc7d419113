package utils

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// InitLogger builds the process-wide logger. format is "json" or "console";
// an unknown level falls back to info.
func InitLogger(level, format string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger.Store(l)
	return nil
}

// SetLogger replaces the process-wide logger. Tests use it with zaptest
// observers.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

// L returns the process-wide logger. It is a no-op logger until InitLogger
// is called.
func L() *zap.Logger {
	return logger.Load()
}

func SyncLogger() {
	_ = L().Sync()
}

func LogInfo(message string, fields ...zap.Field) {
	L().Info(message, fields...)
}

func LogDebug(message string, fields ...zap.Field) {
	L().Debug(message, fields...)
}

func LogWarning(message string, fields ...zap.Field) {
	L().Warn(message, fields...)
}

func LogError(message string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	L().Error(message, fields...)
}
