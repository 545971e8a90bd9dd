// Package logger holds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared structured logger. It is a no-op logger until Init runs.
var Log = zap.NewNop()

// Init builds the global logger. A non-empty logFile switches to the JSON
// production encoder and writes to both the file and stdout.
func Init(level string, logFile string) error {
	var config zap.Config

	if logFile != "" {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{logFile, "stdout"}
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	built, err := config.Build()
	if err != nil {
		return err
	}
	Log = built

	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Named returns a child logger tagged with the component name.
func Named(component string) *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log.Named(component)
}

// Sync flushes any buffered log entries.
func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}
