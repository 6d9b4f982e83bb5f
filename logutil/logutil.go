// Package logutil sets up the process wide zap logger.
package logutil

import (
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig is the [log] section of the benchmark configuration.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"`
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

var gLogger atomic.Value

func init() {
	gLogger.Store(zap.NewNop())
}

// GetGlobalLogger returns the logger installed by SetupLogger, or a no-op
// logger before setup.
func GetGlobalLogger() *zap.Logger {
	return gLogger.Load().(*zap.Logger)
}

// SetupLogger builds a logger from cfg and installs it as the global one.
func SetupLogger(cfg *LogConfig) (*zap.Logger, error) {
	level, err := cfg.getLevel()
	if err != nil {
		return nil, err
	}
	encoder, err := cfg.getEncoder()
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(encoder, cfg.getSyncer(), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.PanicLevel))
	gLogger.Store(logger)
	return logger, nil
}

func (cfg *LogConfig) getLevel() (zap.AtomicLevel, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", cfg.Level)
	}
	return level, nil
}

func (cfg *LogConfig) getEncoder() (zapcore.Encoder, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch cfg.Format {
	case "", "console":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig), nil
	case "json":
		return zapcore.NewJSONEncoder(encoderConfig), nil
	default:
		return nil, errors.Errorf("unsupported log format %q", cfg.Format)
	}
}

// getSyncer writes to stderr, or to a rotated file when Filename is set.
func (cfg *LogConfig) getSyncer() zapcore.WriteSyncer {
	if cfg.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	})
}
