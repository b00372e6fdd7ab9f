package freqtable

import (
	"context"
	"errors"
	"time"

	"github.com/adwski/freqtable/internal/logger"
	"github.com/adwski/freqtable/internal/logger/noop"
	zaplogger "github.com/adwski/freqtable/internal/logger/zap"
	zerologger "github.com/adwski/freqtable/internal/logger/zerolog"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

const (
	defaultTick       = time.Second
	defaultKeyPrefix  = "Number "
	defaultKeyMin     = 1
	defaultKeyMax     = 10
	defaultExportPath = "frequencies.csv"
	defaultLogLevel   = "trace"
)

var (
	ErrInvalidTick     = errors.New("generator tick must be positive")
	ErrInvalidUniverse = errors.New("invalid generator key universe")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

type (
	Config struct {
		logger   logger.Logger
		logExt   logger.External
		logLevel string

		// ExportPath is used by Export when called with empty path.
		// Default is frequencies.csv in working directory.
		ExportPath string

		keyPrefix string
		tick      time.Duration
		keyMin    int
		keyMax    int
	}
	Option func(context.Context, *Config) error
)

func (cfg *Config) setDefaults() {
	cfg.logExt = noop.NewLogger()
	cfg.logLevel = defaultLogLevel
	cfg.tick = defaultTick
	cfg.keyPrefix = defaultKeyPrefix
	cfg.keyMin = defaultKeyMin
	cfg.keyMax = defaultKeyMax

	if cfg.ExportPath == "" {
		cfg.ExportPath = defaultExportPath
	}
}

// WithLogLevel drops messages below level before they reach backend.
// Level is one of trace|debug|info|warn|error, default is trace,
// which leaves filtering to backend.
func WithLogLevel(level string) Option {
	return func(ctx context.Context, cfg *Config) error {
		cfg.logLevel = level
		return nil
	}
}

func WithZeroLogger(log zerolog.Logger) Option {
	return func(ctx context.Context, cfg *Config) error {
		cfg.logExt = zerologger.NewLogger(log)
		return nil
	}
}

func WithZapLogger(log *zap.Logger) Option {
	return func(ctx context.Context, cfg *Config) error {
		cfg.logExt = zaplogger.NewLogger(log)
		return nil
	}
}

// WithTick sets interval between increments of single generator.
func WithTick(tick time.Duration) Option {
	return func(ctx context.Context, cfg *Config) error {
		if tick <= 0 {
			return ErrInvalidTick
		}
		cfg.tick = tick
		return nil
	}
}

// WithKeyUniverse sets keys drawn by generators to prefix+N, where N is in [minN;maxN].
// Bounds must satisfy 0 <= minN <= maxN and maxN > 0.
func WithKeyUniverse(prefix string, minN, maxN int) Option {
	return func(ctx context.Context, cfg *Config) error {
		if prefix == "" || minN < 0 || minN > maxN || maxN == 0 {
			return ErrInvalidUniverse
		}
		cfg.keyPrefix = prefix
		cfg.keyMin = minN
		cfg.keyMax = maxN
		return nil
	}
}
