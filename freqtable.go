package freqtable

import (
	"context"
	"errors"
	"sync"

	"github.com/adwski/freqtable/internal/export"
	"github.com/adwski/freqtable/internal/generator"
	"github.com/adwski/freqtable/internal/logger"
	"github.com/adwski/freqtable/internal/registry"
)

// Counts is a point-in-time copy of key frequencies.
type Counts = registry.Counts

// ExportError is returned by Table.Export.
// It matches exactly one of ErrExport* kinds with errors.Is.
type ExportError = export.Error

var (
	ErrExportSnapshot = export.ErrSnapshot
	ErrExportEncode   = export.ErrEncode
	ErrExportEncoding = export.ErrEncoding
	ErrExportIO       = export.ErrIO
)

type (
	// Table is shared frequency table handle.
	// It is safe for concurrent use.
	Table struct {
		logger logger.Logger

		registry  *registry.Registry
		producers *generator.Pool
		exporter  *export.Exporter

		runCtx    context.Context
		cancel    context.CancelFunc
		closeOnce *sync.Once

		exportPath string
	}

	GeneratorStats struct {
		Running int64
		Ticks   uint64
	}
)

// Open creates empty table. Generators started later run until
// ctx is done or Close is called.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Table, error) {
	cfg.setDefaults()

	for _, opt := range opts {
		if err := opt(ctx, &cfg); err != nil {
			return nil, err
		}
	}

	log, err := logger.NewWithLevel(cfg.logExt, cfg.logLevel)
	if err != nil {
		return nil, errors.Join(ErrInvalidLogLevel, err)
	}
	cfg.logger = log

	reg := registry.New()

	t := &Table{
		logger:   cfg.logger,
		registry: reg,
		producers: generator.New(generator.Config{
			Target:    reg,
			Logger:    cfg.logger,
			Tick:      cfg.tick,
			KeyPrefix: cfg.keyPrefix,
			KeyMin:    cfg.keyMin,
			KeyMax:    cfg.keyMax,
		}),
		exporter: export.New(export.Config{
			Source: reg,
			Logger: cfg.logger,
		}),
		closeOnce:  &sync.Once{},
		exportPath: cfg.ExportPath,
	}
	t.runCtx, t.cancel = context.WithCancel(ctx)

	t.logger.Debug("table opened", "exportPath", t.exportPath)

	return t, nil
}

// Increment adds one to word's count and returns table state right after it.
// Panics if table state is poisoned.
func (t *Table) Increment(word string) Counts {
	return t.registry.Increment(word)
}

// Snapshot returns current table state.
// Panics if table state is poisoned.
func (t *Table) Snapshot() Counts {
	return t.registry.Snapshot()
}

// StartGenerators spawns count background generators and returns immediately.
// Non-positive count spawns nothing, as does any call after Close.
func (t *Table) StartGenerators(count int) {
	t.producers.Start(t.runCtx, count)
}

func (t *Table) Generators() GeneratorStats {
	return GeneratorStats{
		Running: t.producers.Running(),
		Ticks:   t.producers.Ticks(),
	}
}

// Export writes table as key,count records to path, or to
// configured default path if path is empty.
func (t *Table) Export(path string) (string, error) {
	if path == "" {
		path = t.exportPath
	}

	return t.exporter.Export(path) //nolint:wrapcheck // already classified
}

// Close stops generators and waits for them to exit.
// Table remains readable after Close.
func (t *Table) Close() {
	t.closeOnce.Do(func() {
		t.cancel()
		t.producers.Close()

		t.logger.Debug("table closed")
	})
}
