package generator

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/adwski/freqtable/internal/logger"
	"github.com/adwski/freqtable/internal/registry"
	"github.com/adwski/freqtable/internal/stats"

	"github.com/google/uuid"
)

const (
	defaultTick      = time.Second
	defaultKeyPrefix = "Number "
	defaultKeyMin    = 1
	defaultKeyMax    = 10
)

type (
	Incrementer interface {
		Increment(key string) registry.Counts
	}

	// Pool spawns producers that periodically increment
	// random keys from closed universe [KeyMin;KeyMax].
	// Producers hold no state of their own and run until
	// context passed to Start is done.
	Pool struct {
		target Incrementer
		logger logger.Logger

		intn func(int) int

		wg *sync.WaitGroup
		mx *sync.Mutex

		closed bool

		running stats.Gauge
		ticks   stats.Counter

		prefix string
		tick   time.Duration
		keyMin int
		keyMax int
	}

	Config struct {
		Target Incrementer
		Logger logger.Logger

		// Tick is interval between two increments of single producer.
		// Default is 1 second (defaultTick).
		Tick time.Duration

		// KeyPrefix is prepended to drawn number to form a key.
		// Default is "Number ".
		KeyPrefix string

		// KeyMin and KeyMax are inclusive bounds of drawn numbers.
		// If KeyMin > KeyMax or both are zero, defaults 1..10 are used.
		KeyMin int
		KeyMax int

		intn func(int) int
	}
)

func (cfg *Config) validate() {
	if cfg.Tick <= 0 {
		cfg.Tick = defaultTick
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.KeyMin > cfg.KeyMax || (cfg.KeyMin == 0 && cfg.KeyMax == 0) {
		cfg.KeyMin = defaultKeyMin
		cfg.KeyMax = defaultKeyMax
	}
	if cfg.intn == nil {
		cfg.intn = rand.Intn
	}
}

func New(cfg Config) *Pool {
	cfg.validate()

	return &Pool{
		target:  cfg.Target,
		logger:  cfg.Logger,
		intn:    cfg.intn,
		wg:      &sync.WaitGroup{},
		mx:      &sync.Mutex{},
		running: stats.NewGauge(),
		ticks:   stats.NewCounter(),
		prefix:  cfg.KeyPrefix,
		tick:    cfg.Tick,
		keyMin:  cfg.KeyMin,
		keyMax:  cfg.KeyMax,
	}
}

// Start spawns count producers and returns without waiting for them.
// Non-positive count spawns nothing. Calling Start again adds more producers.
// Start is no-op once pool is closed or ctx is done.
func (p *Pool) Start(ctx context.Context, count int) {
	if count <= 0 {
		if count < 0 {
			p.logger.Warn("negative generators count ignored", "count", count)
		}
		return
	}

	p.mx.Lock()
	defer p.mx.Unlock()

	if p.closed || ctx.Err() != nil {
		p.logger.Warn("generators not started, pool is closed", "count", count)
		return
	}

	batch := uuid.New()

	p.wg.Add(count)
	for i := 0; i < count; i++ {
		p.running.Inc()
		go p.produce(ctx, batch)
	}

	p.logger.Info("generators started",
		"batch", batch,
		"count", count,
		"tick", p.tick.String())
}

// Close prevents further Start calls and blocks until
// every producer has exited. Producers exit when context
// passed to Start is done, so it must be canceled before Close.
func (p *Pool) Close() {
	p.mx.Lock()
	p.closed = true
	p.mx.Unlock()

	p.wg.Wait()
}

// Running returns number of currently running producers.
func (p *Pool) Running() int64 {
	return p.running.Get()
}

// Ticks returns number of increments performed by producers.
func (p *Pool) Ticks() uint64 {
	return p.ticks.Get()
}

func (p *Pool) nextKey() string {
	n := p.keyMin + p.intn(p.keyMax-p.keyMin+1)
	return p.prefix + strconv.Itoa(n)
}

func (p *Pool) produce(ctx context.Context, batch uuid.UUID) {
	p.logger.Trace("generator started", "batch", batch)
	defer func() {
		p.running.Dec()
		p.wg.Done()
		p.logger.Trace("generator exited", "batch", batch)
	}()

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		key := p.nextKey()
		p.target.Increment(key)
		p.ticks.Inc()

		p.logger.TraceFunc(func() (string, []any) {
			return "generator tick", []any{"batch", batch, "key", key}
		})
	}
}
