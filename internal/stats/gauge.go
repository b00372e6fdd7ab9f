package stats

import "sync/atomic"

// Gauge is a value that goes up and down, like number of running goroutines.
type Gauge struct {
	v *atomic.Int64
}

func NewGauge() Gauge {
	return Gauge{v: &atomic.Int64{}}
}

func (g Gauge) Inc() {
	g.v.Add(1)
}

func (g Gauge) Dec() {
	g.v.Add(-1)
}

func (g Gauge) Get() int64 {
	return g.v.Load()
}
