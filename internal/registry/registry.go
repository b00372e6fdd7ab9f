// Package registry implements shared key frequency table.
//
// All reads and writes go through a single mutex guarding the whole map.
// A panic inside critical section poisons the registry: every later
// operation fails with errors.PoisonedStateError instead of working
// on possibly half-updated state.
package registry

import (
	"sync"

	localErrs "github.com/adwski/freqtable/internal/errors"
)

type (
	// Counts is a point-in-time copy of registry contents.
	Counts map[string]uint64

	Registry struct {
		mx     sync.Mutex
		counts map[string]uint64

		poisoned bool
	}
)

func New() *Registry {
	return &Registry{
		counts: make(map[string]uint64),
	}
}

// Increment adds one to key's count, creating it with count 1 if absent,
// and returns registry contents as they are right after the update.
// It panics with errors.PoisonedStateError if registry is poisoned.
func (r *Registry) Increment(key string) Counts {
	var snap Counts
	if err := r.locked(func(counts map[string]uint64) {
		counts[key]++
		snap = copyCounts(counts)
	}); err != nil {
		panic(err)
	}

	return snap
}

// Snapshot returns copy of registry contents.
// It panics with errors.PoisonedStateError if registry is poisoned.
func (r *Registry) Snapshot() Counts {
	snap, err := r.TrySnapshot()
	if err != nil {
		panic(err)
	}

	return snap
}

// TrySnapshot is like Snapshot but reports poisoned state as error.
func (r *Registry) TrySnapshot() (Counts, error) {
	var snap Counts
	err := r.locked(func(counts map[string]uint64) {
		snap = copyCounts(counts)
	})

	return snap, err
}

func (r *Registry) locked(f func(map[string]uint64)) error {
	r.mx.Lock()
	defer r.mx.Unlock()

	if r.poisoned {
		return localErrs.PoisonedStateError{}
	}

	completed := false
	defer func() {
		if !completed {
			r.poisoned = true
		}
	}()

	f(r.counts)
	completed = true

	return nil
}

func copyCounts(counts map[string]uint64) Counts {
	cp := make(Counts, len(counts))
	for k, v := range counts {
		cp[k] = v
	}

	return cp
}
