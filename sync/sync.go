// Package sync layers causal delivery on top of the chronofold core.
//
// The core applies ops synchronously and rejects any op whose causal
// reference has not arrived yet, without buffering it. Reorderer is that
// buffer: it parks ops with missing dependencies and retries them whenever
// a newly applied op may have satisfied them, so a caller can feed ops in
// whatever order the transport delivers them.
package sync

import (
	"cmp"
	"errors"

	"github.com/nasdf/chronofold"
)

// Reorderer delivers ops to a chronofold in dependency order.
type Reorderer[A cmp.Ordered, T any] struct {
	fold    *chronofold.Chronofold[A, T]
	pending []chronofold.Op[A, T]
}

// NewReorderer returns a reorderer delivering into the given chronofold.
func NewReorderer[A cmp.Ordered, T any](fold *chronofold.Chronofold[A, T]) *Reorderer[A, T] {
	return &Reorderer[A, T]{fold: fold}
}

// Deliver applies the op, parking it instead if its causal reference is
// still missing. Whenever an op applies, parked ops are retried until no
// further progress is made.
func (r *Reorderer[A, T]) Deliver(op chronofold.Op[A, T]) error {
	err := r.fold.Apply(op)
	if errors.Is(err, chronofold.ErrMissingCausalDependency) {
		r.pending = append(r.pending, op)
		return nil
	}
	if err != nil {
		return err
	}
	r.drain()
	return nil
}

// Pending returns the number of parked ops still waiting on dependencies.
func (r *Reorderer[A, T]) Pending() int {
	return len(r.pending)
}

func (r *Reorderer[A, T]) drain() {
	for progress := true; progress && len(r.pending) > 0; {
		progress = false
		var remaining []chronofold.Op[A, T]
		for _, op := range r.pending {
			if err := r.fold.Apply(op); err != nil {
				remaining = append(remaining, op)
				continue
			}
			progress = true
		}
		r.pending = remaining
	}
}

// Diff returns the ops a replica at the given version is missing, in the
// local log order. Delivering them in that order never parks: every op's
// reference precedes it in the log.
func Diff[A cmp.Ordered, T any](fold *chronofold.Chronofold[A, T], remote chronofold.Version[A]) []chronofold.Op[A, T] {
	return fold.OpsSince(remote)
}

// Exchange merges two replicas into each other. Afterwards both cover the
// same edits and render the same content.
func Exchange[A cmp.Ordered, T any](a, b *chronofold.Chronofold[A, T]) error {
	for _, op := range Diff(a, b.Version()) {
		if err := b.Apply(op); err != nil {
			return err
		}
	}
	for _, op := range Diff(b, a.Version()) {
		if err := a.Apply(op); err != nil {
			return err
		}
	}
	return nil
}
