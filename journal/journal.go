// Package journal persists a replica's ops in log order so the replica can
// be rebuilt by replaying them into an empty chronofold.
package journal

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nasdf/chronofold"
	"github.com/nasdf/chronofold/codec"
	"github.com/nasdf/chronofold/storage"
)

const (
	headKey  = "journal/head"
	opKeyFmt = "journal/op/%020d"
)

// Journal is an append-only op log over a Storage. Ops are keyed by their
// position, and a head counter tracks how many have been written.
type Journal[A cmp.Ordered, T any] struct {
	store storage.Storage
}

// New returns a journal over the given storage.
func New[A cmp.Ordered, T any](store storage.Storage) *Journal[A, T] {
	return &Journal[A, T]{store: store}
}

// Len returns the number of journaled ops.
func (j *Journal[A, T]) Len(ctx context.Context) (uint64, error) {
	data, err := j.store.Get(ctx, headKey)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt journal head: %w", err)
	}
	return n, nil
}

// Append writes one op at the end of the journal.
func (j *Journal[A, T]) Append(ctx context.Context, op chronofold.Op[A, T]) error {
	n, err := j.Len(ctx)
	if err != nil {
		return err
	}
	data, err := codec.MarshalOp(op)
	if err != nil {
		return fmt.Errorf("encoding op %s: %w", op.ID, err)
	}
	if err := j.store.Put(ctx, fmt.Sprintf(opKeyFmt, n), data); err != nil {
		return err
	}
	return j.store.Put(ctx, headKey, []byte(strconv.FormatUint(n+1, 10)))
}

// AppendAll writes the given ops at the end of the journal, in order.
func (j *Journal[A, T]) AppendAll(ctx context.Context, ops []chronofold.Op[A, T]) error {
	for _, op := range ops {
		if err := j.Append(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the op at the given journal position.
func (j *Journal[A, T]) Get(ctx context.Context, pos uint64) (chronofold.Op[A, T], error) {
	data, err := j.store.Get(ctx, fmt.Sprintf(opKeyFmt, pos))
	if err != nil {
		return chronofold.Op[A, T]{}, err
	}
	return codec.UnmarshalOp[A, T](data)
}

// Replay applies every journaled op to the given chronofold, in order. A
// journal written in one replica's log order replays without missing
// dependencies.
func (j *Journal[A, T]) Replay(ctx context.Context, fold *chronofold.Chronofold[A, T]) error {
	n, err := j.Len(ctx)
	if err != nil {
		return err
	}
	for pos := uint64(0); pos < n; pos++ {
		op, err := j.Get(ctx, pos)
		if err != nil {
			return err
		}
		if err := fold.Apply(op); err != nil {
			return fmt.Errorf("replaying op %d: %w", pos, err)
		}
	}
	return nil
}
