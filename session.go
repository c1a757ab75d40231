package chronofold

import (
	"cmp"
	"fmt"
)

// Session is a short-lived editing context binding one author identity to a
// chronofold. It stamps the author's edits with fresh timestamps and
// records every op it produces so the caller can ship them to other
// replicas. The ops are applied locally as they are made; a session never
// requires the caller to apply its own ops.
//
// A session holds no state beyond the chronofold it edits; dropping it is
// all the cleanup there is.
type Session[A cmp.Ordered, T any] struct {
	fold   *Chronofold[A, T]
	author A
	last   LogIndex // last insert made through this session
	ops    []Op[A, T]
}

// Author returns the author identity this session edits as.
func (s *Session[A, T]) Author() A {
	return s.author
}

// Ops returns the ops produced by this session so far, in the order they
// were made.
func (s *Session[A, T]) Ops() []Op[A, T] {
	out := make([]Op[A, T], len(s.ops))
	copy(out, s.ops)
	return out
}

// Extend appends the given values, each causally following the previous
// one. The first value follows the session's last insert, or the end of the
// sequence if the session has not inserted yet.
func (s *Session[A, T]) Extend(values ...T) error {
	anchor := s.last
	if anchor == none {
		anchor = s.fold.lastWeaveIndex()
	}
	for _, v := range values {
		idx, err := s.insert(anchor, v)
		if err != nil {
			return err
		}
		anchor = idx
	}
	return nil
}

// InsertAfter inserts value causally after the entry at the given log index
// and returns the new entry's index.
func (s *Session[A, T]) InsertAfter(index LogIndex, value T) (LogIndex, error) {
	if index < 0 || int(index) >= len(s.fold.log) {
		return none, fmt.Errorf("%w: %d", ErrOutOfBounds, index)
	}
	return s.insert(index, value)
}

// PushFront inserts value at the beginning of the sequence and returns the
// new entry's index.
func (s *Session[A, T]) PushFront(value T) (LogIndex, error) {
	return s.insert(none, value)
}

// PushBack appends value after the last visible element and returns the new
// entry's index.
func (s *Session[A, T]) PushBack(value T) (LogIndex, error) {
	anchor := none
	for it := s.fold.Elements(); !it.Done(); {
		anchor, _ = it.Next()
	}
	return s.insert(anchor, value)
}

// Remove deletes the entry at the given log index. The entry is only marked
// as deleted: it keeps its weave position and stays a valid causal anchor
// for later insertions.
func (s *Session[A, T]) Remove(index LogIndex) error {
	if index < 0 || int(index) >= len(s.fold.log) {
		return fmt.Errorf("%w: %d", ErrOutOfBounds, index)
	}
	return s.remove(index)
}

// Clear deletes every visible element.
func (s *Session[A, T]) Clear() error {
	var doomed []LogIndex
	for it := s.fold.Elements(); !it.Done(); {
		idx, _ := it.Next()
		doomed = append(doomed, idx)
	}
	for _, idx := range doomed {
		if err := s.remove(idx); err != nil {
			return err
		}
	}
	return nil
}

// Splice deletes every visible element in the weave-order range [start, end)
// and inserts the given values in their place. Passing the log length as a
// bound addresses the position past the last weave entry, so
// Splice(n, n, vs...) with n = log length appends.
//
// The bounds must describe an increasing weave interval: start must be a
// visible entry (unless the range is empty) and end must follow it in weave
// order.
func (s *Session[A, T]) Splice(start, end LogIndex, values ...T) error {
	length := LogIndex(len(s.fold.log))
	if start < 0 || end < 0 || start > length || end > length {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}

	var doomed []LogIndex
	if start != end {
		if start == length || !s.fold.live(start) {
			return fmt.Errorf("%w: start %d is not a visible position", ErrInvalidRange, start)
		}
		reached := false
		for cur := start; cur != none; cur = s.fold.next[cur] {
			if cur == end {
				reached = true
				break
			}
			if s.fold.live(cur) {
				doomed = append(doomed, cur)
			}
		}
		if !reached && end != length {
			return fmt.Errorf("%w: %d does not follow %d in weave order", ErrInvalidRange, end, start)
		}
	}

	anchor := s.fold.indexBefore(start)
	for _, idx := range doomed {
		if err := s.remove(idx); err != nil {
			return err
		}
	}
	for _, v := range values {
		idx, err := s.insert(anchor, v)
		if err != nil {
			return err
		}
		anchor = idx
	}
	return nil
}

func (s *Session[A, T]) insert(ref LogIndex, value T) (LogIndex, error) {
	v := value
	idx, err := s.applyChange(ref, &v)
	if err != nil {
		return none, err
	}
	s.last = idx
	return idx, nil
}

func (s *Session[A, T]) remove(index LogIndex) error {
	_, err := s.applyChange(index, nil)
	return err
}

func (s *Session[A, T]) applyChange(ref LogIndex, value *T) (LogIndex, error) {
	op := Op[A, T]{ID: s.nextTimestamp(), Value: value}
	if ref != none {
		id := s.fold.log[ref].id
		op.Reference = &id
	}
	if err := s.fold.Apply(op); err != nil {
		return none, fmt.Errorf("applying own op: %w", err)
	}
	s.ops = append(s.ops, op)
	return s.fold.index[op.ID], nil
}

func (s *Session[A, T]) nextTimestamp() Timestamp[A] {
	return Timestamp[A]{Author: s.author, Seq: uint64(len(s.fold.log)) + 1}
}
