package chronofold

import (
	"cmp"
	"fmt"
	"strings"
)

type entry[A cmp.Ordered, T any] struct {
	id    Timestamp[A]
	value *T       // nil marks a tombstone
	ref   LogIndex // causal predecessor, none for entries at the beginning
}

// Chronofold is a conflict-free replicated sequence of elements of type T,
// attributed to authors of type A.
//
// It owns an append-only log of entries, the weave (a derived total order
// over those entries, kept as next pointers into the log), and a
// timestamp-to-index lookup used to resolve the causal references named by
// remote ops. The log only ever grows; deletions leave tombstones behind so
// that concurrent edits anchored at deleted entries still resolve.
type Chronofold[A cmp.Ordered, T any] struct {
	log     []entry[A, T]
	next    []LogIndex // weave successor per log entry
	root    LogIndex   // first weave position
	deleted []bool     // insert entries shadowed by a later delete
	index   map[Timestamp[A]]LogIndex
	version Version[A]
}

// New constructs a new, empty chronofold.
func New[A cmp.Ordered, T any]() *Chronofold[A, T] {
	return &Chronofold[A, T]{
		root:    none,
		index:   make(map[Timestamp[A]]LogIndex),
		version: NewVersion[A](),
	}
}

// Clone returns an independent deep copy of the chronofold.
func (c *Chronofold[A, T]) Clone() *Chronofold[A, T] {
	out := &Chronofold[A, T]{
		log:     make([]entry[A, T], len(c.log)),
		next:    make([]LogIndex, len(c.next)),
		root:    c.root,
		deleted: make([]bool, len(c.deleted)),
		index:   make(map[Timestamp[A]]LogIndex, len(c.index)),
		version: c.version.Clone(),
	}
	for i, e := range c.log {
		cp := e
		if e.value != nil {
			v := *e.value
			cp.value = &v
		}
		out.log[i] = cp
	}
	copy(out.next, c.next)
	copy(out.deleted, c.deleted)
	for ts, idx := range c.index {
		out.index[ts] = idx
	}
	return out
}

// Apply incorporates an op produced by another replica.
//
// Re-applying an op that is already part of the log is a silent no-op, so
// at-least-once delivery is safe. If the op references a timestamp this
// replica has not applied yet, Apply fails with ErrMissingCausalDependency
// and leaves the chronofold untouched; the caller is expected to redeliver
// the op once the dependency has arrived. Apply never buffers or reorders
// ops itself.
func (c *Chronofold[A, T]) Apply(op Op[A, T]) error {
	if _, ok := c.index[op.ID]; ok {
		// Already applied.
		return nil
	}
	ref := none
	if op.Reference != nil {
		idx, ok := c.index[*op.Reference]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingCausalDependency, *op.Reference)
		}
		ref = idx
	}
	var value *T
	if op.Value != nil {
		v := *op.Value
		value = &v
	}
	c.applyChange(op.ID, ref, value)
	return nil
}

// Entry returns a copy of the log entry at the given index.
func (c *Chronofold[A, T]) Entry(index LogIndex) (LogEntry[A, T], error) {
	if index < 0 || int(index) >= len(c.log) {
		return LogEntry[A, T]{}, fmt.Errorf("%w: %d", ErrOutOfBounds, index)
	}
	e := c.log[index]
	out := LogEntry[A, T]{ID: e.id}
	if e.ref != none {
		id := c.log[e.ref].id
		out.Reference = &id
	}
	if e.value != nil {
		v := *e.value
		out.Value = &v
	}
	return out, nil
}

// Get returns a copy of the value at the given log index. A nil value marks
// a tombstone.
func (c *Chronofold[A, T]) Get(index LogIndex) (*T, error) {
	e, err := c.Entry(index)
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

// IndexOf resolves a timestamp to its local log index.
func (c *Chronofold[A, T]) IndexOf(ts Timestamp[A]) (LogIndex, error) {
	idx, ok := c.index[ts]
	if !ok {
		return none, fmt.Errorf("%w: %s", ErrUnknownTimestamp, ts)
	}
	return idx, nil
}

// LastIndex returns the index of the last log entry in log order, and false
// if the log is empty.
func (c *Chronofold[A, T]) LastIndex() (LogIndex, bool) {
	if len(c.log) == 0 {
		return none, false
	}
	return LogIndex(len(c.log) - 1), true
}

// Len returns the number of visible elements.
func (c *Chronofold[A, T]) Len() int {
	count := 0
	for it := c.Elements(); !it.Done(); {
		it.Next()
		count++
	}
	return count
}

// IsEmpty reports whether the chronofold has no visible elements.
func (c *Chronofold[A, T]) IsEmpty() bool {
	return c.Elements().Done()
}

// Version returns a copy of the vector clock covering every applied edit.
func (c *Chronofold[A, T]) Version() Version[A] {
	return c.version.Clone()
}

// Session creates an editing session bound to a single author. All local
// mutation goes through sessions.
func (c *Chronofold[A, T]) Session(author A) *Session[A, T] {
	return &Session[A, T]{fold: c, author: author, last: none}
}

// String renders the visible elements joined in weave order. Rune, byte and
// string elements are written verbatim, everything else in its default
// format.
func (c *Chronofold[A, T]) String() string {
	var sb strings.Builder
	for it := c.Elements(); !it.Done(); {
		_, v := it.Next()
		switch x := any(v).(type) {
		case rune:
			sb.WriteRune(x)
		case byte:
			sb.WriteByte(x)
		case string:
			sb.WriteString(x)
		default:
			fmt.Fprint(&sb, v)
		}
	}
	return sb.String()
}
