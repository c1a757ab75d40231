package chronofold

import "cmp"

// ElementIterator walks the visible elements in weave order. Iteration is
// restartable: calling Elements again yields a fresh iterator.
type ElementIterator[A cmp.Ordered, T any] struct {
	fold *Chronofold[A, T]
	cur  LogIndex
}

// Elements returns a new iterator over the visible elements in weave order.
func (c *Chronofold[A, T]) Elements() *ElementIterator[A, T] {
	it := &ElementIterator[A, T]{fold: c, cur: c.root}
	it.skip()
	return it
}

// Done returns true if the iterator has no items left.
func (it *ElementIterator[A, T]) Done() bool {
	return it.cur == none
}

// Next returns the next element and its log index from the iterator.
func (it *ElementIterator[A, T]) Next() (LogIndex, T) {
	idx := it.cur
	value := *it.fold.log[idx].value
	it.cur = it.fold.next[idx]
	it.skip()
	return idx, value
}

func (it *ElementIterator[A, T]) skip() {
	for it.cur != none && !it.fold.live(it.cur) {
		it.cur = it.fold.next[it.cur]
	}
}

// OpIterator walks a range of log entries in log order, yielding each as a
// transmissible op.
type OpIterator[A cmp.Ordered, T any] struct {
	fold *Chronofold[A, T]
	cur  LogIndex
	end  LogIndex
}

// Ops returns a new iterator over the ops in the log order range
// [from, to). The bounds are clamped to the log.
func (c *Chronofold[A, T]) Ops(from, to LogIndex) *OpIterator[A, T] {
	if from < 0 {
		from = 0
	}
	if int(to) > len(c.log) {
		to = LogIndex(len(c.log))
	}
	return &OpIterator[A, T]{fold: c, cur: from, end: to}
}

// AllOps returns a new iterator over every op in log order. Applying them in
// order to an empty chronofold reproduces this replica's state.
func (c *Chronofold[A, T]) AllOps() *OpIterator[A, T] {
	return c.Ops(0, LogIndex(len(c.log)))
}

// Done returns true if the iterator has no items left.
func (it *OpIterator[A, T]) Done() bool {
	return it.cur >= it.end
}

// Next returns the next op from the iterator.
func (it *OpIterator[A, T]) Next() Op[A, T] {
	e := it.fold.log[it.cur]
	op := Op[A, T]{ID: e.id}
	if e.ref != none {
		id := it.fold.log[e.ref].id
		op.Reference = &id
	}
	if e.value != nil {
		v := *e.value
		op.Value = &v
	}
	it.cur++
	return op
}

// OpsSince returns the ops not yet covered by the given version, in log
// order. This is the delta another replica at that version needs to catch
// up.
func (c *Chronofold[A, T]) OpsSince(version Version[A]) []Op[A, T] {
	var out []Op[A, T]
	for it := c.AllOps(); !it.Done(); {
		op := it.Next()
		if !version.Includes(op.ID) {
			out = append(out, op)
		}
	}
	return out
}
