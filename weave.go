package chronofold

// The weave is the derived total order over the log. It is kept as an array
// of next pointers so the log itself stays an append-only arena; inserting
// an entry only rewires two pointers.

// applyChange appends one entry to the log and links it into the weave.
// All validation has happened by the time this is called.
func (c *Chronofold[A, T]) applyChange(id Timestamp[A], ref LogIndex, value *T) LogIndex {
	pred := c.findPredecessor(id, ref)

	// Take over the predecessor's next pointer, keeping its previous
	// successor as our own.
	newIndex := LogIndex(len(c.log))
	var nxt LogIndex
	if pred != none {
		nxt = c.next[pred]
		c.next[pred] = newIndex
	} else {
		nxt = c.root
		c.root = newIndex
	}

	// A delete keeps its target's weave position; the target is only
	// excluded from rendering.
	if value == nil && ref != none {
		c.deleted[ref] = true
	}

	c.log = append(c.log, entry[A, T]{id: id, value: value, ref: ref})
	c.next = append(c.next, nxt)
	c.deleted = append(c.deleted, false)
	c.index[id] = newIndex
	c.version.Inc(id)
	return newIndex
}

// findPredecessor locates the weave entry the new change is linked after.
//
// Entries sharing the same causal reference are siblings. Their subtrees sit
// directly after the reference in the weave, ordered by descending
// timestamp: among concurrent edits at the same position, the entry with the
// greater timestamp weaves earlier. The new entry therefore skips the
// subtree of every sibling with a greater timestamp and lands in front of
// the first sibling with a smaller one. The resulting relative order of any
// two entries depends only on their timestamps and references, never on the
// order in which a replica received them.
func (c *Chronofold[A, T]) findPredecessor(id Timestamp[A], ref LogIndex) LogIndex {
	pred := ref
	for {
		nxt := c.weaveNext(pred)
		if nxt == none || c.log[nxt].ref != ref || c.log[nxt].id.Less(id) {
			return pred
		}
		pred = c.lastOfSubtree(nxt)
	}
}

// lastOfSubtree returns the last weave position of the subtree rooted at
// index. Subtrees are contiguous in the weave, so the walk stops at the
// first entry that does not descend from index.
func (c *Chronofold[A, T]) lastOfSubtree(index LogIndex) LogIndex {
	members := map[LogIndex]struct{}{index: {}}
	last := index
	for j := c.next[index]; j != none; j = c.next[j] {
		if _, ok := members[c.log[j].ref]; !ok {
			break
		}
		members[j] = struct{}{}
		last = j
	}
	return last
}

// weaveNext returns the weave successor of index, treating none as the
// position before the first entry.
func (c *Chronofold[A, T]) weaveNext(index LogIndex) LogIndex {
	if index == none {
		return c.root
	}
	return c.next[index]
}

// indexBefore returns the weave predecessor of index. Passing the log length
// yields the last weave position. Returns none when index is the first weave
// position.
func (c *Chronofold[A, T]) indexBefore(index LogIndex) LogIndex {
	prev := none
	for cur := c.root; cur != none; cur = c.next[cur] {
		if cur == index {
			return prev
		}
		prev = cur
	}
	return prev
}

// lastWeaveIndex returns the last entry in weave order, or none on an empty
// log.
func (c *Chronofold[A, T]) lastWeaveIndex() LogIndex {
	return c.indexBefore(LogIndex(len(c.log)))
}

// live reports whether the entry at index is a visible element.
func (c *Chronofold[A, T]) live(index LogIndex) bool {
	return c.log[index].value != nil && !c.deleted[index]
}
