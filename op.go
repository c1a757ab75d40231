package chronofold

import (
	"cmp"
	"fmt"
)

// LogIndex is a 0-based position in a replica's log. Log indices are stable
// under edits but subjective: the same logical edit may occupy different
// indices on different replicas, so they must never be sent over the wire.
// Timestamps are the only identities safe to share between replicas.
type LogIndex int

// none marks the absence of a log index in the weave arrays.
const none = LogIndex(-1)

// Timestamp is the globally unique identity of one logical edit.
//
// Timestamps are totally ordered by sequence number first and author second.
// Sessions derive sequence numbers from the length of the local log, so a
// timestamp is always greater than the timestamps of all edits its author
// had seen when making it: a greater timestamp means a later or concurrent
// edit, which is what makes the order usable as a tie-break between
// concurrent edits.
type Timestamp[A cmp.Ordered] struct {
	Author A      `json:"author" msgpack:"a"`
	Seq    uint64 `json:"seq" msgpack:"s"`
}

// Less reports whether t is ordered before other.
func (t Timestamp[A]) Less(other Timestamp[A]) bool {
	if t.Seq != other.Seq {
		return t.Seq < other.Seq
	}
	return t.Author < other.Author
}

func (t Timestamp[A]) String() string {
	return fmt.Sprintf("<%d, %v>", t.Seq, t.Author)
}

// Op is the transmissible unit of change. It describes one log entry using
// timestamps for both its own identity and its causal reference, and carries
// everything needed to replay the edit on another replica.
type Op[A cmp.Ordered, T any] struct {
	// ID identifies the edit.
	ID Timestamp[A] `json:"id" msgpack:"id"`
	// Reference names the entry this one is logically inserted after, or the
	// entry being deleted. A nil reference anchors the edit at the beginning
	// of the sequence.
	Reference *Timestamp[A] `json:"ref,omitempty" msgpack:"ref,omitempty"`
	// Value is the inserted element. A nil value marks a deletion of the
	// referenced entry.
	Value *T `json:"value,omitempty" msgpack:"val,omitempty"`
}

// NewInsert returns an op inserting value after the referenced entry.
func NewInsert[A cmp.Ordered, T any](id Timestamp[A], reference *Timestamp[A], value T) Op[A, T] {
	return Op[A, T]{ID: id, Reference: reference, Value: &value}
}

// NewDelete returns an op deleting the referenced entry.
func NewDelete[A cmp.Ordered, T any](id Timestamp[A], reference Timestamp[A]) Op[A, T] {
	return Op[A, T]{ID: id, Reference: &reference}
}

// IsDelete reports whether the op deletes its referenced entry.
func (o Op[A, T]) IsDelete() bool {
	return o.Value == nil
}

func (o Op[A, T]) String() string {
	ref := "root"
	if o.Reference != nil {
		ref = o.Reference.String()
	}
	if o.IsDelete() {
		return fmt.Sprintf("%s delete %s", o.ID, ref)
	}
	return fmt.Sprintf("%s insert %v after %s", o.ID, *o.Value, ref)
}

// LogEntry is one record in a chronofold's log: an inserted value or a
// tombstone, plus its causal metadata.
type LogEntry[A cmp.Ordered, T any] struct {
	ID        Timestamp[A]
	Reference *Timestamp[A]
	Value     *T
}
