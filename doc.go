// Package chronofold implements a conflict-free replicated data structure
// (CRDT) for versioned sequences such as collaborative text.
//
// A chronofold is an append-only log of changes plus a derived total order
// called the weave. Replicas edit independently and exchange ops; any two
// replicas that have applied the same set of ops converge to an identical
// weave and render identical content, regardless of delivery order.
//
// The design follows the paper "Chronofold: a data structure for versioned
// text" by Victor Grishchenko and Mikhail Patrakeev
// (https://arxiv.org/abs/2002.09511).
//
// Local edits go through a Session, remote edits through Apply. The core is
// synchronous and single-threaded: callers sharing a Chronofold across
// goroutines must serialize access themselves. Apply never buffers ops whose
// causal dependencies are missing; delivery ordering is the caller's job
// (see the sync package for a ready-made delivery buffer).
package chronofold
