package chronofold

import "cmp"

// Version is a vector clock recording, per author, the greatest sequence
// number this replica has applied. Versions only partially order: two
// replicas that each hold edits the other has not seen are concurrent.
type Version[A cmp.Ordered] map[A]uint64

// NewVersion constructs a new, empty version.
func NewVersion[A cmp.Ordered]() Version[A] {
	return make(Version[A])
}

// Get returns the greatest applied sequence number for author, or 0 if no
// op by that author has been applied.
func (v Version[A]) Get(author A) uint64 {
	return v[author]
}

// Inc advances the version to include the given timestamp.
func (v Version[A]) Inc(ts Timestamp[A]) {
	if ts.Seq > v[ts.Author] {
		v[ts.Author] = ts.Seq
	}
}

// Includes reports whether the version covers the given timestamp.
func (v Version[A]) Includes(ts Timestamp[A]) bool {
	return ts.Seq <= v[ts.Author]
}

// Dominates reports whether v covers everything other covers.
func (v Version[A]) Dominates(other Version[A]) bool {
	for author, seq := range other {
		if v[author] < seq {
			return false
		}
	}
	return true
}

// Equal reports whether both versions cover exactly the same edits.
func (v Version[A]) Equal(other Version[A]) bool {
	return v.Dominates(other) && other.Dominates(v)
}

// Concurrent reports whether the versions each cover edits the other does not.
func (v Version[A]) Concurrent(other Version[A]) bool {
	return !v.Dominates(other) && !other.Dominates(v)
}

// Clone returns an independent copy of the version.
func (v Version[A]) Clone() Version[A] {
	out := make(Version[A], len(v))
	for author, seq := range v {
		out[author] = seq
	}
	return out
}
