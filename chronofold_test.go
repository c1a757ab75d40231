package chronofold_test

import (
	"testing"

	"github.com/nasdf/chronofold"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelloChronofold(t *testing.T) {
	// Alice creates a chronofold on her machine, makes some initial changes
	// and sends a copy to Bob.
	foldA := chronofold.New[string, rune]()
	require.NoError(t, foldA.Session("alice").Extend([]rune("Hello chronfold!")...))
	foldB := foldA.Clone()

	// Alice adds some more text, ...
	sessA := foldA.Session("alice")
	require.NoError(t, sessA.Splice(15, 15, []rune(" - a data structure for versioned text")...))
	opsA := sessA.Ops()

	// ... while Bob fixes a typo.
	sessB := foldB.Session("bob")
	_, err := sessB.InsertAfter(10, 'o')
	require.NoError(t, err)
	opsB := sessB.Ops()

	// Their states have diverged.
	assert.Equal(t, "Hello chronfold - a data structure for versioned text!", foldA.String())
	assert.Equal(t, "Hello chronofold!", foldB.String())

	// As soon as both have seen all ops, their states have converged.
	for _, op := range opsA {
		require.NoError(t, foldB.Apply(op))
	}
	for _, op := range opsB {
		require.NoError(t, foldA.Apply(op))
	}
	final := "Hello chronofold - a data structure for versioned text!"
	assert.Equal(t, final, foldA.String())
	assert.Equal(t, final, foldB.String())
}

func TestCloneIsIndependent(t *testing.T) {
	fold := chronofold.New[string, rune]()
	require.NoError(t, fold.Session("alice").Extend([]rune("shared")...))

	clone := fold.Clone()
	require.NoError(t, fold.Session("alice").Extend([]rune(" tail")...))

	assert.Equal(t, "shared tail", fold.String())
	assert.Equal(t, "shared", clone.String())
	assert.True(t, fold.Version().Dominates(clone.Version()))
	assert.False(t, clone.Version().Dominates(fold.Version()))
}

func TestRoundTripToEmptyReplica(t *testing.T) {
	fold := chronofold.New[string, rune]()
	sess := fold.Session("alice")
	require.NoError(t, sess.Extend([]rune("round trip!")...))
	require.NoError(t, sess.Remove(5))
	_, err := sess.InsertAfter(4, '-')
	require.NoError(t, err)

	fresh := chronofold.New[string, rune]()
	for it := fold.AllOps(); !it.Done(); {
		require.NoError(t, fresh.Apply(it.Next()))
	}
	assert.Equal(t, fold.String(), fresh.String())
	assert.True(t, fold.Version().Equal(fresh.Version()))
}

func TestGetEntryIndexOf(t *testing.T) {
	fold := chronofold.New[string, rune]()
	require.NoError(t, fold.Session("alice").Extend([]rune("abc")...))

	v, err := fold.Get(1)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 'b', *v)

	e, err := fold.Entry(1)
	require.NoError(t, err)
	assert.Equal(t, chronofold.Timestamp[string]{Author: "alice", Seq: 2}, e.ID)
	require.NotNil(t, e.Reference)
	assert.Equal(t, chronofold.Timestamp[string]{Author: "alice", Seq: 1}, *e.Reference)

	idx, err := fold.IndexOf(chronofold.Timestamp[string]{Author: "alice", Seq: 2})
	require.NoError(t, err)
	assert.Equal(t, chronofold.LogIndex(1), idx)

	_, err = fold.Get(5)
	assert.ErrorIs(t, err, chronofold.ErrOutOfBounds)

	_, err = fold.IndexOf(chronofold.Timestamp[string]{Author: "carol", Seq: 1})
	assert.ErrorIs(t, err, chronofold.ErrUnknownTimestamp)
}

func TestLenCountsVisibleElements(t *testing.T) {
	fold := chronofold.New[string, rune]()
	assert.True(t, fold.IsEmpty())
	assert.Equal(t, 0, fold.Len())

	sess := fold.Session("alice")
	require.NoError(t, sess.Extend([]rune("len")...))
	idx, err := sess.PushBack('?')
	require.NoError(t, err)
	require.NoError(t, sess.Remove(idx))

	assert.Equal(t, 3, fold.Len())
	assert.False(t, fold.IsEmpty())
	assert.Equal(t, "len", fold.String())
}

func TestCommutativity(t *testing.T) {
	base := chronofold.New[string, rune]()
	require.NoError(t, base.Session("alice").Extend([]rune("ab")...))

	cloneB := base.Clone()
	sessB := cloneB.Session("bob")
	_, err := sessB.InsertAfter(0, 'X')
	require.NoError(t, err)
	opX := sessB.Ops()[0]

	cloneC := base.Clone()
	sessC := cloneC.Session("carol")
	_, err = sessC.InsertAfter(0, 'Y')
	require.NoError(t, err)
	opY := sessC.Ops()[0]

	fold1 := base.Clone()
	require.NoError(t, fold1.Apply(opX))
	require.NoError(t, fold1.Apply(opY))

	fold2 := base.Clone()
	require.NoError(t, fold2.Apply(opY))
	require.NoError(t, fold2.Apply(opX))

	// Both inserts carry the same sequence number, so the author order
	// decides: carol's edit weaves first.
	assert.Equal(t, "aYXb", fold1.String())
	assert.Equal(t, "aYXb", fold2.String())
}

func TestInsertAfterKeepsSubtreeOrder(t *testing.T) {
	fold := chronofold.New[string, rune]()
	sess := fold.Session("alice")
	require.NoError(t, sess.Extend([]rune("013")...))
	_, err := fold.Session("alice").InsertAfter(1, '2')
	require.NoError(t, err)
	assert.Equal(t, "0123", fold.String())
}
