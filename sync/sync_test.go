package sync_test

import (
	"testing"

	"github.com/nasdf/chronofold"
	csync "github.com/nasdf/chronofold/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReordererOutOfOrderDelivery(t *testing.T) {
	source := chronofold.New[string, rune]()
	sess := source.Session("alice")
	require.NoError(t, sess.Extend([]rune("hello")...))
	require.NoError(t, sess.Remove(0))
	_, err := sess.InsertAfter(4, '!')
	require.NoError(t, err)

	var ops []chronofold.Op[string, rune]
	for it := source.AllOps(); !it.Done(); {
		ops = append(ops, it.Next())
	}

	// Deliver in reverse order: every op but the first arrives before its
	// reference and must be parked.
	target := chronofold.New[string, rune]()
	r := csync.NewReorderer(target)
	for i := len(ops) - 1; i > 0; i-- {
		require.NoError(t, r.Deliver(ops[i]))
	}
	assert.Equal(t, len(ops)-1, r.Pending())
	assert.True(t, target.IsEmpty())

	// The first op unblocks the rest.
	require.NoError(t, r.Deliver(ops[0]))
	assert.Zero(t, r.Pending())
	assert.Equal(t, source.String(), target.String())
	assert.True(t, source.Version().Equal(target.Version()))
}

func TestReordererDuplicates(t *testing.T) {
	source := chronofold.New[string, rune]()
	require.NoError(t, source.Session("alice").Extend([]rune("dup")...))

	target := chronofold.New[string, rune]()
	r := csync.NewReorderer(target)
	for it := source.AllOps(); !it.Done(); {
		op := it.Next()
		require.NoError(t, r.Deliver(op))
		require.NoError(t, r.Deliver(op))
	}
	assert.Zero(t, r.Pending())
	assert.Equal(t, "dup", target.String())
}

func TestDiff(t *testing.T) {
	fold := chronofold.New[string, rune]()
	require.NoError(t, fold.Session("alice").Extend([]rune("abc")...))
	v := fold.Version()
	require.NoError(t, fold.Session("bob").Extend([]rune("de")...))

	assert.Empty(t, csync.Diff(fold, fold.Version()))

	delta := csync.Diff(fold, v)
	require.Len(t, delta, 2)
	assert.Equal(t, "bob", delta[0].ID.Author)
	assert.Equal(t, "bob", delta[1].ID.Author)
}

func TestExchangeConverges(t *testing.T) {
	foldA := chronofold.New[string, rune]()
	require.NoError(t, foldA.Session("alice").Extend([]rune("base")...))
	foldB := foldA.Clone()

	require.NoError(t, foldA.Session("alice").Extend([]rune(" left")...))
	sessB := foldB.Session("bob")
	_, err := sessB.PushFront('>')
	require.NoError(t, err)

	require.NoError(t, csync.Exchange(foldA, foldB))

	assert.Equal(t, foldA.String(), foldB.String())
	assert.Equal(t, ">base left", foldA.String())
	assert.True(t, foldA.Version().Equal(foldB.Version()))

	// A second exchange has nothing left to do.
	require.NoError(t, csync.Exchange(foldA, foldB))
	assert.Equal(t, ">base left", foldB.String())
}
