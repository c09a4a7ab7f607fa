package testdrop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/testdrop/pkg/errors"
	"github.com/arthur-debert/testdrop/pkg/testdrop"
	"github.com/arthur-debert/testdrop/pkg/testutil"
)

func TestScope(t *testing.T) {
	var escaped *testdrop.Item

	td := testdrop.Scope(func(td *testdrop.TestDrop) {
		_, a := td.NewItem()
		_, escaped = td.NewItem()
		a.Release()
		assert.False(t, td.Closed())
	})

	require.True(t, td.Closed())
	td.AssertDrop(0)
	td.AssertNoDrop(1)

	testutil.RequireDropPanic(t, errors.ErrRegistryClosed, escaped.Release)
	assert.Equal(t, 1, td.NumDroppedItems())
}

func TestScope_ClosesOnPanic(t *testing.T) {
	var inner *testdrop.TestDrop

	testutil.RequireDropPanic(t, errors.ErrNotDropped, func() {
		testdrop.Scope(func(td *testdrop.TestDrop) {
			inner = td
			id, _ := td.NewItem()
			td.AssertDrop(id)
		})
	})

	require.NotNil(t, inner)
	assert.True(t, inner.Closed())
}

func TestScope_AppliesOptions(t *testing.T) {
	td := testdrop.Scope(func(td *testdrop.TestDrop) {
		_, item := td.NewItem()
		dup := *item
		item.Release()

		got := testutil.RequireDropPanic(t, errors.ErrDoubleDrop, dup.Release)
		assert.Contains(t, got.Details, "first_drop")
	}, testdrop.WithCallerTracking(true))

	assert.Equal(t, 1, td.NumDroppedItems())
}

func TestTrack(t *testing.T) {
	td := testdrop.New()

	id := td.Track(func(id int, item *testdrop.Item) {
		assert.Equal(t, id, item.ID())
		td.AssertNoDrop(id)
	})

	td.AssertDrop(id)
	assert.Equal(t, 1, td.NumDroppedItems())
}

func TestTrack_ReleaseInsideIsDoubleDrop(t *testing.T) {
	td := testdrop.New()

	got := testutil.RequireDropPanic(t, errors.ErrDoubleDrop, func() {
		td.Track(func(_ int, item *testdrop.Item) {
			item.Release()
		})
	})

	assert.Equal(t, 0, got.Details["id"])
	assert.Equal(t, 1, td.NumDroppedItems())
}

func TestTrack_ReleasesWhenFnPanics(t *testing.T) {
	td := testdrop.New()

	r := testutil.CapturePanic(func() {
		td.Track(func(int, *testdrop.Item) {
			panic("boom")
		})
	})

	assert.Equal(t, "boom", r)
	td.AssertDrop(0)
}
