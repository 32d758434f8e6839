// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skeeto/brianscheme/object"
)

func newTestHeap(t *testing.T, initial int64) *Heap {
	t.Helper()
	h, err := NewHeap(Config{InitialCells: initial})
	require.NoError(t, err)
	return h
}

// validateList asserts the list's structural invariants: head's
// prev is nil, tail's next is nil, and a head-to-tail walk yields
// exactly count nodes ending at tail.
func validateList(t *testing.T, l *list) {
	t.Helper()
	if l.head == nil {
		require.Nil(t, l.tail)
		require.Zero(t, l.count)
		return
	}
	require.Nil(t, l.head.Prev)
	require.Nil(t, l.tail.Next)

	var n int64
	node := l.head
	for node != nil {
		n++
		if node.Next == nil {
			require.Same(t, l.tail, node)
		}
		node = node.Next
	}
	require.Equal(t, l.count, n)
}

func TestAllocAdvancesAndColorsLive(t *testing.T) {
	h := newTestHeap(t, 8)
	before := h.active.count

	obj := h.Alloc(false)
	require.Equal(t, h.currentColor, obj.Color)
	// Alloc only moves nextFree past the cell; it stays on Active.
	require.Equal(t, before, h.active.count)
	// NewHeap's four singletons plus this one.
	require.Equal(t, int64(5), h.AllocCount())
}

func TestAllocPlusOldEqualsTotalAllocated(t *testing.T) {
	h := newTestHeap(t, 32)
	for i := 0; i < 20; i++ {
		h.NewPair(h.EmptyList, h.EmptyList)
	}
	// 24 cells handed out of 32, so no collection or extension ran and
	// the two lists together still hold exactly the initial slab.
	require.Equal(t, int64(32), h.ActiveCount()+h.OldCount())
}

func TestListInvariantsHoldAfterAlloc(t *testing.T) {
	h := newTestHeap(t, 16)
	for i := 0; i < 10; i++ {
		h.NewFixnum(int64(i))
	}
	validateList(t, &h.active)
	validateList(t, &h.old)
}

func TestExtendHeapGrowsByConfiguredFactor(t *testing.T) {
	h := newTestHeap(t, 4)
	h.nextExtension = 10
	h.growthFactor = 3
	require.NoError(t, h.extendHeap(h.nextExtension))
	h.nextExtension *= h.growthFactor
	require.Equal(t, int64(30), h.nextExtension)
}

func TestAllocTriggersCollectionWhenExhausted(t *testing.T) {
	h := newTestHeap(t, 4) // 4 cells minus 4 singletons leaves none free
	var anchor *object.Object = h.EmptyList
	h.PushRoot(&anchor)
	defer h.PopRoot(&anchor)

	for i := 0; i < 500; i++ {
		anchor = h.NewPair(h.EmptyList, anchor)
	}

	// the chain must still be walkable after however many collections fired
	n := 0
	for cur := anchor; cur != h.EmptyList; cur = cur.Cdr() {
		n++
	}
	require.Equal(t, 500, n)
}

func TestPushPopRootLIFO(t *testing.T) {
	h := newTestHeap(t, 8)
	a := h.NewFixnum(1)
	b := h.NewFixnum(2)

	h.PushRoot(&a)
	h.PushRoot(&b)
	h.PopRoot(&b)
	h.PopRoot(&a)
}

func TestPopRootOutOfOrderToleratesRotation(t *testing.T) {
	h := newTestHeap(t, 8)
	a := h.NewFixnum(1)
	b := h.NewFixnum(2)
	c := h.NewFixnum(3)

	h.PushRoot(&a)
	h.PushRoot(&b)
	h.PushRoot(&c)

	// pop the middle entry out of LIFO order
	h.PopRoot(&b)
	h.PopRoot(&c)
	h.PopRoot(&a)
}

func TestPopRootMissingEntryPanics(t *testing.T) {
	h := newTestHeap(t, 8)
	a := h.NewFixnum(1)
	require.Panics(t, func() {
		h.PopRoot(&a)
	})
}
