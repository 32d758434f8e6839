// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package heap

import (
	"go.uber.org/zap"

	"github.com/skeeto/brianscheme/object"
)

// Collect runs one stop-the-world mark-and-relocate cycle (see
// §4.2), ported from baker_collect in original_source/gc.c. It returns
// the number of cells now free (the size of Active after the cycle).
//
// Objects never move in memory; "relocation" is list-membership
// transfer from Active to Old. The Old list doubles as its own scan
// queue: newly-moved objects land at its head and are scanned backward
// toward the tail, which is a breadth-first-ish order that needs no
// auxiliary buffer.
func (h *Heap) Collect() int64 {
	// 1. merge: Active now contains every object in the heap.
	appendToTail(&h.active, &h.old)

	// 2. advance color: no object carries currentColor yet.
	h.currentColor++

	// 3-5. mark and move everything reachable from a root.
	for _, ref := range h.roots.objs {
		h.moveReachable(*ref, &h.old)
	}

	// 6. finalize anything unreached that asked for it.
	for _, obj := range h.finalizable.objs {
		if obj.Color != h.currentColor {
			obj.Finalize()
		} else {
			h.finalizableNext.push(obj)
		}
	}

	// 7. swap the finalizable stacks and clear the new scratch.
	h.finalizable, h.finalizableNext = h.finalizableNext, h.finalizable
	h.finalizableNext.clear()

	// 8. advance color again so the next alloc's live color can't be
	// confused with this cycle's survivors.
	h.currentColor++

	// 9. recycle: Active now holds only unreached cells.
	h.nextFree = h.active.head
	freed := h.active.count

	h.logger.Debug("collection complete",
		zap.Int64("freed", freed), zap.Int64("live", h.old.count))

	return freed
}

// moveReachable is the traversal at the heart of Collect: move_reachable
// in original_source/gc.c. It colors root live, moves it from Active to
// toSet, then drains toSet as a queue (scanning backward via Prev)
// until every object reachable from root has been visited exactly once.
func (h *Heap) moveReachable(root *object.Object, toSet *list) {
	if root == nil || root.Color == h.currentColor {
		return
	}

	root.Color = h.currentColor
	moveToHead(root, &h.active, toSet)

	maybeMove := func(obj *object.Object) {
		if obj == nil || obj.Color == h.currentColor {
			return
		}
		moveToHead(obj, &h.active, toSet)
		obj.Color = h.currentColor
	}

	for scan := toSet.head; scan != nil; scan = scan.Prev {
		scan.ScanRefs(maybeMove)
	}
}
