// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package heap

import (
	"go.uber.org/zap"

	"github.com/skeeto/brianscheme/object"
)

// Alloc returns the next free cell, colors it live, and optionally
// queues it for finalization. If the pool is exhausted a
// collection runs first; if that collection doesn't free enough the
// heap is extended. Alloc never returns nil: exhaustion is fatal and
// Alloc panics with the *FatalError that AllocOrDie would have
// returned.
func (h *Heap) Alloc(needsFinalization bool) *object.Object {
	obj, err := h.AllocOrDie(needsFinalization)
	if err != nil {
		panic(err)
	}
	return obj
}

// AllocOrDie is Alloc without the panic: exhaustion comes back as an
// error return, so a caller can recover instead of crashing the
// process. Alloc is built on it; the constructors in this package and
// package vm call Alloc.
func (h *Heap) AllocOrDie(needsFinalization bool) (*object.Object, error) {
	if h.nextFree == nil {
		h.logger.Debug("heap exhausted, collecting")
		freed := h.Collect()

		if freed == 0 || h.nextExtension/freed > minFreedRatio {
			h.logger.Debug("collection did not free enough, extending heap",
				zap.Int64("freed", freed), zap.Int64("extension", h.nextExtension))
			if err := h.extendHeap(h.nextExtension); err != nil {
				return nil, err
			}
			h.nextExtension *= h.growthFactor
		}

		if h.nextFree == nil {
			return nil, newFatal(ExitHeapExtensionFailed, "extend_heap didn't work")
		}
	}

	obj := h.nextFree
	obj.Color = h.currentColor

	if needsFinalization {
		h.finalizable.push(obj)
	}

	h.nextFree = obj.Next
	h.allocCount++

	return obj, nil
}

// extendHeap allocates n raw cells, threads them into a doubly-linked
// chain, and prepends that chain to the Active list. It assumes the
// heap has already been scavenged for live objects, matching
// original_source/gc.c's comment on extend_heap.
func (h *Heap) extendHeap(n int64) error {
	if n <= 0 {
		return newFatal(ExitHeapExtensionFailed, "extend_heap: non-positive extension")
	}

	cells := make([]object.Object, n)
	for i := range cells {
		cells[i].Color = h.currentColor
		if i > 0 {
			cells[i].Prev = &cells[i-1]
		}
		if i < len(cells)-1 {
			cells[i].Next = &cells[i+1]
		}
	}

	prependChain(&h.active, &cells[0], &cells[len(cells)-1], n)
	h.nextFree = &cells[0]

	return nil
}
