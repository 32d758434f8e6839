// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

// Package heap implements the uniform object pool, its allocator, and
// the mark-and-relocate collector. It is a direct port of
// original_source/gc.c, laid out the way the Go runtime splits
// runtime/mcache.go (per-allocator bookkeeping) from runtime/mgc.go
// (the collection algorithm) into separate files of one package rather
// than separate packages — the two are too tightly coupled to usefully
// split further.
package heap

import (
	"go.uber.org/zap"

	"github.com/skeeto/brianscheme/object"
)

// defaultInitialCells mirrors original_source/gc.c's gc_init, which
// calls extend_heap(1000) before anything else runs.
const defaultInitialCells = 1000

// defaultGrowthFactor mirrors Next_Heap_Extension *= 3 in
// original_source/gc.c's alloc_object.
const defaultGrowthFactor = 3

// minFreedRatio is the heuristic original_source/gc.c leaves as a bare
// "Next_Heap_Extension / freed > 2" with no accompanying rationale.
// The policy: if the pending extension size is more than this many
// times the number of cells a collection just freed (integer division),
// or the collection freed nothing, the collection is judged not to have
// freed enough and the heap is extended as well.
const minFreedRatio = 2

// Config parameterizes a Heap. Zero values are replaced with the
// defaults above, so callers only need to set what they care about.
type Config struct {
	InitialCells     int64
	HeapGrowthFactor int64
	Logger           *zap.Logger
}

// Heap owns the object pool, both heap lists, the root stack, and the
// finalizable stacks. It is not safe for concurrent use — this runtime
// is single-threaded and cooperative at the allocation boundary.
type Heap struct {
	active, old list

	nextFree      *object.Object
	currentColor  uint8
	nextExtension int64
	growthFactor  int64
	allocCount    int64

	roots              rootStack
	finalizable        finalizableStack
	finalizableNext    finalizableStack

	logger *zap.Logger

	// EmptyList, True, and False are the distinguished singletons every
	// scheme value model needs, and EmptyVector is the shared zero-length
	// frame. They are ordinary pool cells like any other, so NewHeap pins
	// all four permanently on the root stack — without
	// that they would eventually be judged garbage and handed back out
	// by Alloc like any other reclaimed cell.
	EmptyList   *object.Object
	True        *object.Object
	False       *object.Object
	EmptyVector *object.Object
}

// NewHeap allocates the initial backing slab and the singleton objects.
func NewHeap(cfg Config) (*Heap, error) {
	initial := cfg.InitialCells
	if initial <= 0 {
		initial = defaultInitialCells
	}
	growth := cfg.HeapGrowthFactor
	if growth <= 0 {
		growth = defaultGrowthFactor
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Heap{
		nextExtension: initial,
		growthFactor:  growth,
		logger:        logger,
	}

	if err := h.extendHeap(initial); err != nil {
		return nil, err
	}
	h.nextFree = h.active.head

	h.roots = newRootStack(400)
	h.finalizable = newFinalizableStack(400)
	h.finalizableNext = newFinalizableStack(400)

	h.EmptyList = h.Alloc(false).InitEmptyList()
	h.True = h.Alloc(false).InitBoolean(true)
	h.False = h.Alloc(false).InitBoolean(false)
	h.EmptyVector = h.Alloc(false).InitVector(&object.VectorData{Items: nil})

	h.PushRoot(&h.EmptyList)
	h.PushRoot(&h.True)
	h.PushRoot(&h.False)
	h.PushRoot(&h.EmptyVector)

	return h, nil
}

// AllocCount returns the total number of cells ever handed out by
// Alloc, used by the heap invariant property tests.
func (h *Heap) AllocCount() int64 { return h.allocCount }

// ActiveCount and OldCount expose the two heap lists' lengths for
// property tests; production code has no need to inspect them.
func (h *Heap) ActiveCount() int64 { return h.active.count }
func (h *Heap) OldCount() int64    { return h.old.count }
