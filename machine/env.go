// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package machine

import (
	"github.com/skeeto/brianscheme/heap"
	"github.com/skeeto/brianscheme/object"
)

// GlobalEnv is a map-backed object.GlobalEnv: symbol identity (the
// interned *Object pointer) is the key, exactly as lookup_global_value
// and define_global_variable treat it in original_source/interp.c.
// Every defined value is pinned for as long as it remains the current
// binding; redefining a symbol releases the previous value's pin before
// installing the new one.
type GlobalEnv struct {
	h      *heap.Heap
	vals   map[*object.Object]*object.Object
	unpins map[*object.Object]func()
}

func NewGlobalEnv(h *heap.Heap) *GlobalEnv {
	return &GlobalEnv{
		h:      h,
		vals:   make(map[*object.Object]*object.Object),
		unpins: make(map[*object.Object]func()),
	}
}

func (e *GlobalEnv) Lookup(sym *object.Object) (*object.Object, bool) {
	v, ok := e.vals[sym]
	return v, ok
}

func (e *GlobalEnv) Define(sym *object.Object, val *object.Object) {
	if unpin, ok := e.unpins[sym]; ok {
		unpin()
	}
	e.vals[sym] = val
	e.unpins[sym] = e.h.Pin(&val)
}
