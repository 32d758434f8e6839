// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package heap

import "github.com/skeeto/brianscheme/object"

// rootStack is a growable stack of addresses of object references
// a pointer to a variable holding a reference: **object.Object, not
// *object.Object. Storing the
// address rather than the value means that if the referent's list
// membership and color change under it during a collection, the native
// local the address points at still observes the live object directly
// — it never needs updating because objects never move in memory.
type rootStack struct {
	objs []**object.Object
}

func newRootStack(initial int) rootStack {
	return rootStack{objs: make([]**object.Object, 0, initial)}
}

func (s *rootStack) push(ref **object.Object) {
	s.objs = append(s.objs, ref)
}

// pop implements stack_set_pop from original_source/gc.c: the fast path
// checks the top of the stack; on an out-of-order pop it scans downward,
// rotating entries as it goes, so the common nested push/pop discipline
// stays O(1) and only LIFO violations pay the linear cost. Returns false
// if ref was never pushed.
func (s *rootStack) pop(ref **object.Object) bool {
	top := len(s.objs) - 1
	if s.objs[top] == ref {
		s.objs = s.objs[:top]
		return true
	}

	last := s.objs[top]
	found := false
	for idx := top - 1; idx >= 0; idx-- {
		if s.objs[idx] == ref {
			found = true
		}
		s.objs[idx], last = last, s.objs[idx]
		if found {
			break
		}
	}
	s.objs = s.objs[:top]
	return found
}

// PushRoot registers the address of an object reference as live, per
// the pinning contract above. Returns the dereferenced value
// for convenience, matching original_source/gc.c's push_root.
func (h *Heap) PushRoot(ref **object.Object) *object.Object {
	h.roots.push(ref)
	return *ref
}

// PopRoot unregisters a previously pushed root. A root that cannot be
// found is fatal — it indicates a root-stack imbalance bug in the
// caller.
func (h *Heap) PopRoot(ref **object.Object) {
	if !h.roots.pop(ref) {
		panic(newFatal(ExitRootStackImbalance, "pop_root: object not found"))
	}
}

// Pin is ergonomic sugar over PushRoot/PopRoot for the common "read a
// reference, maybe allocate, use it" pattern.
// Callers write:
//
//	obj := someValue
//	defer h.Pin(&obj)()
//
// which pins obj for the remainder of the enclosing scope. It does not
// replace PushRoot/PopRoot — those remain the primitive, and the VM's
// own dispatch loop uses them directly so that pins can be scoped to
// sub-regions of a single opcode's handling rather than a whole
// function call.
func (h *Heap) Pin(ref **object.Object) func() {
	h.PushRoot(ref)
	return func() { h.PopRoot(ref) }
}
