// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package heap

import "github.com/skeeto/brianscheme/object"

// The constructors below pair Alloc with an Init* call, mirroring how
// original_source/gc.c's alloc_object is always immediately followed by
// a type-specific initialization at its call sites (cons, make_vector,
// make_fixnum, ...). None of these allocate anything beyond the single
// cell; out-of-slab payloads (vector backing arrays, string buffers) are
// supplied by the caller or allocated here with Go's own allocator,
// which is fine — the GC this package implements only ever traces and
// frees payloads, it never allocates them.

func (h *Heap) NewPair(car, cdr *object.Object) *object.Object {
	return h.Alloc(false).InitPair(car, cdr)
}

func (h *Heap) NewFixnum(v int64) *object.Object {
	return h.Alloc(false).InitFixnum(v)
}

func (h *Heap) NewCharacter(v byte) *object.Object {
	return h.Alloc(false).InitCharacter(v)
}

// NewVector allocates a vector of size n, every slot initialized to
// fill (typically the Heap's EmptyList), matching make_vector's
// semantics in original_source.
func (h *Heap) NewVector(n int, fill *object.Object) *object.Object {
	items := make([]*object.Object, n)
	for i := range items {
		items[i] = fill
	}
	return h.Alloc(true).InitVector(&object.VectorData{Items: items})
}

func (h *Heap) NewVectorFrom(items []*object.Object) *object.Object {
	return h.Alloc(true).InitVector(&object.VectorData{Items: items})
}

func (h *Heap) NewString(s string) *object.Object {
	return h.Alloc(true).InitString(&object.StringData{Bytes: []byte(s)})
}

func (h *Heap) NewSymbol(name string) *object.Object {
	return h.Alloc(false).InitSymbol(&object.SymbolData{Name: name})
}

func (h *Heap) NewCompoundProc(env, params, body *object.Object) *object.Object {
	return h.Alloc(false).InitCompoundProc(env, params, body)
}

func (h *Heap) NewSyntaxProc(env, params, body *object.Object) *object.Object {
	return h.Alloc(false).InitSyntaxProc(env, params, body)
}

func (h *Heap) NewCompiledProc(bytecode, env *object.Object) *object.Object {
	return h.Alloc(false).InitCompiledProc(bytecode, env)
}

func (h *Heap) NewCompiledSyntaxProc(bytecode, env *object.Object) *object.Object {
	return h.Alloc(false).InitCompiledSyntaxProc(bytecode, env)
}

func (h *Heap) NewMetaProc(proc, meta *object.Object) *object.Object {
	return h.Alloc(false).InitMetaProc(proc, meta)
}

func (h *Heap) NewPrimitiveProc(fn object.PrimitiveFunc) *object.Object {
	return h.Alloc(false).InitPrimitiveProc(fn)
}

func (h *Heap) NewHashTable(t object.HashTable) *object.Object {
	return h.Alloc(true).InitHashTable(t)
}
