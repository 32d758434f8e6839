// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

// Package object defines the uniform tagged value every runtime datum is
// represented as. An Object is a fixed-shape cell: the
// fields below are the union of every variant's payload, the way the old
// Go compiler's Node struct (cmd/internal/gc) reused Left/Right/List
// across every Op. Which fields are meaningful is determined entirely by
// Kind; reading the wrong field for a Kind is a programming error in this
// package's callers, not something the type system catches — exactly the
// tradeoff the C source's tagged union makes.
package object

// Object is one cell of the heap's uniform object pool. Its identity is
// its address: two Objects are equal iff they are the same pointer.
// Prev/Next/Color are heap-list linkage and GC mark state, owned and
// mutated by package heap; nothing in this package reads them.
type Object struct {
	Kind  Kind
	Color uint8

	Prev, Next *Object

	// ref0, ref1, ref2 hold the object-reference payload, meaning
	// dependent on Kind:
	//   Pair                          ref0=car  ref1=cdr
	//   CompoundProc / SyntaxProc     ref0=env  ref1=params  ref2=body
	//   CompiledProc / CompiledSyntaxProc  ref0=bytecode  ref1=env
	//   MetaProc                      ref0=proc ref1=meta
	ref0, ref1, ref2 *Object

	fixnum int64
	char   byte
	bval   bool

	str  *StringData
	vec  *VectorData
	sym  *SymbolData
	prim PrimitiveFunc
	hash HashTable
}

// --- Pair ---

func (o *Object) Car() *Object { return o.ref0 }
func (o *Object) Cdr() *Object { return o.ref1 }
func (o *Object) SetCar(v *Object) { o.ref0 = v }
func (o *Object) SetCdr(v *Object) { o.ref1 = v }

// --- Fixnum / Character / Boolean ---

func (o *Object) Fixnum() int64    { return o.fixnum }
func (o *Object) Character() byte  { return o.char }
func (o *Object) Bool() bool       { return o.bval }

// --- String ---

func (o *Object) StringData() *StringData { return o.str }

// --- Symbol ---

func (o *Object) Symbol() *SymbolData { return o.sym }

// --- Vector ---

func (o *Object) VectorData() *VectorData { return o.vec }
func (o *Object) VectorLen() int          { return len(o.vec.Items) }

// --- Compound / syntax procedures (uncompiled) ---

func (o *Object) CompoundEnv() *Object    { return o.ref0 }
func (o *Object) CompoundParams() *Object { return o.ref1 }
func (o *Object) CompoundBody() *Object   { return o.ref2 }

// --- Compiled procedures ---

func (o *Object) Bytecode() *Object { return o.ref0 }
func (o *Object) Env() *Object      { return o.ref1 }

// --- Meta procedures ---

func (o *Object) MetaProc() *Object { return o.ref0 }
func (o *Object) MetaData() *Object { return o.ref1 }

// --- Primitive procedures ---

func (o *Object) Primitive() PrimitiveFunc { return o.prim }

// --- Hash tables ---

func (o *Object) HashTable() HashTable { return o.hash }

// Init* functions below reinitialize an already-allocated cell (handed
// back by heap.Alloc) into a specific variant. They never allocate
// memory themselves; allocation is exclusively the heap package's job.

func (o *Object) InitPair(car, cdr *Object) *Object {
	o.Kind, o.ref0, o.ref1 = Pair, car, cdr
	return o
}

func (o *Object) InitFixnum(v int64) *Object {
	o.Kind, o.fixnum = Fixnum, v
	return o
}

func (o *Object) InitCharacter(v byte) *Object {
	o.Kind, o.char = Character, v
	return o
}

func (o *Object) InitBoolean(v bool) *Object {
	o.Kind, o.bval = Boolean, v
	return o
}

func (o *Object) InitString(data *StringData) *Object {
	o.Kind, o.str = String, data
	return o
}

func (o *Object) InitSymbol(data *SymbolData) *Object {
	o.Kind, o.sym = Symbol, data
	return o
}

func (o *Object) InitVector(data *VectorData) *Object {
	o.Kind, o.vec = Vector, data
	return o
}

func (o *Object) InitCompoundProc(env, params, body *Object) *Object {
	o.Kind, o.ref0, o.ref1, o.ref2 = CompoundProc, env, params, body
	return o
}

func (o *Object) InitSyntaxProc(env, params, body *Object) *Object {
	o.Kind, o.ref0, o.ref1, o.ref2 = SyntaxProc, env, params, body
	return o
}

func (o *Object) InitCompiledProc(bytecode, env *Object) *Object {
	o.Kind, o.ref0, o.ref1 = CompiledProc, bytecode, env
	return o
}

func (o *Object) InitCompiledSyntaxProc(bytecode, env *Object) *Object {
	o.Kind, o.ref0, o.ref1 = CompiledSyntaxProc, bytecode, env
	return o
}

func (o *Object) InitMetaProc(proc, meta *Object) *Object {
	o.Kind, o.ref0, o.ref1 = MetaProc, proc, meta
	return o
}

func (o *Object) InitPrimitiveProc(fn PrimitiveFunc) *Object {
	o.Kind, o.prim = PrimitiveProc, fn
	return o
}

func (o *Object) InitHashTable(h HashTable) *Object {
	o.Kind, o.hash = HashTableKind, h
	return o
}

func (o *Object) InitEmptyList() *Object {
	o.Kind = EmptyListKind
	return o
}

// SetMacro flips a CompiledProc to CompiledSyntaxProc in place, the
// runtime effect of the set-macro! primitive.
func (o *Object) SetMacro() {
	if o.Kind == CompiledProc {
		o.Kind = CompiledSyntaxProc
	}
}

// ScanRefs calls visit once for every object reference this cell holds.
// FIXNUM, CHARACTER, BOOLEAN, STRING, SYMBOL and EmptyListKind hold no
// object references (string/symbol text lives out-of-slab) and are
// simply not listed below — there is no default/fall-through case,
// unlike original_source/gc.c's HASH_TABLE case, which accidentally
// fell through into the default branch.
func (o *Object) ScanRefs(visit func(*Object)) {
	switch o.Kind {
	case Pair:
		visit(o.ref0)
		visit(o.ref1)
	case CompoundProc, SyntaxProc:
		visit(o.ref0)
		visit(o.ref1)
		visit(o.ref2)
	case Vector:
		for _, item := range o.vec.Items {
			visit(item)
		}
	case CompiledProc, CompiledSyntaxProc:
		visit(o.ref0)
		visit(o.ref1)
	case MetaProc:
		visit(o.ref0)
		visit(o.ref1)
	case HashTableKind:
		o.hash.Iterate(func(key, val *Object) bool {
			visit(key)
			visit(val)
			return true
		})
	}
}

// Finalize releases out-of-slab resources associated with a cell the
// collector has determined to be unreached. It is the Go analogue of
// finalize_object in original_source/gc.c.
func (o *Object) Finalize() {
	switch o.Kind {
	case String:
		o.str = nil
	case Vector:
		o.vec = nil
	case HashTableKind:
		if o.hash != nil {
			o.hash.Destroy()
		}
		o.hash = nil
	}
}
