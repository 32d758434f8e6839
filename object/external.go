// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package object

// The interfaces below are the contracts this core consumes from its
// collaborators (the surface-syntax reader, the compiler, symbol
// interning, and hashtable internals). This package only declares the
// shape; concrete implementations live outside the core (see package
// machine for minimal defaults used by the demo binary and tests).

// GlobalEnv is the global symbol -> value mapping the VM's gvar/gset
// opcodes consult. Its internals (hashing, collision handling, whatever
// storage backs it) are out of scope for this core.
type GlobalEnv interface {
	Lookup(sym *Object) (*Object, bool)
	Define(sym *Object, val *Object)
}

// SymbolTable interns symbol names into stable *Object references so
// that symbol identity equals pointer identity. Out of scope: how names
// are hashed or deduplicated internally.
type SymbolTable interface {
	Intern(name string) *Object
}

// HashTable is the out-of-slab handle a HashTableKind cell wraps. Out of
// scope: hashtable internals (bucket layout, resizing, hash function).
// The collector only needs to walk entries and to destroy the handle
// when the wrapping Object is unreached.
type HashTable interface {
	Iterate(visit func(key, val *Object) bool)
	Destroy()
}

// PrimitiveFunc is the native calling convention the VM uses to invoke
// primitives: a primitive reads its n arguments out of stack[stackTop-n : stackTop]
// and returns exactly one value. It may allocate; if it needs an object
// reference to survive an allocation it must pin it itself (see
// heap.PushRoot / heap.Pin).
type PrimitiveFunc func(stack []*Object, nArgs int, stackTop int) *Object
