// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package object

// StringData is the out-of-slab mutable byte buffer a String cell
// points at. It is finalizable: when its owning Object is unreached the
// collector drops this reference to let the Go GC reclaim it.
type StringData struct {
	Bytes []byte
}

// VectorData is the out-of-slab array of object references a Vector
// cell points at. Frames and the value stack are both plain Vector
// cells, so the collector never needs a special case for either one.
type VectorData struct {
	Items []*Object
}

// SymbolData is the interned-name handle a Symbol cell points at. Symbol
// identity is Object pointer identity; the name is carried only for
// printing and for the external SymbolTable's own bookkeeping.
type SymbolData struct {
	Name string
}
