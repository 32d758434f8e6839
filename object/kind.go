// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package object

// Kind tags the variant an Object cell currently holds. A cell's Kind can
// change across its lifetime: the same backing memory is reused by the
// allocator once an object becomes garbage, and set-macro! flips a
// CompiledProc to a CompiledSyntaxProc in place.
type Kind uint8

const (
	Pair Kind = iota
	Fixnum
	Character
	Boolean
	String
	Symbol
	Vector
	CompoundProc
	SyntaxProc
	CompiledProc
	CompiledSyntaxProc
	MetaProc
	PrimitiveProc
	HashTableKind
	EmptyListKind
)

func (k Kind) String() string {
	switch k {
	case Pair:
		return "pair"
	case Fixnum:
		return "fixnum"
	case Character:
		return "character"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case Vector:
		return "vector"
	case CompoundProc:
		return "compound-procedure"
	case SyntaxProc:
		return "syntax-procedure"
	case CompiledProc:
		return "compiled-procedure"
	case CompiledSyntaxProc:
		return "compiled-syntax-procedure"
	case MetaProc:
		return "meta-procedure"
	case PrimitiveProc:
		return "primitive-procedure"
	case HashTableKind:
		return "hash-table"
	case EmptyListKind:
		return "()"
	default:
		return "unknown-kind"
	}
}
