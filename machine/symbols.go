// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package machine

import (
	"github.com/skeeto/brianscheme/heap"
	"github.com/skeeto/brianscheme/object"
)

// SymbolTable interns names into pool-allocated Symbol cells keyed by
// name, so that two Interns of the same name return the same *Object
// pointer. Interned symbols are pinned for the lifetime of the table —
// there is no mechanism to uninternal a name, matching how a real
// reader's symbol table never forgets a name either.
type SymbolTable struct {
	h      *heap.Heap
	byName map[string]*object.Object
}

func NewSymbolTable(h *heap.Heap) *SymbolTable {
	return &SymbolTable{h: h, byName: make(map[string]*object.Object)}
}

func (s *SymbolTable) Intern(name string) *object.Object {
	if sym, ok := s.byName[name]; ok {
		return sym
	}
	sym := s.h.NewSymbol(name)
	s.h.PushRoot(&sym)
	s.byName[name] = sym
	return sym
}
