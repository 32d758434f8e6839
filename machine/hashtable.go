// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package machine

import "github.com/skeeto/brianscheme/object"

// HashTable is a minimal map-backed object.HashTable, the out-of-slab
// handle a HASH_TABLE cell points at. It exists so a hash-table-typed
// Scheme value has somewhere to live; it is not meant to be a
// full-featured hashtable implementation (no custom equality, no
// resizing policy worth naming).
type HashTable struct {
	entries map[*object.Object]*object.Object
}

func NewHashTable() *HashTable {
	return &HashTable{entries: make(map[*object.Object]*object.Object)}
}

func (t *HashTable) Get(key *object.Object) (*object.Object, bool) {
	v, ok := t.entries[key]
	return v, ok
}

func (t *HashTable) Set(key, val *object.Object) {
	t.entries[key] = val
}

func (t *HashTable) Delete(key *object.Object) {
	delete(t.entries, key)
}

func (t *HashTable) Len() int { return len(t.entries) }

// Iterate visits every entry; the collector uses this to trace keys and
// values reachable only through this table.
func (t *HashTable) Iterate(visit func(key, val *object.Object) bool) {
	for k, v := range t.entries {
		if !visit(k, v) {
			return
		}
	}
}

// Destroy drops this table's references so the Go garbage collector can
// reclaim the backing map once the collector has determined the owning
// Object cell is unreached.
func (t *HashTable) Destroy() {
	t.entries = nil
}
