// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

// Package machine wires together the object pool, the collector, and
// the bytecode VM into a single runnable interpreter core, and supplies
// the minimal default GlobalEnv, SymbolTable, and HashTable
// implementations the demo binary and tests need to drive it end to
// end. None of these defaults claim to be a production symbol table or
// hashtable subsystem — a real reader/compiler front end would likely
// bring its own.
package machine

import "go.uber.org/zap"

// Config parameterizes a Machine. Zero values fall back to heap.Config's
// own defaults, so callers only need to set what they care about.
type Config struct {
	InitialHeapCells int64
	HeapGrowthFactor int64
	Logger           *zap.Logger
}
