// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package machine

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/skeeto/brianscheme/heap"
	"github.com/skeeto/brianscheme/object"
	"github.com/skeeto/brianscheme/vm"
)

// Machine bundles the object pool, the bytecode VM, and the symbol and
// global-environment tables a compiled program needs to run. It is not
// safe for concurrent use: the heap it owns is single-threaded and
// cooperative at the allocation boundary, exactly like the Heap it
// wraps.
type Machine struct {
	Heap    *heap.Heap
	VM      *vm.VM
	Symbols *SymbolTable
	Globals *GlobalEnv

	logger *zap.Logger
}

// New allocates a heap sized per cfg, wires up the default symbol table
// and global environment, registers the VM's builtin primitives
// (symbol->bytecode, bytecode->symbol, set-macro!), and returns a
// Machine ready to Execute compiled procedures.
func New(cfg Config) (*Machine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h, err := heap.NewHeap(heap.Config{
		InitialCells:     cfg.InitialHeapCells,
		HeapGrowthFactor: cfg.HeapGrowthFactor,
		Logger:           logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "machine: allocating heap")
	}

	globals := NewGlobalEnv(h)
	symbols := NewSymbolTable(h)

	machineVM, err := vm.New(h, globals, logger)
	if err != nil {
		return nil, errors.Wrap(err, "machine: initializing vm")
	}
	machineVM.RegisterBuiltins(symbols)

	return &Machine{
		Heap:    h,
		VM:      machineVM,
		Symbols: symbols,
		Globals: globals,
		logger:  logger,
	}, nil
}

// Apply invokes a compiled procedure with the given arguments, pushing
// them onto a freshly allocated value stack before handing off to the
// VM's dispatch loop. Arguments are pinned for the duration of the call
// so that an allocation triggered while building the call frame cannot
// invalidate them.
func (m *Machine) Apply(fn *object.Object, args ...*object.Object) (*object.Object, error) {
	h := m.Heap
	h.PushRoot(&fn)
	defer h.PopRoot(&fn)
	for i := range args {
		h.PushRoot(&args[i])
		defer h.PopRoot(&args[i])
	}

	stack := h.NewVector(len(args)+8, h.EmptyList)
	h.PushRoot(&stack)
	defer h.PopRoot(&stack)

	stackTop := 0
	for _, arg := range args {
		stackTop = m.pushArg(stack, stackTop, arg)
	}

	result, err := m.VM.Execute(fn, stack, stackTop, len(args))
	if err != nil {
		return nil, errors.Wrap(err, "machine: executing procedure")
	}
	return result, nil
}

func (m *Machine) pushArg(stack *object.Object, top int, val *object.Object) int {
	data := stack.VectorData()
	if top == len(data.Items) {
		grown := make([]*object.Object, len(data.Items)+8)
		copy(grown, data.Items)
		for i := len(data.Items); i < len(grown); i++ {
			grown[i] = m.Heap.EmptyList
		}
		data.Items = grown
	}
	data.Items[top] = val
	return top + 1
}
