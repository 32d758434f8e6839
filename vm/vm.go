// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package vm

import (
	"go.uber.org/zap"

	"github.com/skeeto/brianscheme/heap"
	"github.com/skeeto/brianscheme/object"
)

// VM is the bytecode interpreter: the object-pool-backed analogue of
// vm_execute and its supporting tables in original_source/vm.c.
type VM struct {
	heap       *heap.Heap
	globalEnv  object.GlobalEnv
	bytecodes  [numOpcodes]*object.Object
	ccBytecode *object.Object
	logger     *zap.Logger
}

// New builds a VM bound to h and env. It pins one Character object per
// opcode and the six-instruction continuation bytecode permanently,
// mirroring vm_init's push_root calls in original_source/vm.c.
func New(h *heap.Heap, env object.GlobalEnv, logger *zap.Logger) (*VM, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	vm := &VM{heap: h, globalEnv: env, logger: logger}

	for op := Opcode(0); op < numOpcodes; op++ {
		vm.bytecodes[op] = h.NewCharacter(byte(op))
		h.PushRoot(&vm.bytecodes[op])
	}

	cc, err := vm.buildCCBytecode()
	if err != nil {
		return nil, err
	}
	vm.ccBytecode = cc
	h.PushRoot(&vm.ccBytecode)

	return vm, nil
}

// push and pop implement vector_push/vector_pop from original_source/vm.c:
// the value stack grows by a factor of 1.8 when exhausted, and a popped
// slot is cleared to the empty list so the collector doesn't see a
// stale reference past the logical top.
func (vm *VM) push(stack *object.Object, top int, val *object.Object) int {
	data := stack.VectorData()
	if top == len(data.Items) {
		oldSize := len(data.Items)
		newSize := int(float64(oldSize) * 1.8)
		if newSize <= oldSize {
			newSize = oldSize + 1
		}
		grown := make([]*object.Object, newSize)
		copy(grown, data.Items)
		for i := oldSize; i < newSize; i++ {
			grown[i] = vm.heap.EmptyList
		}
		data.Items = grown
	}
	data.Items[top] = val
	return top + 1
}

func (vm *VM) pop(stack *object.Object, top int) (*object.Object, int) {
	top--
	data := stack.VectorData()
	val := data.Items[top]
	data.Items[top] = vm.heap.EmptyList
	return val, top
}
