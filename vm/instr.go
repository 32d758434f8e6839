// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package vm

import "github.com/skeeto/brianscheme/object"

// An instruction is the list (opcode-char arg1 arg2), the same layout
// as OPCODE/ARGS/ARG1/ARG2 in original_source/vm.c.
func instrOpcode(instr *object.Object) Opcode {
	return Opcode(instr.Car().Character())
}

func instrArg1(instr *object.Object) *object.Object {
	return instr.Cdr().Car()
}

func instrArg2(instr *object.Object) *object.Object {
	return instr.Cdr().Cdr().Car()
}

// MakeInstr builds a single bytecode instruction, the contract an
// external compiler uses to hand the VM a program. arg1/arg2 should be
// h.EmptyList when the opcode takes fewer than two operands.
func (vm *VM) MakeInstr(name string, arg1, arg2 *object.Object) (*object.Object, error) {
	op, ok := opcodeByName(name)
	if !ok {
		return nil, vm.fatalf("make_instr: unknown opcode %q", name)
	}
	h := vm.heap
	result := h.EmptyList
	h.PushRoot(&result)
	result = h.NewPair(arg2, result)
	result = h.NewPair(arg1, result)
	result = h.NewPair(vm.bytecodes[op], result)
	h.PopRoot(&result)
	return result, nil
}
