// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package vm

import "github.com/skeeto/brianscheme/object"

// RegisterBuiltins installs the primitives this package contributes to
// the global environment: symbol->bytecode, bytecode->symbol, and
// set-macro!, the Go analogues of symbol_to_code_proc, code_to_symbol_proc,
// and vm_tag_macro_proc in original_source/vm.c.
func (vm *VM) RegisterBuiltins(symbols object.SymbolTable) {
	h := vm.heap

	define := func(name string, fn object.PrimitiveFunc) {
		sym := symbols.Intern(name)
		vm.globalEnv.Define(sym, h.NewPrimitiveProc(fn))
	}

	define("symbol->bytecode", func(stack []*object.Object, nArgs, stackTop int) *object.Object {
		sym := stack[stackTop-nArgs]
		op, ok := opcodeByName(sym.Symbol().Name)
		if !ok {
			return h.False
		}
		return vm.bytecodes[op]
	})

	define("bytecode->symbol", func(stack []*object.Object, nArgs, stackTop int) *object.Object {
		op := Opcode(stack[stackTop-nArgs].Character())
		if op >= numOpcodes {
			return h.False
		}
		return symbols.Intern(op.String())
	})

	define("set-macro!", func(stack []*object.Object, nArgs, stackTop int) *object.Object {
		target := stack[stackTop-nArgs]
		target.SetMacro()
		return target
	})
}
