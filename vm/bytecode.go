// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package vm

import (
	"fmt"
	"strings"

	"github.com/skeeto/brianscheme/object"
)

// buildCCBytecode constructs the fixed six-instruction program every
// reified continuation uses as its body, ported verbatim from vm_init
// in original_source/vm.c.
func (vm *VM) buildCCBytecode() (*object.Object, error) {
	h := vm.heap
	fix := func(v int64) *object.Object { return h.NewFixnum(v) }

	instrs := make([]*object.Object, 6)
	var err error
	if instrs[0], err = vm.MakeInstr("args", fix(1), h.EmptyList); err != nil {
		return nil, err
	}
	if instrs[1], err = vm.MakeInstr("lvar", fix(1), fix(1)); err != nil {
		return nil, err
	}
	if instrs[2], err = vm.MakeInstr("lvar", fix(1), fix(0)); err != nil {
		return nil, err
	}
	if instrs[3], err = vm.MakeInstr("setcc", h.EmptyList, h.EmptyList); err != nil {
		return nil, err
	}
	if instrs[4], err = vm.MakeInstr("lvar", fix(0), fix(0)); err != nil {
		return nil, err
	}
	if instrs[5], err = vm.MakeInstr("return", h.EmptyList, h.EmptyList); err != nil {
		return nil, err
	}

	return h.NewVectorFrom(instrs), nil
}

// Disassemble renders a compiled procedure's bytecode as text, the Go
// analogue of wb ("write bytecode") in original_source/vm.c. It is
// debug tooling only, reachable from cmd/brianscheme's --trace flag.
func Disassemble(proc *object.Object) string {
	var b strings.Builder
	b.WriteString("#<bytecode: ")
	codes := proc.Bytecode().VectorData().Items
	for _, instr := range codes {
		op := instrOpcode(instr)
		fmt.Fprintf(&b, "(%s . ", op)
		writeArg(&b, instrArg1(instr))
		b.WriteString(" ")
		writeArg(&b, instrArg2(instr))
		b.WriteString(") ")
	}
	b.WriteString(">")
	return b.String()
}

func writeArg(b *strings.Builder, arg *object.Object) {
	switch arg.Kind {
	case object.EmptyListKind:
		b.WriteString("()")
	case object.Fixnum:
		fmt.Fprintf(b, "%d", arg.Fixnum())
	case object.Symbol:
		b.WriteString(arg.Symbol().Name)
	default:
		fmt.Fprintf(b, "#<%s>", arg.Kind)
	}
}
