// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package vm

// Opcode enumerates the fixed instruction set of the runtime. The
// order matches original_source/vm.c's opcode_table macro exactly, so
// that a dump of the numeric encoding lines up with the C source for
// anyone cross-referencing the two.
type Opcode uint8

const (
	OpArgs Opcode = iota
	OpArgsDot
	OpReturn
	OpConst
	OpFn
	OpFjump
	OpTjump
	OpJump
	OpFcallj
	OpCallj
	OpLvar
	OpSave
	OpGvar
	OpLset
	OpGset
	OpSetcc
	OpCc
	OpPop
	numOpcodes
)

var opcodeNames = [numOpcodes]string{
	OpArgs:    "args",
	OpArgsDot: "argsdot",
	OpReturn:  "return",
	OpConst:   "const",
	OpFn:      "fn",
	OpFjump:   "fjump",
	OpTjump:   "tjump",
	OpJump:    "jump",
	OpFcallj:  "fcallj",
	OpCallj:   "callj",
	OpLvar:    "lvar",
	OpSave:    "save",
	OpGvar:    "gvar",
	OpLset:    "lset",
	OpGset:    "gset",
	OpSetcc:   "setcc",
	OpCc:      "cc",
	OpPop:     "pop",
}

var nameToOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, numOpcodes)
	for op, name := range opcodeNames {
		m[name] = Opcode(op)
	}
	return m
}()

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "invalid-bytecode"
}

// opcodeByName mirrors symbol_to_code's lookup, minus the symbol
// interning step (make_instr in this port takes the opcode name
// directly rather than requiring a pre-interned symbol object).
func opcodeByName(name string) (Opcode, bool) {
	op, ok := nameToOpcode[name]
	return op, ok
}
