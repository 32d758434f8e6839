// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skeeto/brianscheme/heap"
	"github.com/skeeto/brianscheme/object"
)

// testSymbols and testGlobalEnv are minimal object.SymbolTable and
// object.GlobalEnv implementations good enough to drive the VM in
// isolation from package machine, which owns the real ones.
type testSymbols struct {
	h      *heap.Heap
	byName map[string]*object.Object
}

func newTestSymbols(h *heap.Heap) *testSymbols {
	return &testSymbols{h: h, byName: make(map[string]*object.Object)}
}

func (s *testSymbols) Intern(name string) *object.Object {
	if sym, ok := s.byName[name]; ok {
		return sym
	}
	sym := s.h.NewSymbol(name)
	s.h.PushRoot(&sym)
	s.byName[name] = sym
	return sym
}

type testGlobalEnv struct {
	vals map[*object.Object]*object.Object
}

func newTestGlobalEnv() *testGlobalEnv {
	return &testGlobalEnv{vals: make(map[*object.Object]*object.Object)}
}

func (e *testGlobalEnv) Lookup(sym *object.Object) (*object.Object, bool) {
	v, ok := e.vals[sym]
	return v, ok
}

func (e *testGlobalEnv) Define(sym *object.Object, val *object.Object) {
	e.vals[sym] = val
}

func newTestVM(t *testing.T) (*VM, *heap.Heap, *testSymbols, *testGlobalEnv) {
	t.Helper()
	h, err := heap.NewHeap(heap.Config{InitialCells: 4096})
	require.NoError(t, err)

	env := newTestGlobalEnv()
	machine, err := New(h, env, nil)
	require.NoError(t, err)

	return machine, h, newTestSymbols(h), env
}

func fix(h *heap.Heap, v int64) *object.Object { return h.NewFixnum(v) }

func assemble(t *testing.T, h *heap.Heap, vm *VM, instrs ...[3]interface{}) *object.Object {
	t.Helper()
	out := make([]*object.Object, len(instrs))
	for i, in := range instrs {
		name := in[0].(string)
		arg1, _ := in[1].(*object.Object)
		arg2, _ := in[2].(*object.Object)
		if arg1 == nil {
			arg1 = h.EmptyList
		}
		if arg2 == nil {
			arg2 = h.EmptyList
		}
		instr, err := vm.MakeInstr(name, arg1, arg2)
		require.NoError(t, err)
		out[i] = instr
	}
	return h.NewVectorFrom(out)
}

func in(name string, arg1, arg2 *object.Object) [3]interface{} {
	return [3]interface{}{name, arg1, arg2}
}

func addPrimitive(h *heap.Heap) object.PrimitiveFunc {
	return func(stack []*object.Object, nArgs, stackTop int) *object.Object {
		var sum int64
		for i := stackTop - nArgs; i < stackTop; i++ {
			sum += stack[i].Fixnum()
		}
		return h.NewFixnum(sum)
	}
}

func TestExecutePrimitiveCall(t *testing.T) {
	vm, h, syms, env := newTestVM(t)

	plus := syms.Intern("+")
	env.Define(plus, h.NewPrimitiveProc(addPrimitive(h)))

	code := assemble(t, h, vm,
		in("args", fix(h, 0), nil),
		in("const", fix(h, 1), nil),
		in("const", fix(h, 2), nil),
		in("gvar", plus, nil),
		in("callj", fix(h, 2), nil),
	)
	fn := h.NewCompiledProc(code, h.EmptyList)
	stack := h.NewVector(8, h.EmptyList)

	result, err := vm.Execute(fn, stack, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), result.Fixnum())
}

func TestExecuteIdentityLambda(t *testing.T) {
	vm, h, _, _ := newTestVM(t)

	inner := assemble(t, h, vm,
		in("args", fix(h, 1), nil),
		in("lvar", fix(h, 0), fix(h, 0)),
		in("return", nil, nil),
	)
	closure := h.NewCompiledProc(inner, h.EmptyList)

	outer := assemble(t, h, vm,
		in("args", fix(h, 0), nil),
		in("const", fix(h, 7), nil),
		in("const", closure, nil),
		in("callj", fix(h, 1), nil),
	)
	fn := h.NewCompiledProc(outer, h.EmptyList)
	stack := h.NewVector(8, h.EmptyList)

	result, err := vm.Execute(fn, stack, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(7), result.Fixnum())
}

func TestExecuteFjumpTakesFalseBranch(t *testing.T) {
	vm, h, _, _ := newTestVM(t)

	// args 0; const #f; fjump 4; const 1; const 2; return
	code := assemble(t, h, vm,
		in("args", fix(h, 0), nil),
		in("const", h.False, nil),
		in("fjump", fix(h, 4), nil),
		in("const", fix(h, 1), nil),
		in("const", fix(h, 2), nil),
		in("return", nil, nil),
	)
	fn := h.NewCompiledProc(code, h.EmptyList)
	stack := h.NewVector(8, h.EmptyList)

	result, err := vm.Execute(fn, stack, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Fixnum())
}

func TestExecuteTjumpTakesTrueBranch(t *testing.T) {
	vm, h, _, _ := newTestVM(t)

	code := assemble(t, h, vm,
		in("args", fix(h, 0), nil),
		in("const", h.True, nil),
		in("tjump", fix(h, 4), nil),
		in("const", fix(h, 1), nil),
		in("const", fix(h, 2), nil),
		in("return", nil, nil),
	)
	fn := h.NewCompiledProc(code, h.EmptyList)
	stack := h.NewVector(8, h.EmptyList)

	result, err := vm.Execute(fn, stack, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Fixnum())
}

// TestExecuteArgsDotCollectsRestList calls a one-positional-plus-rest
// procedure (x . rest) with three arguments and reads back rest.
func TestExecuteArgsDotCollectsRestList(t *testing.T) {
	vm, h, _, _ := newTestVM(t)

	inner := assemble(t, h, vm,
		in("argsdot", fix(h, 1), nil),
		in("lvar", fix(h, 0), fix(h, 1)),
		in("return", nil, nil),
	)
	closure := h.NewCompiledProc(inner, h.EmptyList)

	outer := assemble(t, h, vm,
		in("args", fix(h, 0), nil),
		in("const", fix(h, 1), nil),
		in("const", fix(h, 2), nil),
		in("const", fix(h, 3), nil),
		in("const", closure, nil),
		in("callj", fix(h, 3), nil),
	)
	fn := h.NewCompiledProc(outer, h.EmptyList)
	stack := h.NewVector(8, h.EmptyList)

	result, err := vm.Execute(fn, stack, 0, 0)
	require.NoError(t, err)
	require.Equal(t, object.Pair, result.Kind)
	require.Equal(t, int64(2), result.Car().Fixnum())
	require.Equal(t, int64(3), result.Cdr().Car().Fixnum())
	require.Equal(t, h.EmptyList, result.Cdr().Cdr())
}

// TestExecuteContinuationEscapes builds the bytecode a compiler would
// emit for (call/cc (lambda (k) (k 99))): the continuation is invoked
// before the enclosing save ever returns normally, and the whole
// expression collapses to the value passed to k.
func TestExecuteContinuationEscapes(t *testing.T) {
	vm, h, _, _ := newTestVM(t)

	body := assemble(t, h, vm,
		in("args", fix(h, 1), nil),
		in("const", fix(h, 99), nil),
		in("lvar", fix(h, 0), fix(h, 0)),
		in("callj", fix(h, 1), nil),
	)
	bodyClosure := h.NewCompiledProc(body, h.EmptyList)

	top := assemble(t, h, vm,
		in("args", fix(h, 0), nil),
		in("save", fix(h, 5), nil),
		in("cc", nil, nil),
		in("const", bodyClosure, nil),
		in("fcallj", fix(h, 1), nil),
		in("return", nil, nil),
	)
	fn := h.NewCompiledProc(top, h.EmptyList)
	stack := h.NewVector(8, h.EmptyList)

	result, err := vm.Execute(fn, stack, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(99), result.Fixnum())
}

func TestExecuteMalformedBytecodeIsFatal(t *testing.T) {
	vm, h, _, _ := newTestVM(t)

	code := assemble(t, h, vm, in("const", fix(h, 1), nil))
	fn := h.NewCompiledProc(code, h.EmptyList)
	stack := h.NewVector(8, h.EmptyList)

	_, err := vm.Execute(fn, stack, 0, 0)
	require.Error(t, err)

	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	require.Equal(t, ExitMalformedBytecode, fatal.ExitCode())
}

func TestMakeInstrRejectsUnknownOpcode(t *testing.T) {
	vm, h, _, _ := newTestVM(t)
	_, err := vm.MakeInstr("not-a-real-opcode", h.EmptyList, h.EmptyList)
	require.Error(t, err)
}

func TestDisassembleRendersOpcodeNames(t *testing.T) {
	vm, h, _, _ := newTestVM(t)

	code := assemble(t, h, vm,
		in("args", fix(h, 0), nil),
		in("const", fix(h, 1), nil),
		in("return", nil, nil),
	)
	proc := h.NewCompiledProc(code, h.EmptyList)

	out := Disassemble(proc)
	require.Contains(t, out, "args")
	require.Contains(t, out, "const")
	require.Contains(t, out, "return")
}
