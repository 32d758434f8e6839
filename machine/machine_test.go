// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package machine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skeeto/brianscheme/object"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := New(Config{InitialHeapCells: 2048})
	require.NoError(t, err)
	return m
}

func assembleAdder(t *testing.T, m *Machine, values ...int64) *object.Object {
	t.Helper()
	h := m.Heap
	plus := m.Symbols.Intern("+")
	m.Globals.Define(plus, h.NewPrimitiveProc(func(stack []*object.Object, nArgs, stackTop int) *object.Object {
		var sum int64
		for i := stackTop - nArgs; i < stackTop; i++ {
			sum += stack[i].Fixnum()
		}
		return h.NewFixnum(sum)
	}))

	instrs := make([]*object.Object, 0, len(values)+3)
	add := func(name string, arg1 *object.Object) {
		if arg1 == nil {
			arg1 = h.EmptyList
		}
		instr, err := m.VM.MakeInstr(name, arg1, h.EmptyList)
		require.NoError(t, err)
		instrs = append(instrs, instr)
	}

	add("args", h.NewFixnum(0))
	for _, v := range values {
		add("const", h.NewFixnum(v))
	}
	add("gvar", plus)
	add("callj", h.NewFixnum(int64(len(values))))

	code := h.NewVectorFrom(instrs)
	return h.NewCompiledProc(code, h.EmptyList)
}

func TestMachineApplyRunsCompiledProcedure(t *testing.T) {
	m := newTestMachine(t)
	fn := assembleAdder(t, m, 1, 2, 3)

	result, err := m.Apply(fn)
	require.NoError(t, err)
	require.Equal(t, int64(6), result.Fixnum())
}

func TestMachineGlobalsPersistAcrossDefines(t *testing.T) {
	m := newTestMachine(t)
	sym := m.Symbols.Intern("answer")

	m.Globals.Define(sym, m.Heap.NewFixnum(42))
	val, ok := m.Globals.Lookup(sym)
	require.True(t, ok)
	require.Equal(t, int64(42), val.Fixnum())

	m.Globals.Define(sym, m.Heap.NewFixnum(7))
	val, ok = m.Globals.Lookup(sym)
	require.True(t, ok)
	require.Equal(t, int64(7), val.Fixnum())
}

func TestSymbolTableInternsByIdentity(t *testing.T) {
	m := newTestMachine(t)
	a := m.Symbols.Intern("foo")
	b := m.Symbols.Intern("foo")
	require.True(t, a == b)
}

func TestHashTableIterateVisitsAllEntries(t *testing.T) {
	m := newTestMachine(t)
	ht := NewHashTable()
	k1, k2 := m.Heap.NewFixnum(1), m.Heap.NewFixnum(2)
	ht.Set(k1, m.Heap.NewFixnum(10))
	ht.Set(k2, m.Heap.NewFixnum(20))

	seen := map[*object.Object]*object.Object{}
	ht.Iterate(func(key, val *object.Object) bool {
		seen[key] = val
		return true
	})
	require.Len(t, seen, 2)

	ht.Destroy()
	require.Equal(t, 0, ht.Len())
}
