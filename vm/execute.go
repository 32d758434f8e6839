// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package vm

import "github.com/skeeto/brianscheme/object"

// Execute runs a compiled procedure to completion and returns its
// result. stack is the caller's value stack with nArgs already pushed
// at its top; stackTop is the count of live slots. This is a direct
// port of vm_execute's dispatch loop in original_source/vm.c, using
// Go's goto in place of the C source's goto vm_fn_begin / goto vm_begin
// — the two labels mark exactly the same two re-entry points: one for
// a freshly dispatched call (reload the bytecode array), one for the
// next instruction within the current call.
//
// Unlike the C source, stack is pinned here rather than left to the
// caller: a library should not require its callers to know the root
// discipline of its own interpreter loop.
func (vm *VM) Execute(fn *object.Object, stack *object.Object, stackTop, nArgs int) (*object.Object, error) {
	h := vm.heap
	initialTop := stackTop - nArgs
	pc := 0

	h.PushRoot(&fn)
	h.PushRoot(&stack)
	defer h.PopRoot(&fn)
	defer h.PopRoot(&stack)

	env := h.NewPair(h.EmptyVector, fn.Env())
	h.PushRoot(&env)
	defer h.PopRoot(&env)

	var instr *object.Object
	var op Opcode
	var code *object.Object
	var items []*object.Object
	var numCodes int

	// handleReturn implements RETURN_OPCODE_INSTRUCTIONS: if the value
	// about to be returned is the only thing left on this call's frame
	// of the stack, hand it back to the native caller; otherwise resume
	// whatever save pushed below it.
	handleReturn := func() (*object.Object, bool) {
		if stackTop == initialTop+1 {
			var val *object.Object
			val, stackTop = vm.pop(stack, stackTop)
			return val, true
		}
		var val *object.Object
		val, stackTop = vm.pop(stack, stackTop)
		var retAddr *object.Object
		retAddr, stackTop = vm.pop(stack, stackTop)
		fn = retAddr.Cdr().Car()
		pc = int(retAddr.Car().Fixnum())
		env = retAddr.Cdr().Cdr()
		stackTop = vm.push(stack, stackTop, val)
		return nil, false
	}

vmFnBegin:
	if fn.Kind != object.CompiledProc && fn.Kind != object.CompiledSyntaxProc {
		return nil, vm.fatalf("execute: %s is not a compiled procedure", fn.Kind)
	}
	code = fn.Bytecode()
	items = code.VectorData().Items
	numCodes = len(items)

vmBegin:
	if pc >= numCodes {
		return nil, vm.fatalf("execute: pc flew off the end of the bytecode")
	}
	instr = items[pc]
	pc++
	op = instrOpcode(instr)

	switch op {
	case OpArgs:
		want := int(instrArg1(instr).Fixnum())
		if nArgs != want {
			return nil, vm.fatalf("execute: wrong number of args: expected %d, got %d", want, nArgs)
		}
		frame := env.Car()
		if want > frame.VectorLen() {
			frame = h.NewVector(want, h.EmptyList)
			env.SetCar(frame)
		}
		data := frame.VectorData().Items
		for i := want - 1; i >= 0; i-- {
			var v *object.Object
			v, stackTop = vm.pop(stack, stackTop)
			data[i] = v
		}

	case OpArgsDot:
		req := int(instrArg1(instr).Fixnum())
		if nArgs < req {
			return nil, vm.fatalf("execute: wrong number of args: expected at least %d, got %d", req, nArgs)
		}
		arraySize := req + 1
		frame := env.Car()
		if arraySize > frame.VectorLen() {
			frame = h.NewVector(arraySize, h.EmptyList)
			env.SetCar(frame)
		}
		data := frame.VectorData().Items
		data[arraySize-1] = h.EmptyList
		for i := 0; i < nArgs-req; i++ {
			var v *object.Object
			v, stackTop = vm.pop(stack, stackTop)
			data[arraySize-1] = h.NewPair(v, data[arraySize-1])
		}
		for i := req - 1; i >= 0; i-- {
			var v *object.Object
			v, stackTop = vm.pop(stack, stackTop)
			data[i] = v
		}

	case OpFjump:
		var v *object.Object
		v, stackTop = vm.pop(stack, stackTop)
		if object.IsFalseLike(v) {
			pc = int(instrArg1(instr).Fixnum())
		}

	case OpTjump:
		var v *object.Object
		v, stackTop = vm.pop(stack, stackTop)
		if !object.IsFalseLike(v) {
			pc = int(instrArg1(instr).Fixnum())
		}

	case OpJump:
		pc = int(instrArg1(instr).Fixnum())

	case OpFn:
		fnArg := instrArg1(instr)
		newFn := h.NewCompiledProc(fnArg.Bytecode(), env)
		h.PushRoot(&newFn)
		stackTop = vm.push(stack, stackTop, newFn)
		h.PopRoot(&newFn)

	case OpFcallj, OpCallj:
		var target *object.Object
		target, stackTop = vm.pop(stack, stackTop)
		if target.Kind == object.MetaProc {
			target = target.MetaProc()
		}

		argsForCall := int(instrArg1(instr).Fixnum())

		if op == OpCallj && argsForCall == -1 {
			// apply: the function is already in target; the single
			// remaining stack argument is the list to splice in.
			h.PushRoot(&target)
			var argList *object.Object
			argList, stackTop = vm.pop(stack, stackTop)
			argsForCall = 0
			for argList != h.EmptyList {
				stackTop = vm.push(stack, stackTop, argList.Car())
				argList = argList.Cdr()
				argsForCall++
			}
			h.PopRoot(&target)
		}

		switch target.Kind {
		case object.CompiledProc, object.CompiledSyntaxProc:
			fn = target
			pc = 0
			nArgs = argsForCall
			if op == OpFcallj {
				newFrame := h.NewVector(nArgs+1, h.EmptyList)
				h.PushRoot(&newFrame)
				env = h.NewPair(newFrame, fn.Env())
				h.PopRoot(&newFrame)
			} else {
				env.SetCdr(fn.Env())
			}
			goto vmFnBegin

		case object.PrimitiveProc:
			result := target.Primitive()(stack.VectorData().Items, argsForCall, stackTop)
			for i := 0; i < argsForCall; i++ {
				_, stackTop = vm.pop(stack, stackTop)
			}
			stackTop = vm.push(stack, stackTop, result)
			if val, done := handleReturn(); done {
				return val, nil
			}
			goto vmFnBegin

		default:
			return nil, vm.fatalf("execute: don't know how to invoke a %s", target.Kind)
		}

	case OpLvar:
		depth := int(instrArg1(instr).Fixnum())
		idx := int(instrArg2(instr).Fixnum())
		frame := object.FrameAt(env, depth)
		stackTop = vm.push(stack, stackTop, frame.VectorData().Items[idx])

	case OpLset:
		depth := int(instrArg1(instr).Fixnum())
		idx := int(instrArg2(instr).Fixnum())
		frame := object.FrameAt(env, depth)
		frame.VectorData().Items[idx] = stack.VectorData().Items[stackTop-1]

	case OpGvar:
		sym := instrArg1(instr)
		val, ok := vm.globalEnv.Lookup(sym)
		if !ok {
			return nil, vm.fatalf("execute: unbound variable %s", sym.Symbol().Name)
		}
		stackTop = vm.push(stack, stackTop, val)

	case OpGset:
		sym := instrArg1(instr)
		val := stack.VectorData().Items[stackTop-1]
		vm.globalEnv.Define(sym, val)

	case OpSetcc:
		var newStack, newTop *object.Object
		newStack, stackTop = vm.pop(stack, stackTop)
		newTop, stackTop = vm.pop(stack, stackTop)
		// original_source/vm.c reads `stack = car(stack)` here, which
		// only makes sense under the C union's field-overlap trick; the
		// plain-struct Object this port uses has no such overlap, so
		// the live stack is replaced with the popped value directly.
		stack = newStack
		stackTop = int(newTop.Fixnum())

	case OpCc:
		ccEnv := h.NewVector(2, h.EmptyList)
		h.PushRoot(&ccEnv)

		newStack := h.NewVector(len(stack.VectorData().Items), h.EmptyList)
		h.PushRoot(&newStack)
		copy(newStack.VectorData().Items[:stackTop], stack.VectorData().Items[:stackTop])
		ccEnv.VectorData().Items[0] = newStack
		ccEnv.VectorData().Items[1] = h.NewFixnum(int64(stackTop))
		h.PopRoot(&newStack)

		ccEnvList := h.NewPair(ccEnv, h.EmptyList)
		h.PushRoot(&ccEnvList)
		h.PopRoot(&ccEnv)

		ccFn := h.NewCompiledProc(vm.ccBytecode, ccEnvList)
		h.PopRoot(&ccEnvList)

		stackTop = vm.push(stack, stackTop, ccFn)

	case OpPop:
		_, stackTop = vm.pop(stack, stackTop)

	case OpSave:
		retAddr := h.NewPair(fn, env)
		h.PushRoot(&retAddr)
		retAddr = h.NewPair(instrArg1(instr), retAddr)
		stackTop = vm.push(stack, stackTop, retAddr)
		h.PopRoot(&retAddr)

	case OpReturn:
		if val, done := handleReturn(); done {
			return val, nil
		}
		goto vmFnBegin

	case OpConst:
		stackTop = vm.push(stack, stackTop, instrArg1(instr))

	default:
		return nil, vm.fatalf("execute: unknown opcode %s", op)
	}

	goto vmBegin
}
