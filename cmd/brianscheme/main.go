// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

// Command brianscheme is a minimal demo binary for the runtime core.
// It has no reader or compiler: it hand-assembles a fixed bytecode
// program, runs it through a Machine, and prints the result. Its only
// job beyond that is to own the process boundary the core itself
// never touches — reading flags/env and choosing an exit code.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/skeeto/brianscheme/machine"
	"github.com/skeeto/brianscheme/object"
	"github.com/skeeto/brianscheme/vm"
)

func main() {
	cmd := &cli.Command{
		Name:  "brianscheme",
		Usage: "run a demo bytecode program against the runtime core",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "heap-cells",
				Usage: "initial object pool size, in cells",
				Value: 1000,
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "log heap debug traces and disassemble the program before running it",
				Value: false,
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "brianscheme:", err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	// both *vm.FatalError and *heap.FatalError carry their own code
	var fatal interface{ ExitCode() int }
	if errors.As(err, &fatal) {
		return fatal.ExitCode()
	}
	return 1
}

func run(ctx context.Context, cmd *cli.Command) error {
	var logger *zap.Logger
	var err error
	if cmd.Bool("trace") {
		logger, err = zap.NewDevelopment()
	} else {
		logger = zap.NewNop()
	}
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	m, err := machine.New(machine.Config{
		InitialHeapCells: int64(cmd.Int("heap-cells")),
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	fn, err := demoProgram(m)
	if err != nil {
		return err
	}

	if cmd.Bool("trace") {
		fmt.Fprintln(os.Stderr, vm.Disassemble(fn))
	}

	result, err := m.Apply(fn)
	if err != nil {
		return err
	}

	fmt.Println(printObject(result))
	return nil
}

// demoProgram hand-assembles the bytecode a compiler would emit for
// (+ 1 2 3): push the three constants, look up the primitive, and make
// a tail call to it. A real front end would replace this entirely.
func demoProgram(m *machine.Machine) (*object.Object, error) {
	h := m.Heap
	plus := m.Symbols.Intern("+")

	// A real front end brings its own primitive library; this binary
	// only needs one primitive to demonstrate a call, so it defines it
	// directly.
	m.Globals.Define(plus, h.NewPrimitiveProc(func(stack []*object.Object, nArgs, stackTop int) *object.Object {
		var sum int64
		for i := stackTop - nArgs; i < stackTop; i++ {
			sum += stack[i].Fixnum()
		}
		return h.NewFixnum(sum)
	}))

	instrs := make([]*object.Object, 0, 5)
	add := func(name string, arg1, arg2 *object.Object) error {
		if arg1 == nil {
			arg1 = h.EmptyList
		}
		if arg2 == nil {
			arg2 = h.EmptyList
		}
		instr, err := m.VM.MakeInstr(name, arg1, arg2)
		if err != nil {
			return err
		}
		instrs = append(instrs, instr)
		return nil
	}

	fix := func(v int64) *object.Object { return h.NewFixnum(v) }

	if err := add("args", fix(0), nil); err != nil {
		return nil, err
	}
	if err := add("const", fix(1), nil); err != nil {
		return nil, err
	}
	if err := add("const", fix(2), nil); err != nil {
		return nil, err
	}
	if err := add("const", fix(3), nil); err != nil {
		return nil, err
	}
	if err := add("gvar", plus, nil); err != nil {
		return nil, err
	}
	if err := add("callj", fix(3), nil); err != nil {
		return nil, err
	}

	code := h.NewVectorFrom(instrs)
	return h.NewCompiledProc(code, h.EmptyList), nil
}

func printObject(o *object.Object) string {
	switch o.Kind {
	case object.Fixnum:
		return fmt.Sprintf("%d", o.Fixnum())
	case object.Boolean:
		if object.IsFalseLike(o) {
			return "#f"
		}
		return "#t"
	default:
		return o.Kind.String()
	}
}
