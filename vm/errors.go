// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package vm

import (
	"fmt"

	"github.com/pkg/errors"
)

// ExitMalformedBytecode is this port's exit code for malformed bytecode
// (unknown opcode, pc past end, call target not callable, arg-count
// mismatch). The original C source folds this into the same exit(2) as
// a heap-extension failure; this port keeps them distinct since the two
// failures are diagnosed very differently.
const ExitMalformedBytecode = 3

// FatalError is a VM-level assertion failure — the Go analogue of
// VM_ASSERT in original_source/vm.c. Every VM assertion failure is
// fatal: there is no recoverable-at-the-VM-level case in the core.
type FatalError struct {
	msg string
	err error
}

func (vm *VM) fatalf(format string, args ...interface{}) *FatalError {
	msg := fmt.Sprintf(format, args...)
	return &FatalError{msg: msg, err: errors.New(msg)}
}

func (e *FatalError) Error() string { return e.msg }
func (e *FatalError) ExitCode() int { return ExitMalformedBytecode }
func (e *FatalError) Unwrap() error { return e.err }
