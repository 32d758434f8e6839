// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package heap

import "github.com/pkg/errors"

// Exit codes for the allocator's fatal conditions. The core never calls os.Exit itself — a
// library must not kill its host process — so these are carried on the
// error for whichever boundary does own the process (cmd/brianscheme)
// to act on.
const (
	ExitAllocatorExhausted = 1
	ExitHeapExtensionFailed = 2
	ExitRootStackImbalance  = 2
)

// FatalError is a core invariant violation: allocator exhaustion, a
// heap extension that still yields no free cell, or a root-stack pop
// that can't find its entry. original_source/gc.c handled all three by
// calling exit() directly (throw_gc); this port returns an error
// carrying the same exit code and a captured stack trace instead.
type FatalError struct {
	Code int
	msg  string
	err  error
}

func newFatal(code int, msg string) *FatalError {
	return &FatalError{Code: code, msg: msg, err: errors.New(msg)}
}

func (e *FatalError) Error() string { return e.msg }
func (e *FatalError) ExitCode() int { return e.Code }
func (e *FatalError) Unwrap() error { return e.err }
