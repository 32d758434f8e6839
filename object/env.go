// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package object

// FrameAt walks an environment (a proper list of frames)
// depth cdrs deep and returns the frame Vector found there. lvar/lset
// use this to resolve a (depth, index) lexical address.
func FrameAt(env *Object, depth int) *Object {
	for depth > 0 {
		env = env.Cdr()
		depth--
	}
	return env.Car()
}
