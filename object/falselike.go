// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package object

// IsFalseLike: only the false boolean is
// false-like. The empty list, the fixnum zero, the empty string, and
// every other value are all truthy — there is no "falsy" convention
// beyond this one singleton, unlike C's "zero is false."
func IsFalseLike(o *Object) bool {
	return o.Kind == Boolean && !o.bval
}
