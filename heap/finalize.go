// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package heap

import "github.com/skeeto/brianscheme/object"

// finalizableStack is a growable stack of objects that need their
// out-of-slab resources released when unreached.
type finalizableStack struct {
	objs []*object.Object
}

func newFinalizableStack(initial int) finalizableStack {
	return finalizableStack{objs: make([]*object.Object, 0, initial)}
}

func (s *finalizableStack) push(obj *object.Object) {
	s.objs = append(s.objs, obj)
}

func (s *finalizableStack) clear() {
	s.objs = s.objs[:0]
}
