// Copyright 2010 Brian Taylor. Ported under the Apache License, Version 2.0.

package heap

import "github.com/skeeto/brianscheme/object"

// list is a doubly-linked list of heap cells. The Active
// list holds free/candidate-garbage cells; the Old list holds cells
// proven live in the most recent collection. Invariants: head.Prev ==
// nil, tail.Next == nil, and count equals the number of nodes reachable
// from head via Next.
type list struct {
	head, tail *object.Object
	count      int64
}

// moveToHead unlinks obj from l (its current list) and links it at the
// head of dest, in O(1). This is the collector's "relocation" primitive:
// objects never move in memory, only list membership changes.
func moveToHead(obj *object.Object, l, dest *list) {
	if obj.Prev == nil {
		l.head = obj.Next
	} else {
		obj.Prev.Next = obj.Next
	}
	if obj.Next == nil {
		l.tail = obj.Prev
	} else {
		obj.Next.Prev = obj.Prev
	}
	l.count--

	if dest.head == nil {
		dest.head = obj
		dest.tail = obj
		obj.Next = nil
		obj.Prev = nil
	} else {
		obj.Prev = nil
		obj.Next = dest.head
		obj.Next.Prev = obj
		dest.head = obj
	}
	dest.count++
}

// appendToTail concatenates src onto the tail of dest and empties src,
// used by Collect's merge step.
func appendToTail(dest, src *list) {
	if dest.tail == nil {
		dest.head = src.head
		dest.tail = src.tail
	} else if src.head == nil {
		return
	} else {
		dest.tail.Next = src.head
		dest.tail.Next.Prev = dest.tail
		dest.tail = src.tail
	}

	dest.count += src.count

	src.head = nil
	src.tail = nil
	src.count = 0
}

// prependChain links a freshly built chain of count cells, running from
// head to tail, onto the front of l.
func prependChain(l *list, head, tail *object.Object, count int64) {
	tail.Next = l.head
	if l.head != nil {
		l.head.Prev = tail
	} else {
		l.tail = tail
	}
	l.head = head
	l.count += count
}
