// Package queue implements the manual queue: a
// FIFO of pending tree nodes with a reusable entry pool, used by the
// output dispatcher to drain one node per owned file in first-encountered
// order.
package queue

import "github.com/standardbeagle/xmlman/internal/doctree"

// entry is one pooled queue slot. The queue holds only weak references —
// nodes remain owned by the tree — so an entry carries a NodeID, never a
// node pointer.
type entry struct {
	node doctree.NodeID
	next *entry
}

// Queue is a FIFO of doctree.NodeID with a singly-linked free list of
// drained entries.
type Queue struct {
	head, tail *entry
	free       *entry
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push enqueues id at the tail, reusing a drained entry if one is free.
func (q *Queue) Push(id doctree.NodeID) {
	e := q.alloc()
	e.node = id
	e.next = nil
	if q.tail == nil {
		q.head = e
	} else {
		q.tail.next = e
	}
	q.tail = e
}

// Pop dequeues the head node, returning (NilNode, false) when the queue is
// empty. The drained entry is returned to the pool with node reset to
// NilNode.
func (q *Queue) Pop() (doctree.NodeID, bool) {
	e := q.head
	if e == nil {
		return doctree.NilNode, false
	}
	q.head = e.next
	if q.head == nil {
		q.tail = nil
	}
	id := e.node
	q.release(e)
	return id, true
}

// Empty reports whether the queue currently holds no nodes.
func (q *Queue) Empty() bool {
	return q.head == nil
}

func (q *Queue) alloc() *entry {
	if e := q.free; e != nil {
		q.free = e.next
		e.next = nil
		return e
	}
	return &entry{}
}

func (q *Queue) release(e *entry) {
	e.node = doctree.NilNode
	e.next = q.free
	q.free = e
}
