// Package seq provides the owned, insertion-ordered sequence used for every
// repeated entity kind of a DBC document.
//
// A List exclusively owns its elements. Releasing a list releases every
// element exactly once; cloning a list clones every element into a fresh
// chain so that no node or payload is shared with the source.
//
// Both operations accept a nil *List and treat it as an absent sequence:
// Release is a no-op and Clone returns nil.
package seq

import "iter"

// Owned is implemented by payload types stored in a List.
//
// Clone returns a storage-independent deep copy. Release drops every owned
// sub-structure; weak references held by the payload are cleared, never
// followed.
type Owned[E any] interface {
	Clone() E
	Release()
}

type node[E any] struct {
	value E
	next  *node[E]
}

// List is a singly chained sequence that owns its elements.
// The zero value is an empty list ready to use.
type List[E Owned[E]] struct {
	head *node[E]
	tail *node[E]
	n    int
}

// New returns an empty list.
func New[E Owned[E]]() *List[E] {
	return &List[E]{}
}

// Of returns a list holding the given elements in order.
// The list takes ownership of the elements.
func Of[E Owned[E]](elems ...E) *List[E] {
	l := New[E]()
	for _, e := range elems {
		l.Append(e)
	}
	return l
}

// Append adds e at the end of the list and takes ownership of it.
func (l *List[E]) Append(e E) {
	nd := &node[E]{value: e}
	if l.tail == nil {
		l.head = nd
	} else {
		l.tail.next = nd
	}
	l.tail = nd
	l.n++
}

// Len returns the number of elements. A nil list has length 0.
func (l *List[E]) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// All iterates over the elements in insertion order.
func (l *List[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		if l == nil {
			return
		}
		for nd := l.head; nd != nil; nd = nd.next {
			if !yield(nd.value) {
				return
			}
		}
	}
}

// Items returns the elements as a slice. The slice is new but the elements
// are still owned by the list.
func (l *List[E]) Items() []E {
	out := make([]E, 0, l.Len())
	for e := range l.All() {
		out = append(out, e)
	}
	return out
}

// Release destroys every element and unlinks every node. The list is empty
// afterwards. Safe on a nil or partially built list.
func (l *List[E]) Release() {
	if l == nil {
		return
	}
	nd := l.head
	for nd != nil {
		next := nd.next
		nd.value.Release()
		var zero E
		nd.value = zero
		nd.next = nil
		nd = next
	}
	l.head, l.tail, l.n = nil, nil, 0
}

// Clone returns a new list holding a clone of every element in the same
// order. A nil list clones to nil.
func (l *List[E]) Clone() *List[E] {
	if l == nil {
		return nil
	}
	out := New[E]()
	for nd := l.head; nd != nil; nd = nd.next {
		out.Append(nd.value.Clone())
	}
	return out
}
