package identdata

import (
	"sort"
)

// entity is implemented by all graph entities. Equal compares by value
// and ignores ids.
type entity[T any] interface {
	comparable
	SetContext(*Context)
	Equal(T) bool
}

// List is an ordered collection that stamps inserted entities with the
// context of its owner. Two lists are equal if they hold value-equal
// entities, in any order.
type List[T entity[T]] struct {
	ctx   *Context
	items []T
}

// NewList creates a list owned by ctx holding items
func NewList[T entity[T]](ctx *Context, items ...T) List[T] {
	l := List[T]{ctx: ctx}
	l.Add(items...)
	return l
}

// Add appends items, attaching them to the list's context
func (l *List[T]) Add(items ...T) {
	for _, it := range items {
		if l.ctx != nil {
			it.SetContext(l.ctx)
		}
		l.items = append(l.items, it)
	}
}

// Len returns the number of items
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns item i
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Items returns the items. The slice must not be modified.
func (l *List[T]) Items() []T {
	return l.items
}

// Clear removes all items
func (l *List[T]) Clear() {
	l.items = nil
}

// Filter keeps only the items for which keep returns true
func (l *List[T]) Filter(keep func(T) bool) {
	k := 0
	for _, it := range l.items {
		if keep(it) {
			l.items[k] = it
			k++
		}
	}
	var zero T
	for i := k; i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = l.items[:k]
}

// Sort sorts the items stably
func (l *List[T]) Sort(less func(a, b T) bool) {
	sort.SliceStable(l.items, func(i, j int) bool { return less(l.items[i], l.items[j]) })
}

// Contains reports whether a value-equal item is present
func (l *List[T]) Contains(item T) bool {
	for _, it := range l.items {
		if it == item || it.Equal(item) {
			return true
		}
	}
	return false
}

// Equal compares two lists regardless of order
func (l *List[T]) Equal(o *List[T]) bool {
	var a, b []T
	if l != nil {
		a = l.items
	}
	if o != nil {
		b = o.items
	}
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, x := range a {
		for j, y := range b {
			if !used[j] && (x == y || x.Equal(y)) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// SetContext attaches the list and all items to ctx
func (l *List[T]) SetContext(ctx *Context) {
	if l.ctx == ctx {
		return
	}
	l.ctx = ctx
	for _, it := range l.items {
		it.SetContext(ctx)
	}
}

// Context returns the context of the list
func (l *List[T]) Context() *Context {
	return l.ctx
}
