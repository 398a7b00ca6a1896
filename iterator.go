package vector

import "unsafe"

// Iterator is a random-access cursor into a vector's buffer. It records the
// buffer that was current when it was created and performs no bounds
// checking: it may be moved anywhere, but dereferencing a position outside
// the buffer panics.
type Iterator[T any] struct {
	buf []T
	pos int
}

func (it Iterator[T]) Value() T { return it.buf[it.pos] }

// Ptr returns the address of the element under the cursor.
func (it Iterator[T]) Ptr() *T { return &it.buf[it.pos] }

func (it Iterator[T]) Set(val T) { it.buf[it.pos] = val }

// Inc moves forward one slot and returns the moved cursor.
func (it *Iterator[T]) Inc() Iterator[T] {
	it.pos++
	return *it
}

// PostInc moves forward one slot and returns the cursor as it was.
func (it *Iterator[T]) PostInc() Iterator[T] {
	old := *it
	it.pos++
	return old
}

func (it *Iterator[T]) Dec() Iterator[T] {
	it.pos--
	return *it
}

func (it *Iterator[T]) PostDec() Iterator[T] {
	old := *it
	it.pos--
	return old
}

// Advance moves the cursor by n slots; n may be negative.
func (it *Iterator[T]) Advance(n int) Iterator[T] {
	it.pos += n
	return *it
}

func (it *Iterator[T]) Retreat(n int) Iterator[T] {
	it.pos -= n
	return *it
}

func (it Iterator[T]) Add(n int) Iterator[T] {
	it.pos += n
	return it
}

func (it Iterator[T]) Sub(n int) Iterator[T] {
	it.pos -= n
	return it
}

// Distance returns it - from in slots. Both must come from the same buffer.
func (it Iterator[T]) Distance(from Iterator[T]) int {
	return it.pos - from.pos
}

// Equal reports whether both cursors address the same slot of the same buffer.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.pos == o.pos && unsafe.SliceData(it.buf) == unsafe.SliceData(o.buf)
}

func (it Iterator[T]) NotEqual(o Iterator[T]) bool { return !it.Equal(o) }

// Compare orders cursors by position: -1, 0 or +1. Ordering is only
// meaningful between cursors of one buffer; it does not look at buffer
// identity, so Compare can return 0 for cursors that are not Equal.
// Less, LessEq, Greater and GreaterEq follow the same rule.
func (it Iterator[T]) Compare(o Iterator[T]) int {
	switch {
	case it.pos < o.pos:
		return -1
	case it.pos > o.pos:
		return 1
	}
	return 0
}

func (it Iterator[T]) Less(o Iterator[T]) bool      { return it.pos < o.pos }
func (it Iterator[T]) LessEq(o Iterator[T]) bool    { return it.pos <= o.pos }
func (it Iterator[T]) Greater(o Iterator[T]) bool   { return it.pos > o.pos }
func (it Iterator[T]) GreaterEq(o Iterator[T]) bool { return it.pos >= o.pos }

// span returns the slots in [first, last) of first's buffer.
func span[T any](first, last Iterator[T]) []T {
	return first.buf[first.pos:last.pos]
}
