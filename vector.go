// Package vector provides Vector, a growable contiguous buffer with explicit
// capacity control, and Iterator, a random-access cursor over its storage.
//
// Iterators borrow the buffer they were created from. Any operation that
// reallocates (Reserve, Resize past capacity, growth in PushBack, Insert or
// Ref) or releases (Clear) the buffer leaves older iterators pointing at
// storage the vector no longer uses.
package vector

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
)

// DefaultCapacity is the capacity of a vector built by New, and the capacity
// an empty zero-capacity vector grows to on first insertion.
const DefaultCapacity = 3

var nopLogger = zap.NewNop()

// Vector is a growable sequence of T. Len elements are active; the backing
// buffer holds Cap slots. The zero value is an empty vector with no buffer.
type Vector[T any] struct {
	buf []T // len(buf) is the capacity
	n   int
	log *zap.Logger
}

// New returns an empty vector with DefaultCapacity slots.
func New[T any]() *Vector[T] {
	return &Vector[T]{buf: alloc[T](DefaultCapacity)}
}

// WithLen returns a vector holding n zero values with room for 2n.
func WithLen[T any](n int) *Vector[T] {
	n = max(n, 0)
	return &Vector[T]{buf: alloc[T](2 * n), n: n}
}

// Filled returns a vector holding n copies of val with capacity n.
func Filled[T any](n int, val T) *Vector[T] {
	n = max(n, 0)
	v := &Vector[T]{buf: alloc[T](n), n: n}
	for i := range v.buf {
		v.buf[i] = val
	}
	return v
}

// Of returns a vector holding vals in order with capacity 2*len(vals).
func Of[T any](vals ...T) *Vector[T] {
	v := &Vector[T]{buf: alloc[T](2 * len(vals)), n: len(vals)}
	copy(v.buf, vals)
	return v
}

func alloc[T any](c int) []T {
	if c == 0 {
		return nil
	}
	return make([]T, c)
}

// SetLogger attaches l; reallocations are reported at debug level.
// A nil logger disables logging.
func (v *Vector[T]) SetLogger(l *zap.Logger) {
	v.log = l
}

func (v *Vector[T]) logger() *zap.Logger {
	if v.log == nil {
		return nopLogger
	}
	return v.log
}

// Clone returns a deep copy with the same capacity.
func (v *Vector[T]) Clone() *Vector[T] {
	c := &Vector[T]{buf: alloc[T](len(v.buf)), n: v.n, log: v.log}
	copy(c.buf, v.buf[:v.n])
	return c
}

// Assign replaces the contents of v with a deep copy of src.
func (v *Vector[T]) Assign(src *Vector[T]) {
	if v == src {
		return
	}
	v.buf = alloc[T](len(src.buf))
	v.n = src.n
	copy(v.buf, src.buf[:src.n])
}

// Ref returns a pointer to slot i, growing the vector so that i is active.
// Capacity doubles until it exceeds i, and any slots skipped between the old
// length and i are zeroed. The pointer is valid until the next reallocation.
func (v *Vector[T]) Ref(i int) *T {
	if i < 0 {
		panic(fmt.Errorf("%w: %d", ErrOutOfRange, i))
	}
	if i >= len(v.buf) {
		c := len(v.buf)
		for c <= i {
			c = grown(c)
		}
		v.Reserve(c)
	}
	if i >= v.n {
		clear(v.buf[v.n:i])
		v.n = i + 1
	}
	return &v.buf[i]
}

// Set stores val at i with the growth rules of Ref.
func (v *Vector[T]) Set(i int, val T) {
	*v.Ref(i) = val
}

// At returns the element at i, or ErrOutOfRange if i is not active.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.n {
		var zero T
		return zero, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, v.n)
	}
	return v.buf[i], nil
}

// Front returns the first element, or ErrEmpty.
func (v *Vector[T]) Front() (T, error) {
	if v.n == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return v.buf[0], nil
}

// Back returns the last element, or ErrEmpty.
func (v *Vector[T]) Back() (T, error) {
	if v.n == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return v.buf[v.n-1], nil
}

// Data returns the active elements. The slice shares storage with v and is
// nil once the buffer has been released.
func (v *Vector[T]) Data() []T {
	if v.buf == nil {
		return nil
	}
	return v.buf[:v.n:len(v.buf)]
}

// Empty reports whether no elements are active.
func (v *Vector[T]) Empty() bool { return v.n == 0 }

// Len is the number of active elements.
func (v *Vector[T]) Len() int { return v.n }

// Cap is the number of allocated slots, 0 once the buffer is released.
func (v *Vector[T]) Cap() int { return len(v.buf) }

// Reserve reallocates the buffer to exactly c slots. Shrinking below Len
// drops the trailing elements.
func (v *Vector[T]) Reserve(c int) {
	c = max(c, 0)
	if c == len(v.buf) {
		return
	}
	nb := alloc[T](c)
	n := min(v.n, c)
	copy(nb, v.buf[:n])
	v.logger().Debug("vector reallocated",
		zap.Int("from", len(v.buf)),
		zap.Int("to", c),
		zap.Int("len", n))
	v.buf = nb
	v.n = n
}

// Clear drops every element and releases the buffer; Cap reports 0 after.
func (v *Vector[T]) Clear() {
	if v.buf != nil {
		v.logger().Debug("vector released", zap.Int("cap", len(v.buf)))
	}
	v.buf = nil
	v.n = 0
}

// Resize sets Len to m. New slots hold the zero value; shrinking keeps the
// buffer.
func (v *Vector[T]) Resize(m int) {
	m = max(m, 0)
	switch {
	case m <= v.n:
		v.n = m
		return
	case m > len(v.buf):
		v.Reserve(m)
	}
	clear(v.buf[v.n:m])
	v.n = m
}

// PushBack appends val. A full vector doubles its capacity; one with no
// buffer grows to DefaultCapacity.
func (v *Vector[T]) PushBack(val T) {
	if v.n == len(v.buf) {
		v.Reserve(grown(len(v.buf)))
	}
	v.buf[v.n] = val
	v.n++
}

// PopBack drops the last element. The slot keeps its value until reused.
func (v *Vector[T]) PopBack() error {
	if v.n == 0 {
		return ErrEmpty
	}
	v.n--
	return nil
}

// Swap exchanges the contents of v and o. Loggers stay with their vectors.
func (v *Vector[T]) Swap(o *Vector[T]) {
	v.buf, o.buf = o.buf, v.buf
	v.n, o.n = o.n, v.n
}

// Insert places val before pos, shifting the tail right, and returns an
// iterator to the inserted element in the current buffer.
func (v *Vector[T]) Insert(pos Iterator[T], val T) Iterator[T] {
	off := pos.Distance(v.Begin())
	if off < 0 || off > v.n {
		panic(fmt.Errorf("%w: insert at %d of %d", ErrOutOfRange, off, v.n))
	}
	if v.n == len(v.buf) {
		v.Reserve(grown(len(v.buf)))
	}
	copy(v.buf[off+1:v.n+1], v.buf[off:v.n])
	v.buf[off] = val
	v.n++
	return v.Begin().Add(off)
}

// Begin returns a cursor to the first slot of the current buffer.
func (v *Vector[T]) Begin() Iterator[T] {
	return Iterator[T]{buf: v.buf}
}

// End returns a cursor one past the last active element.
func (v *Vector[T]) End() Iterator[T] {
	return Iterator[T]{buf: v.buf, pos: v.n}
}

// All yields the active elements with their indexes.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

func (v *Vector[T]) String() string {
	return fmt.Sprint(v.buf[:v.n])
}

func grown(c int) int {
	if c == 0 {
		return DefaultCapacity
	}
	return c * 2
}
