package utils

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

const BitsPerByte = 8

// Returns the size in bits of n bytes
func Bits(bytes int) int {
	return bytes * BitsPerByte
}

// Returns the size in bytes of values of a type
func Sizeof[T any]() int {
	var val T
	return int(unsafe.Sizeof(val))
}

// Returns the size in bits of values of a type
func SizeofBits[T any]() int {
	return Bits(Sizeof[T]())
}

// Returns an all ones bitmask of n bits of the given unsigned integer type.
// Go defines shifts by the full type width as zero, so AllOnes[uint64](64)
// is all ones instead of undefined.
func AllOnes[T constraints.Unsigned](bits int) T {
	return (T(1) << bits) - T(1)
}

// Returns a mask of width ones starting at bit, truncated to the type width
func Mask[T constraints.Unsigned](bit int, width int) T {
	return AllOnes[T](width) << bit
}

// Implements a read/write view over an unsigned interger, allowing manipullating individual bit ranges easily
type BitView[T constraints.Unsigned] struct {
	Bits *T
}

// Returns the viewed unsigned int value
func (v BitView[T]) Value() T {
	return *v.Bits
}

// Returns the size in bits of the viewed value
func (v BitView[T]) SizeofBits() int {
	return SizeofBits[T]()
}

// Extracts a range of bits given a first bit and a width
func (v BitView[T]) Read(bit int, width int) T {
	return (v.Value() >> bit) & AllOnes[T](width)
}

// Copies a value into a range of bits, given the start and width of the range.
// The previous contents of the range are replaced, and the most significant bits
// of the value not fitting into the destination range are ignored.
func (v BitView[T]) Write(value T, bit int, width int) {
	mask := Mask[T](bit, width)
	*v.Bits = (*v.Bits &^ mask) | ((value << bit) & mask)
}

// Sets all bits in a range to 1
func (v BitView[T]) SetBits(bit int, width int) {
	*v.Bits |= Mask[T](bit, width)
}

// Sets all bits in a range to 0
func (v BitView[T]) ClearBits(bit int, width int) {
	*v.Bits &^= Mask[T](bit, width)
}

// Creates a bit view out of an unsigned int
func CreateBitView[T constraints.Unsigned](value *T) BitView[T] {
	return BitView[T]{
		Bits: value,
	}
}
