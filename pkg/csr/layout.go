package csr

import (
	"golang.org/x/exp/constraints"

	"github.com/Manu343726/csrgen/pkg/utils"
)

const (
	// CSR immediate instructions (csrrwi, csrrsi, csrrci) encode a 5 bit unsigned literal
	ImmediateBits = 5

	ImmediateMask uint64 = 1<<ImmediateBits - 1
)

// Returns the mask of a field of the given width placed at offset, in a word of type T
func FieldMask[T constraints.Unsigned](offset, width int) T {
	return utils.Mask[T](offset, width)
}

// Returns the value of a field of the given width with all its bits set, right justified
func AllSetMask[T constraints.Unsigned](width int) T {
	return utils.AllOnes[T](width)
}

// Position and masks of a bit field within a register of a given machine word width
type Layout struct {
	XLEN       XLEN
	BitOffset  int
	BitWidth   int
	BitMask    uint64
	AllSetMask uint64
}

// Computes the layout of a field. Offsets outside the word and widths
// overflowing the top bit are rejected.
func NewLayout(offset, width int, xlen XLEN) (Layout, error) {
	if err := xlen.Validate(); err != nil {
		return Layout{}, err
	}

	if offset < 0 || offset >= int(xlen) {
		return Layout{}, utils.MakeError(ErrFieldOutOfRange, "bit offset %d outside [0, %d] for %v", offset, xlen.TopBit(), xlen)
	}

	if width < 1 || width > int(xlen)-offset {
		return Layout{}, utils.MakeError(ErrFieldOutOfRange, "bit width %d at offset %d does not fit [1, %d] for %v", width, offset, int(xlen)-offset, xlen)
	}

	layout := Layout{
		XLEN:      xlen,
		BitOffset: offset,
		BitWidth:  width,
	}

	switch xlen {
	case XLEN32:
		layout.BitMask = uint64(FieldMask[uint32](offset, width))
		layout.AllSetMask = uint64(AllSetMask[uint32](width))
	case XLEN64:
		layout.BitMask = FieldMask[uint64](offset, width)
		layout.AllSetMask = AllSetMask[uint64](width)
	}

	return layout, nil
}

// Index of the most significant bit of the field
func (l Layout) TopBit() int {
	return l.BitOffset + l.BitWidth - 1
}

// Whether the shifted field mask can be used as a CSR instruction immediate
func (l Layout) FitsImmediate() bool {
	return l.BitMask&^ImmediateMask == 0
}

// Extracts the field value out of a register value
func (l Layout) Extract(value uint64) uint64 {
	return utils.CreateBitView(&value).Read(l.BitOffset, l.BitWidth)
}

// Returns the register value with the field replaced by fieldValue. Bits of
// fieldValue not fitting the field are dropped.
func (l Layout) Insert(value, fieldValue uint64) uint64 {
	utils.CreateBitView(&value).Write(fieldValue, l.BitOffset, l.BitWidth)
	return value
}

// Returns true if both fields share at least one bit
func (l Layout) Overlaps(other Layout) bool {
	return l.BitMask&other.BitMask != 0
}
