package doc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Manu343726/csrgen/pkg/utils"
)

var ErrMalformedFrame = errors.New("malformed bit frame")

// Name drawn for bits no segment covers
const UnusedName = "(unused)"

// Named inclusive bit range of a frame
type Segment struct {
	Name string
	Msb  int
	Lsb  int
}

func (s Segment) Width() int {
	return s.Msb - s.Lsb + 1
}

type cell struct {
	segment Segment
	msb     string
	lsb     string
	name    string
	width   int
}

func newCell(s Segment) cell {
	c := cell{
		segment: s,
		msb:     fmt.Sprint(s.Msb),
		name:    " " + s.Name + " ",
	}

	c.width = max(len(c.name), len(c.msb))

	if s.Msb != s.Lsb {
		c.lsb = fmt.Sprint(s.Lsb)
		c.width = max(c.width, len(c.msb)+len(c.lsb)+1)
	}

	return c
}

// Index row text above the cell, as wide as the cell plus its left border
func (c cell) indices() string {
	row := []byte(strings.Repeat(" ", c.width+1))
	copy(row, c.msb)

	if c.lsb != "" {
		copy(row[c.width-len(c.lsb):], c.lsb)
	}

	return string(row)
}

func (c cell) body() string {
	left := (c.width - len(c.name)) / 2
	right := c.width - len(c.name) - left

	return strings.Repeat(" ", left) + c.name + strings.Repeat(" ", right)
}

// Fills the bits not covered by any segment with unused segments, sorting
// segments from the most significant bit down
func fillGaps(segments []Segment, width int) ([]Segment, error) {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Msb > sorted[j].Msb
	})

	result := make([]Segment, 0, len(sorted)*2+1)
	next := width - 1

	for _, s := range sorted {
		if s.Lsb < 0 || s.Msb < s.Lsb || s.Msb >= width {
			return nil, utils.MakeError(ErrMalformedFrame, "segment '%v' [%d:%d] outside [%d:0]", s.Name, s.Msb, s.Lsb, width-1)
		}

		if s.Msb > next {
			return nil, utils.MakeError(ErrMalformedFrame, "segment '%v' [%d:%d] overlaps its neighbour", s.Name, s.Msb, s.Lsb)
		}

		if s.Msb < next {
			result = append(result, Segment{Name: UnusedName, Msb: next, Lsb: s.Msb + 1})
		}

		result = append(result, s)
		next = s.Lsb - 1
	}

	if next >= 0 {
		result = append(result, Segment{Name: UnusedName, Msb: next, Lsb: 0})
	}

	return result, nil
}

// Draws an ascii diagram of a frame of width bits split in segments, most
// significant bit on the left:
//
//	31   2 1    0
//	+------+------+
//	| base | mode |
//	+------+------+
func BitFrame(segments []Segment, width int) (string, error) {
	if width < 1 {
		return "", utils.MakeError(ErrMalformedFrame, "frame width %d", width)
	}

	all, err := fillGaps(segments, width)
	if err != nil {
		return "", err
	}

	var indices, border, body strings.Builder

	for _, s := range all {
		c := newCell(s)

		indices.WriteString(c.indices())
		border.WriteString("+" + strings.Repeat("-", c.width))
		body.WriteString("|" + c.body())
	}

	border.WriteString("+")
	body.WriteString("|")

	var result strings.Builder

	for _, row := range []string{strings.TrimRight(indices.String(), " "), border.String(), body.String(), border.String()} {
		result.WriteString(row)
		result.WriteString("\n")
	}

	return result.String(), nil
}
