// Package doc renders human readable documentation of CSRs: bit layout
// diagrams and field tables.
package doc

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/utils"
)

// Resolved layout of a register field, as shown in the documentation
type FieldRow struct {
	Field     *csr.Field
	Layout    csr.Layout
	Immediate bool
}

// Resolves the layout of every field of a register
func FieldRows(r *csr.Register, xlen csr.XLEN) ([]FieldRow, error) {
	rows := make([]FieldRow, 0, len(r.Fields))

	for _, f := range r.Fields {
		layout, err := f.Layout(xlen)
		if err != nil {
			return nil, err
		}

		imm, err := f.ImmediateEligible(xlen)
		if err != nil {
			return nil, err
		}

		rows = append(rows, FieldRow{
			Field:     f,
			Layout:    layout,
			Immediate: imm,
		})
	}

	return rows, nil
}

// Bit layout diagram of a register value
func Diagram(r *csr.Register, xlen csr.XLEN) (string, error) {
	rows, err := FieldRows(r, xlen)
	if err != nil {
		return "", err
	}

	segments := utils.Map(rows, func(row FieldRow) Segment {
		return Segment{
			Name: row.Field.Name,
			Msb:  row.Layout.TopBit(),
			Lsb:  row.Layout.BitOffset,
		}
	})

	frame, err := BitFrame(segments, r.ValueBits(xlen))
	if err != nil {
		return "", fmt.Errorf("%v: %w", r.Name, err)
	}

	return frame, nil
}

func formatBits(l csr.Layout) string {
	if l.BitWidth == 1 {
		return fmt.Sprintf("[%d]", l.BitOffset)
	}

	return fmt.Sprintf("[%d:%d]", l.TopBit(), l.BitOffset)
}

// Writes a table with the resolved layout of every field of a register
func WriteFieldTable(w io.Writer, r *csr.Register, xlen csr.XLEN) error {
	rows, err := FieldRows(r, xlen)
	if err != nil {
		return err
	}

	bits := r.ValueBits(xlen)
	table := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(table, "FIELD\tBITS\tWIDTH\tMASK\tALL SET\tIMM\tDESCRIPTION")

	for _, row := range rows {
		imm := "no"
		if row.Immediate {
			imm = "yes"
		}

		fmt.Fprintf(table, "%v\t%v\t%d\t%v\t%v\t%v\t%v\n",
			row.Field.Name,
			formatBits(row.Layout),
			row.Layout.BitWidth,
			utils.FormatUintHex(row.Layout.BitMask, bits),
			utils.FormatUintHex(row.Layout.AllSetMask, row.Layout.BitWidth),
			imm,
			row.Field.Description)
	}

	return table.Flush()
}

// One line summary of the register attributes
func Summary(r *csr.Register, xlen csr.XLEN) string {
	var parts []string

	if r.HasAddress {
		parts = append(parts, fmt.Sprintf("address 0x%03X", r.Address))
	} else if r.MMIO {
		parts = append(parts, "memory mapped")
	}

	parts = append(parts, fmt.Sprintf("access %v (%v)", r.Access, r.Access.Privilege))
	parts = append(parts, fmt.Sprintf("%d bits on %v", r.ValueBits(xlen), xlen))

	if r.RV32Only {
		parts = append(parts, "rv32 only")
	}

	return strings.Join(parts, ", ")
}

// Writes the full documentation of a register: title, summary, bit layout and field table
func Describe(w io.Writer, r *csr.Register, xlen csr.XLEN) error {
	fmt.Fprintf(w, "%v: %v\n", r.Name, r.Description)
	fmt.Fprintf(w, "  %v\n", Summary(r, xlen))

	if r.MMIO {
		fmt.Fprintln(w, "  not accessible through CSR instructions")
		return nil
	}

	if !r.ExistsOn(xlen) {
		fmt.Fprintf(w, "  not implemented on %v\n", xlen)
		return nil
	}

	diagram, err := Diagram(r, xlen)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, diagram)

	if !r.HasFields() {
		return nil
	}

	fmt.Fprintln(w)
	return WriteFieldTable(w, r, xlen)
}
