package csr

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Manu343726/csrgen/pkg/utils"
)

// On-disk layout of a register database:
//
//	regs:
//	  mtvec:
//	    priv: MRW
//	    desc: "Machine Trap Vector Base Address"
//	    address: 0x305
//	    fields:
//	      base: { bits: ["mxlen-1", 2] }
//	      mode: { bits: [1, 0] }
//
// Mappings are decoded node by node so declaration order is kept and
// duplicated keys are reported instead of silently overwritten.
type databaseYAML struct {
	Regs registersYAML `yaml:"regs"`
}

type registerYAML struct {
	Priv     string     `yaml:"priv"`
	Desc     string     `yaml:"desc"`
	MMIO     bool       `yaml:"mmio"`
	Width    string     `yaml:"width"`
	RV32Only bool       `yaml:"rv32_only"`
	Address  *uint16    `yaml:"address"`
	Fields   fieldsYAML `yaml:"fields"`
}

type fieldYAML struct {
	Bits []bitExprYAML `yaml:"bits"`
	Imm  *bool         `yaml:"imm"`
	Desc string        `yaml:"desc"`
}

type entryYAML[T any] struct {
	name  string
	line  int
	value T
}

type registersYAML []entryYAML[registerYAML]

type fieldsYAML []entryYAML[fieldYAML]

type bitExprYAML struct {
	BitExpr
}

func (e *bitExprYAML) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return utils.MakeError(ErrInvalidBitExpression, "line %d: expected a scalar", node.Line)
	}

	expr, err := ParseBitExpr(node.Value)
	if err != nil {
		return utils.MakeError(err, "line %d", node.Line)
	}

	e.BitExpr = expr
	return nil
}

func (rs *registersYAML) UnmarshalYAML(node *yaml.Node) error {
	entries, err := decodeOrderedMapping[registerYAML](node, ErrDuplicateRegister)
	*rs = entries
	return err
}

func (fs *fieldsYAML) UnmarshalYAML(node *yaml.Node) error {
	entries, err := decodeOrderedMapping[fieldYAML](node, ErrDuplicateField)
	*fs = entries
	return err
}

func decodeOrderedMapping[T any](node *yaml.Node, duplicateErr error) ([]entryYAML[T], error) {
	if node.Kind != yaml.MappingNode {
		return nil, utils.MakeError(ErrMalformedDatabase, "line %d: expected a mapping", node.Line)
	}

	entries := make([]entryYAML[T], 0, len(node.Content)/2)
	seen := make(map[string]int, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if line, exists := seen[key.Value]; exists {
			return nil, utils.MakeError(duplicateErr, "'%v' at line %d, first declared at line %d", key.Value, key.Line, line)
		}
		seen[key.Value] = key.Line

		entry := entryYAML[T]{
			name: key.Value,
			line: key.Line,
		}

		if err := value.Decode(&entry.value); err != nil {
			return nil, fmt.Errorf("'%v' at line %d: %w", key.Value, key.Line, err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Parses a YAML register database. source names the input in diagnostics.
func Parse(r io.Reader, source string) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc databaseYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrMalformedDatabase, source, err)
	}

	registers := make([]*Register, 0, len(doc.Regs))
	var errs []error

	for _, entry := range doc.Regs {
		r, err := entry.value.toRegister(entry.name)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", entry.line, err))
			continue
		}

		registers = append(registers, r)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%v: %w", source, errors.Join(errs...))
	}

	return NewDatabase(source, registers...)
}

// Loads a YAML register database from a file
func Load(path string) (*Database, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, path)
}

func (ry *registerYAML) toRegister(name string) (*Register, error) {
	access, err := ParseAccess(ry.Priv)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}

	r := NewRegister(name, access)
	r.Description = ry.Desc
	r.MMIO = ry.MMIO
	r.RV32Only = ry.RV32Only

	switch ry.Width {
	case "", "xlen":
		r.Width = WidthXLEN
	case "32":
		r.Width = Width32
	case "64":
		r.Width = Width64
	default:
		return nil, registerError(ErrMalformedRegister, name, "width '%v', expected 32, 64 or xlen", ry.Width)
	}

	if ry.Address != nil {
		r.Address = *ry.Address
		r.HasAddress = true
	}

	for _, entry := range ry.Fields {
		f, err := entry.value.toField(entry.name)
		if err != nil {
			return nil, fmt.Errorf("%v: line %d: %w", name, entry.line, err)
		}

		r.AddField(f)
	}

	return r, nil
}

func (fy *fieldYAML) toField(name string) (*Field, error) {
	f := &Field{
		Name:        name,
		Description: fy.Desc,
		Immediate:   fy.Imm,
	}

	switch len(fy.Bits) {
	case 1:
		f.Msb, f.Lsb = fy.Bits[0].BitExpr, fy.Bits[0].BitExpr
	case 2:
		f.Msb, f.Lsb = fy.Bits[0].BitExpr, fy.Bits[1].BitExpr
	default:
		return nil, utils.MakeError(ErrMalformedField, "'%v': bits must be [msb, lsb] or [bit], got %d entries", name, len(fy.Bits))
	}

	return f, nil
}
