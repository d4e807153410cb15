package gen

import (
	"log/slog"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/utils"
)

// Resolved layout of a field and whether it gets immediate shorthands
type FieldPlan struct {
	Register  *csr.Register
	Field     *csr.Field
	Layout    csr.Layout
	Immediate bool
}

// Upper case symbol fragment of the field, {REG}_{FIELD}
func (f *FieldPlan) Name() string {
	return f.Register.UpperName() + "_" + f.Field.UpperName()
}

// Constant symbol of the field, {REG}_{FIELD}_{suffix}
func (f *FieldPlan) Symbol(suffix string) string {
	return f.Name() + "_" + suffix
}

// CamelCase symbol fragment of the field, {Reg}{Field}
func (f *FieldPlan) GoName() string {
	return utils.CamelCase(f.Register.Name) + utils.CamelCase(f.Field.Name)
}

// Everything emitted for one register
type RegisterPlan struct {
	Register *csr.Register

	// Size in bits of the register value type
	ValueBits int

	Operations []Operation

	// Immediate operations returning the previous value, readable registers
	// with immediates only
	ReadImmediates []Operation

	// Constants of every field, declaration order
	Fields []*FieldPlan

	// Fields with immediate shorthands, declaration order
	Shorthands []*FieldPlan
}

// Whether the accessor is generated for the register
func (p *RegisterPlan) Has(op Operation) bool {
	for _, o := range p.Operations {
		if o == op {
			return true
		}
	}

	return false
}

// Whether the register gets immediate accessors
func (p *RegisterPlan) HasImmediates() bool {
	return p.Has(WriteImm)
}

// Plans a single register. Memory mapped registers and registers not implemented
// on xlen produce no plan.
func PlanRegister(r *csr.Register, xlen csr.XLEN) (*RegisterPlan, error) {
	if r.MMIO || !r.ExistsOn(xlen) {
		return nil, nil
	}

	plan := &RegisterPlan{
		Register:   r,
		ValueBits:  r.ValueBits(xlen),
		Operations: RegisterOperations(r),
		Fields:     make([]*FieldPlan, 0, len(r.Fields)),
	}

	if plan.HasImmediates() && r.Access.CanRead() {
		plan.ReadImmediates = ReadImmediateOperations()
	}

	for _, f := range r.Fields {
		layout, err := f.Layout(xlen)
		if err != nil {
			return nil, err
		}

		imm, err := f.ImmediateEligible(xlen)
		if err != nil {
			return nil, err
		}

		field := &FieldPlan{
			Register:  r,
			Field:     f,
			Layout:    layout,
			Immediate: imm,
		}

		plan.Fields = append(plan.Fields, field)

		if imm && plan.HasImmediates() {
			plan.Shorthands = append(plan.Shorthands, field)
		}
	}

	return plan, nil
}

// Generation input for a whole database
type Plan struct {
	XLEN   csr.XLEN
	Source string

	Registers []*RegisterPlan
}

// Number of generated accessors
func (p *Plan) Accessors() int {
	count := 0

	for _, r := range p.Registers {
		count += len(r.Operations)
	}

	return count
}

// Number of generated constants
func (p *Plan) Constants() int {
	count := 0

	for _, r := range p.Registers {
		count += 4 * len(r.Fields)
	}

	return count
}

// Validates the database for xlen and plans the selected registers (all of them
// when names is empty), in declaration order
func NewPlan(db *csr.Database, xlen csr.XLEN, names []string, logger *slog.Logger) (*Plan, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := db.Validate(xlen); err != nil {
		return nil, err
	}

	registers, err := db.Select(xlen, names...)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		skipped := utils.Filter(db.Registers(), func(r *csr.Register) bool { return !r.ExistsOn(xlen) })
		for _, r := range skipped {
			logger.Debug("register not implemented on target, skipped", "register", r.Name, "xlen", xlen)
		}
	}

	plan := &Plan{
		XLEN:      xlen,
		Source:    db.Source,
		Registers: make([]*RegisterPlan, 0, len(registers)),
	}

	for _, r := range registers {
		if r.MMIO {
			logger.Debug("memory mapped register, skipped", "register", r.Name)
			continue
		}

		rp, err := PlanRegister(r, xlen)
		if err != nil {
			return nil, err
		}

		for _, f := range rp.Fields {
			if f.Field.Immediate == nil {
				logger.Debug("inferred immediate eligibility", "field", f.Field.QualifiedName(), "immediate", f.Immediate)
			}
		}

		plan.Registers = append(plan.Registers, rp)
	}

	logger.Info("planned registers",
		"source", db.Source,
		"xlen", xlen,
		"registers", len(plan.Registers),
		"accessors", plan.Accessors(),
		"constants", plan.Constants())

	return plan, nil
}
