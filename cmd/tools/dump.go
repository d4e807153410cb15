package tools

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Manu343726/csrgen/cmd/settings"
	"github.com/Manu343726/csrgen/pkg/gen"
	"github.com/Manu343726/csrgen/pkg/utils"
)

type fieldDump struct {
	Name       string `yaml:"name"`
	Offset     int    `yaml:"offset"`
	Width      int    `yaml:"width"`
	Mask       string `yaml:"mask"`
	AllSetMask string `yaml:"all_set_mask"`
	Immediate  bool   `yaml:"imm"`
}

type registerDump struct {
	Name       string      `yaml:"name"`
	Access     string      `yaml:"priv"`
	Address    string      `yaml:"address,omitempty"`
	ValueBits  int         `yaml:"value_bits"`
	Accessors  []string    `yaml:"accessors"`
	Shorthands []string    `yaml:"shorthands,omitempty"`
	Fields     []fieldDump `yaml:"fields,omitempty"`
}

type databaseDump struct {
	Source    string         `yaml:"source"`
	XLEN      int            `yaml:"xlen"`
	Registers []registerDump `yaml:"registers"`
}

func dumpPlan(plan *gen.Plan) databaseDump {
	return databaseDump{
		Source: plan.Source,
		XLEN:   int(plan.XLEN),
		Registers: utils.Map(plan.Registers, func(r *gen.RegisterPlan) registerDump {
			dump := registerDump{
				Name:      r.Register.Name,
				Access:    r.Register.Access.String(),
				ValueBits: r.ValueBits,
				Accessors: utils.Map(r.Operations, gen.Operation.String),
				Shorthands: utils.Map(r.Shorthands, func(f *gen.FieldPlan) string {
					return f.Field.Name
				}),
				Fields: utils.Map(r.Fields, func(f *gen.FieldPlan) fieldDump {
					return fieldDump{
						Name:       f.Field.Name,
						Offset:     f.Layout.BitOffset,
						Width:      f.Layout.BitWidth,
						Mask:       fmt.Sprintf("0x%x", f.Layout.BitMask),
						AllSetMask: fmt.Sprintf("0x%x", f.Layout.AllSetMask),
						Immediate:  f.Immediate,
					}
				}),
			}

			if r.Register.HasAddress {
				dump.Address = fmt.Sprintf("0x%03x", r.Register.Address)
			}

			return dump
		}),
	}
}

var dumpCmd = &cobra.Command{
	Use:   "dump [register...]",
	Short: "Dump resolved register layouts as YAML",
	Long: `Resolves the database for the selected XLEN and dumps, for every register
(or only the given ones), the generated accessors and the offset, width and
masks of its fields.

Example:
  csrgen tools dump --xlen 32 mip mtvec`,
	ValidArgsFunction: completeRegisters,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, xlen, err := settings.Target()
		if err != nil {
			return err
		}

		plan, err := gen.NewPlan(db, xlen, args, slog.Default())
		if err != nil {
			return err
		}

		w, closeOutput, err := output(cmd)
		if err != nil {
			return err
		}
		defer closeOutput()

		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(dumpPlan(plan)); err != nil {
			return err
		}

		return encoder.Close()
	},
}

func init() {
	ToolsCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the dump is written to stdout.")
}
