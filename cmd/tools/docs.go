package tools

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Manu343726/csrgen/cmd/settings"
	"github.com/Manu343726/csrgen/pkg/csr/doc"
)

var docsCmd = &cobra.Command{
	Use:   "docs register...",
	Short: "Show register documentation",
	Long: `Dumps the documentation of the given registers: address, access mode,
value width, bit layout diagram and field table for the selected XLEN.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Example:
  csrgen tools docs mstatus mtvec
  csrgen tools docs --xlen 32 mcause`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeRegisters,
	RunE: func(cmd *cobra.Command, args []string) error {
		xlen, err := settings.XLEN()
		if err != nil {
			return err
		}

		db, err := settings.Database()
		if err != nil {
			return err
		}

		w, closeOutput, err := output(cmd)
		if err != nil {
			return err
		}
		defer closeOutput()

		for i, name := range args {
			r, err := db.Register(name)
			if err != nil {
				return err
			}

			if i > 0 {
				fmt.Fprintln(w)
			}

			if err := doc.Describe(w, r, xlen); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
