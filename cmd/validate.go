package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Manu343726/csrgen/cmd/settings"
	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/gen"
)

var validateAll bool

var (
	colorOk      = color.New(color.FgGreen, color.Bold)
	colorFailed  = color.New(color.FgRed, color.Bold)
	colorCount   = color.New(color.FgCyan)
	colorProblem = color.New(color.FgYellow)
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a register database",
	Long: `Checks every register and field of the database: names, access modes,
addresses, bit ranges, overlapping fields and immediate eligibility.
All problems are reported at once.

Example:
  csrgen validate --database my-csrs.yaml --xlen 32
  csrgen validate --all`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVarP(&validateAll, "all", "a", false, "Validate for every supported XLEN instead of --xlen")
}

// Individual problems of a joined validation error
func problems(err error) []error {
	var joined interface{ Unwrap() []error }

	if errors.As(err, &joined) {
		return joined.Unwrap()
	}

	return []error{err}
}

func validateFor(db *csr.Database, xlen csr.XLEN) bool {
	plan, err := gen.NewPlan(db, xlen, nil, slog.Default())
	if err != nil {
		colorFailed.Printf("%v: FAILED\n", xlen)
		for _, problem := range problems(err) {
			colorProblem.Printf("  - %v\n", problem)
		}
		return false
	}

	mmio := 0
	for _, r := range db.Registers() {
		if r.MMIO {
			mmio++
		}
	}

	colorOk.Printf("%v: OK", xlen)
	fmt.Printf(" %v registers, %v memory mapped, %v accessors, %v constants\n",
		colorCount.Sprint(len(plan.Registers)),
		colorCount.Sprint(mmio),
		colorCount.Sprint(plan.Accessors()),
		colorCount.Sprint(plan.Constants()))
	return true
}

func runValidate(cmd *cobra.Command, args []string) error {
	db, err := settings.Database()
	if err != nil {
		return err
	}

	xlens := csr.SupportedXLENs

	if !validateAll {
		xlen, err := settings.XLEN()
		if err != nil {
			return err
		}

		xlens = []csr.XLEN{xlen}
	}

	fmt.Printf("%v: %v registers\n", db.Source, db.Len())

	failed := 0
	for _, xlen := range xlens {
		if !validateFor(db, xlen) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%v: %w", db.Source, csr.ErrMalformedDatabase)
	}

	return nil
}
