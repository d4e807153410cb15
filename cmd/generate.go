package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Manu343726/csrgen/cmd/settings"
	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/gen"
	"github.com/Manu343726/csrgen/pkg/utils"
)

var (
	generateRegisters []string
	generateOutput    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate CSR accessors",
	Long: `Generates CSR accessor functions and field constants for a target language.

Available backends:
` + strings.Join(utils.Map(gen.Backends(), func(name string) string {
		return fmt.Sprintf("  %-5v %v", name, gen.BackendDescription(name))
	}), "\n") + `

Without --output the code is written to stdout. Backends emitting a single file
take --output as the file path, the go backend takes it as a directory.

Example:
  csrgen generate --lang c --xlen 32 -o riscv-csr.h
  csrgen generate --lang cpp -o riscv-csr.hpp
  csrgen generate --lang rust -r mstatus -r mtvec
  csrgen generate --lang go --package csr -o ./csr`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	RootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringP("lang", "l", "c", "Target language: "+strings.Join(gen.Backends(), ", "))
	flags.StringP("package", "p", gen.DefaultPackage, "Package name of the generated Go code")
	flags.StringArrayVarP(&generateRegisters, "register", "r", nil, "Generate only this register (repeatable)")
	flags.StringVarP(&generateOutput, "output", "o", "", "Output file, or directory for multi-file backends")

	for _, name := range []string{"lang", "package"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	db, xlen, err := settings.Target()
	if err != nil {
		return err
	}

	generator, err := gen.NewGenerator(viper.GetString("lang"), gen.Options{
		XLEN:      xlen,
		Registers: generateRegisters,
		Package:   viper.GetString("package"),
		Logger:    slog.Default(),
	})
	if err != nil {
		return err
	}

	if generateOutput == "" {
		return generateToStdout(generator, db)
	}

	if generator.Files() > 1 {
		paths, err := generator.WriteFiles(generateOutput, db)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Generated %v\n", strings.Join(paths, ", "))
		return nil
	}

	if err := generator.WriteFile(generateOutput, db); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Generated %v\n", generateOutput)
	return nil
}

func generateToStdout(generator *gen.Generator, db *csr.Database) error {
	var buffer bytes.Buffer

	if err := generator.GenerateTo(&buffer, db); err != nil {
		return err
	}

	code := buffer.String()

	if generator.Backend() == "c" && term.IsTerminal(int(os.Stdout.Fd())) {
		code = utils.HighlightCCode(code)
	}

	_, err := fmt.Fprint(os.Stdout, code)
	return err
}
