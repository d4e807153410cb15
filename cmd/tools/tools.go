package tools

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Manu343726/csrgen/cmd/settings"
)

// ToolsCmd represents the tools command
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Register database inspection tools",
}

// Completes register names of the configured database
func completeRegisters(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	db, err := settings.Database()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := make([]string, 0, db.Len())
	for _, r := range db.Registers() {
		if strings.HasPrefix(r.Name, toComplete) {
			names = append(names, r.Name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// Output of a tool, the file given by --output or stdout. The returned
// function closes the file.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return file, file.Close, nil
}
