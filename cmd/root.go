package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Manu343726/csrgen/cmd/tools"
)

var cfgFile string

// logFile is kept open for the whole run and closed by Execute
var logFile *os.File

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "csrgen",
	Short: "RISC-V control and status register accessor generator",
	Long: `csrgen generates accessors for the RISC-V control and status registers (CSRs)
from a YAML register database.

Every register gets read, write and bit manipulation functions issuing a single
Zicsr instruction, plus bit offset, width and mask constants for its fields.
C, C++, Rust and Go targets are supported.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		reportError(slog.Default(), err)
	}

	if logFile != nil {
		logFile.Close()
	}

	if err != nil {
		os.Exit(1)
	}
}

// Logs the error a command failed with
func reportError(logger *slog.Logger, err error) {
	logger.Error("command failed", "error", err)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.csrgen.yaml)")
	flags.String("database", "", "YAML register database (default: builtin RISC-V privileged registers)")
	flags.String("xlen", "64", "Machine word width of the target: 32 or 64")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Also write JSON logs to this file")

	for _, name := range []string{"database", "xlen", "log-level", "log-file"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	RootCmd.AddCommand(tools.ToolsCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".csrgen" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".csrgen")
	}

	viper.SetEnvPrefix("csrgen")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level '%v': %w", s, err)
	}

	return level, nil
}

// Installs the default logger: text on stderr, plus JSON on the log file if any
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}

	if path := viper.GetString("log-file"); path != "" {
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}

		handlers = append(handlers, slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)).With("command", cmd.Name()))
	return nil
}
