// Package main is the entry point for the campus CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/campus/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		if cli.IsWarning(err) {
			return
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "campus",
	Short: "campus - training center administration from the command line",
	Long: `campus manages the records of a school or training center: courses,
classrooms, the subject catalog, the diploma registry and its form fields,
a to-do list and a contact list.

Each kind of record is kept as one list in a local store under .campus/,
next to an optional .campusconfig.yaml holding instructors, responsible
persons and list settings.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			cli.SetColorEnabled(false)
		}
	},
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	flagDir      string
	flagLogLevel string
	flagNoColor  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", ".", "directory containing .campus/")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("campus version {{.Version}}\n")
}
