package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/typeforge/i18n"
)

var (
	// Global flags
	langFlag string
	jsonOut  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "typeforge",
	Short: "Validate and convert structured documents against type schemas",
	Long: `Typeforge checks YAML and JSON documents against compact type
schemas and reports every mismatch with its structural path.

Quick start:
  typeforge validate -s schema.yaml data.json   # report violations
  typeforge convert -s schema.yaml data.json    # coerce and print the result
  typeforge relate int float                    # how two types relate
  typeforge watch -s schemas/ data.json         # revalidate on schema change`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		i18n.SetLanguage(langFlag)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "en", "violation message language (en/ja)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "render reports as JSON")
}
