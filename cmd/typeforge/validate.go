package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	typeforge "github.com/reoring/typeforge"
	"github.com/reoring/typeforge/schemafile"
)

var validateCmd = &cobra.Command{
	Use:   "validate [data-file]",
	Short: "Check a document against a schema",
	Long: `Validate a YAML or JSON document against a schema file and report
every mismatch with its structural path. Pass "-" to read JSON from
stdin. Exits non-zero when the document is invalid.

Note that JSON numbers arrive as the generic "number" type; schemas for
JSON data should say "number", or use "typeforge convert" to coerce.

Examples:
  typeforge validate -s schema.yaml config.yaml
  cat data.json | typeforge validate -s schema.yaml -`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateCmd,
}

var (
	validateSchemaPath   string
	validateFailFast     bool
	validateAllowMissing bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "schema file (required)")
	validateCmd.Flags().BoolVar(&validateFailFast, "fail-fast", false, "stop at the first violation")
	validateCmd.Flags().BoolVar(&validateAllowMissing, "allow-missing", false, "tolerate missing keys")
	_ = validateCmd.MarkFlagRequired("schema")
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	schema, err := schemafile.ParseFile(validateSchemaPath)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	res := typeforge.Validate(context.Background(), doc, schema, typeforge.Opt{
		FailFast:     validateFailFast,
		AllowMissing: validateAllowMissing,
	})
	if err := printReport(os.Stdout, res); err != nil {
		return err
	}
	if !res.Valid {
		os.Exit(1)
	}
	return nil
}
