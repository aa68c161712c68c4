package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	json "github.com/goccy/go-json"

	typeforge "github.com/reoring/typeforge"
	"github.com/reoring/typeforge/schemafile"
)

var convertCmd = &cobra.Command{
	Use:   "convert [data-file]",
	Short: "Coerce a document toward a schema and print the result",
	Long: `Validate a document with conversion enabled: values that do not
conform are coerced toward the schema's alternatives (text to numbers,
numbers to text, truthy tokens to booleans, and so on). On success the
converted document prints as JSON; on failure the violation report
prints and the exit status is non-zero.

Examples:
  typeforge convert -s schema.yaml config.yaml
  typeforge convert -s schema.yaml data.json -o converted.json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvertCmd,
}

var (
	convertSchemaPath   string
	convertAllowMissing bool
	convertOutPath      string
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertSchemaPath, "schema", "s", "", "schema file (required)")
	convertCmd.Flags().BoolVar(&convertAllowMissing, "allow-missing", false, "tolerate missing keys")
	convertCmd.Flags().StringVarP(&convertOutPath, "out", "o", "", "write the converted document to a file instead of stdout")
	_ = convertCmd.MarkFlagRequired("schema")
}

func runConvertCmd(cmd *cobra.Command, args []string) error {
	schema, err := schemafile.ParseFile(convertSchemaPath)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	res := typeforge.Convert(context.Background(), doc, schema, typeforge.Opt{
		AllowMissing: convertAllowMissing,
	})
	if !res.Valid {
		if err := printReport(os.Stderr, res); err != nil {
			return err
		}
		os.Exit(1)
	}

	out, err := json.MarshalIndent(res.Converted, "", "  ")
	if err != nil {
		return fmt.Errorf("render converted document: %w", err)
	}
	if convertOutPath != "" {
		if err := os.WriteFile(convertOutPath, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write converted document: %w", err)
		}
		return nil
	}
	fmt.Println(string(out))
	return nil
}
