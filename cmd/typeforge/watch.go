package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	typeforge "github.com/reoring/typeforge"
	"github.com/reoring/typeforge/schemafile"
)

var watchCmd = &cobra.Command{
	Use:   "watch [data-file]",
	Short: "Revalidate a document whenever its schema changes",
	Long: `Load a schema file or directory, validate the document, and keep
revalidating every time a schema changes on disk. SIGHUP also forces a
reload. Runs until interrupted.

Examples:
  typeforge watch -s schema.yaml config.yaml
  typeforge watch -s schemas/ --name server config.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchCmd,
}

var (
	watchSchemaPath string
	watchSchemaName string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchSchemaPath, "schema", "s", "", "schema file or directory (required)")
	watchCmd.Flags().StringVar(&watchSchemaName, "name", "", "schema name to validate against when the directory holds several")
	_ = watchCmd.MarkFlagRequired("schema")
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	dataPath := args[0]
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	holder, err := schemafile.NewHolder(watchSchemaPath, logger)
	if err != nil {
		return err
	}
	defer holder.Stop()

	check := func(schemas map[string]typeforge.Schema) {
		schema, name, err := pickSchema(schemas, watchSchemaName)
		if err != nil {
			logger.Error().Err(err).Msg("cannot pick schema")
			return
		}
		doc, err := loadDocument(dataPath)
		if err != nil {
			logger.Error().Err(err).Str("document", dataPath).Msg("cannot read document")
			return
		}
		res := typeforge.Validate(context.Background(), doc, schema)
		if res.Valid {
			logger.Info().Str("document", dataPath).Str("schema", name).Msg("document valid")
			return
		}
		logger.Warn().
			Str("document", dataPath).
			Str("schema", name).
			Int("violations", len(res.Violations)).
			Msg("document invalid")
		for _, v := range res.Violations {
			logger.Warn().
				Str("path", v.Path).
				Str("kind", v.Kind).
				Str("expected", v.Expected).
				Str("found", v.Found).
				Msg("violation")
		}
	}

	holder.OnChange(check)
	if err := holder.WatchFiles(); err != nil {
		return err
	}
	holder.WatchSignals()

	// Initial pass before any change arrives.
	initial := make(map[string]typeforge.Schema)
	for _, name := range holder.Names() {
		if s, ok := holder.Get(name); ok {
			initial[name] = s
		}
	}
	check(initial)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	logger.Info().Str("signal", sig.String()).Msg("shutting down")
	return nil
}

func pickSchema(schemas map[string]typeforge.Schema, name string) (typeforge.Schema, string, error) {
	if name != "" {
		s, ok := schemas[name]
		if !ok {
			return typeforge.Schema{}, "", fmt.Errorf("no schema named %q", name)
		}
		return s, name, nil
	}
	if len(schemas) == 1 {
		for n, s := range schemas {
			return s, n, nil
		}
	}
	names := make([]string, 0, len(schemas))
	for n := range schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return typeforge.Schema{}, "", fmt.Errorf("several schemas loaded (%v), pick one with --name", names)
}
