package main

import (
	"fmt"

	"github.com/spf13/cobra"

	json "github.com/goccy/go-json"

	typeforge "github.com/reoring/typeforge"
)

var relateCmd = &cobra.Command{
	Use:   "relate [source-type] [target-type]",
	Short: "Report how two built-in types relate",
	Long: `Classify the relationship between two type names on the built-in
ladder (identical, subtype, supertype, implicit_convertible,
convertible, container_compatible, structurally_compatible,
protocol_compatible, incompatible) along with its conversion distance.

Examples:
  typeforge relate int float
  typeforge relate string bytes --json`,
	Args: cobra.ExactArgs(2),
	RunE: runRelateCmd,
}

func init() {
	rootCmd.AddCommand(relateCmd)
}

func runRelateCmd(cmd *cobra.Command, args []string) error {
	source, ok := typeforge.TypeByName(args[0])
	if !ok {
		return fmt.Errorf("unknown type name %q", args[0])
	}
	target, ok := typeforge.TypeByName(args[1])
	if !ok {
		return fmt.Errorf("unknown type name %q", args[1])
	}

	an := typeforge.NewAnalyzer(nil, nil)
	rel := an.Relationship(source, target)

	if jsonOut {
		out := struct {
			Source       string `json:"source"`
			Target       string `json:"target"`
			Relationship string `json:"relationship"`
			Distance     *int   `json:"distance"`
		}{Source: source.Name(), Target: target.Name(), Relationship: rel.String()}
		if rel != typeforge.Incompatible {
			d := an.Distance(source, target)
			out.Distance = &d
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if rel == typeforge.Incompatible {
		fmt.Printf("%s -> %s: %s\n", source.Name(), target.Name(), rel)
		return nil
	}
	fmt.Printf("%s -> %s: %s (distance %d)\n", source.Name(), target.Name(), rel, an.Distance(source, target))
	return nil
}
