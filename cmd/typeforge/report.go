package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	typeforge "github.com/reoring/typeforge"
	"github.com/reoring/typeforge/internal/collect"
)

// loadDocument reads a data document from path, or from stdin when path
// is "-". Stdin and .json files decode as JSON with number preservation,
// everything else as YAML.
func loadDocument(path string) (any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var doc any
	if path == "-" || strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// printReport renders a validation result, honoring the --json flag. The
// text form groups violations by kind.
func printReport(w io.Writer, res typeforge.ValidationResult) error {
	if jsonOut {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	if res.Valid {
		fmt.Fprintln(w, "valid")
		return nil
	}

	fmt.Fprintf(w, "invalid: %d violation(s)\n", len(res.Violations))
	groups := collect.GroupBy(res.Violations, func(v typeforge.Violation) string { return v.Kind })
	kinds := make([]string, 0, len(groups))
	for kind := range groups {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(w, "\n%s:\n", kind)
		for _, v := range groups[kind] {
			if v.Message != "" {
				fmt.Fprintf(w, "  %s: %s (expected %s, found %s)\n", v.Path, v.Message, v.Expected, v.Found)
			} else {
				fmt.Fprintf(w, "  %s: expected %s, found %s\n", v.Path, v.Expected, v.Found)
			}
		}
	}
	return nil
}
