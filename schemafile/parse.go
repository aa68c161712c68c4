// Package schemafile loads validation schemas from compact YAML or JSON
// documents.
//
// The format maps onto schema shapes directly: a bare string is a leaf
// type name, a list of names is a leaf with alternatives, a map with a
// "type: list" directive and an "of" entry is a sequence, and any other
// map is a keyed schema over its entries ("type: object" with "fields"
// spells the same thing explicitly). Field names sort alphabetically so
// a document always produces the same schema.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	typeforge "github.com/reoring/typeforge"
	"github.com/reoring/typeforge/internal/collect"
)

// Parse reads a schema from a YAML document.
func Parse(data []byte) (typeforge.Schema, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return typeforge.Schema{}, fmt.Errorf("parse schema document: %w", err)
	}
	return build(doc)
}

// ParseJSON reads a schema from a JSON document.
func ParseJSON(data []byte) (typeforge.Schema, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return typeforge.Schema{}, fmt.Errorf("parse schema document: %w", err)
	}
	return build(doc)
}

// ParseFile reads a schema from path, picking the parser by extension:
// goccy/go-json for .json, YAML for everything else.
func ParseFile(path string) (typeforge.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return typeforge.Schema{}, fmt.Errorf("read schema file: %w", err)
	}
	var s typeforge.Schema
	if strings.EqualFold(filepath.Ext(path), ".json") {
		s, err = ParseJSON(data)
	} else {
		s, err = Parse(data)
	}
	if err != nil {
		return typeforge.Schema{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseDir loads every .yaml, .yml and .json schema in dir, keyed by
// file name without extension. Two files spelling the same name is an
// error.
func ParseDir(dir string) (map[string]typeforge.Schema, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, e.Name())
		}
	}

	jsonFiles, yamlFiles := collect.Partition(files, func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ".json")
	})

	out := make(map[string]typeforge.Schema, len(files))
	add := func(name string, s typeforge.Schema) error {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if _, dup := out[base]; dup {
			return fmt.Errorf("schema %q defined twice in %s", base, dir)
		}
		out[base] = s
		return nil
	}
	for _, name := range append(yamlFiles, jsonFiles...) {
		s, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if err := add(name, s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func build(doc any) (typeforge.Schema, error) {
	switch x := doc.(type) {
	case string:
		t, ok := typeforge.TypeByName(x)
		if !ok {
			return typeforge.Schema{}, fmt.Errorf("unknown type name %q", x)
		}
		return typeforge.Leaf(t), nil
	case []any:
		return alternatives(x)
	case map[string]any:
		if directive, ok := x["type"]; ok {
			return directed(directive, x)
		}
		return keyed(x)
	case nil:
		return typeforge.Schema{}, fmt.Errorf("empty schema document")
	}
	return typeforge.Schema{}, fmt.Errorf("cannot read a schema from %T", doc)
}

// alternatives builds a leaf from a list of type names. Nested lists
// flatten into the same alternative set.
func alternatives(xs []any) (typeforge.Schema, error) {
	flat := flattenLists(xs)
	if len(flat) == 0 {
		return typeforge.Schema{}, fmt.Errorf("empty alternative list")
	}
	types := make([]typeforge.Type, 0, len(flat))
	for _, e := range flat {
		name, ok := e.(string)
		if !ok {
			return typeforge.Schema{}, fmt.Errorf("alternative must be a type name, got %T", e)
		}
		t, ok := typeforge.TypeByName(name)
		if !ok {
			return typeforge.Schema{}, fmt.Errorf("unknown type name %q", name)
		}
		types = append(types, t)
	}
	return typeforge.Leaf(types...), nil
}

func flattenLists(xs []any) []any {
	groups := make([][]any, 0, len(xs))
	for _, e := range xs {
		if sub, ok := e.([]any); ok {
			groups = append(groups, flattenLists(sub))
		} else {
			groups = append(groups, []any{e})
		}
	}
	return collect.Flatten(groups)
}

func directed(directive any, m map[string]any) (typeforge.Schema, error) {
	switch tv := directive.(type) {
	case string:
		switch tv {
		case "list":
			of, ok := m["of"]
			if !ok {
				return typeforge.Schema{}, fmt.Errorf("list schema requires an \"of\" entry")
			}
			elem, err := build(of)
			if err != nil {
				return typeforge.Schema{}, err
			}
			return typeforge.Seq(elem), nil
		case "object":
			fields, ok := m["fields"].(map[string]any)
			if !ok {
				return typeforge.Schema{}, fmt.Errorf("object schema requires a \"fields\" map")
			}
			return keyed(fields)
		default:
			t, ok := typeforge.TypeByName(tv)
			if !ok {
				return typeforge.Schema{}, fmt.Errorf("unknown type name %q", tv)
			}
			return typeforge.Leaf(t), nil
		}
	case []any:
		return alternatives(tv)
	}
	return typeforge.Schema{}, fmt.Errorf("invalid type directive %v", directive)
}

func keyed(m map[string]any) (typeforge.Schema, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]typeforge.Field, 0, len(names))
	for _, name := range names {
		sub, err := build(m[name])
		if err != nil {
			return typeforge.Schema{}, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, typeforge.F(name, sub))
	}
	return typeforge.Keyed(fields...), nil
}
