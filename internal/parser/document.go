// Package parser loads .hstheme documents. It handles the outer HCL syntax
// only; the value mini-languages (color expressions, highlight lines) are
// parsed downstream against the loaded document.
package parser

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Meta holds theme metadata, passed through to the emitter.
type Meta struct {
	Name       string
	Background string
}

// Entry is one attribute of a section block, with its source range for
// diagnostics.
type Entry struct {
	Name  string
	Value string
	Range hcl.Range
}

// Document is the raw parsed theme file: metadata plus the four sections.
// Colors, Highlights, and Globals preserve declaration order.
type Document struct {
	Meta       Meta
	Hues       map[string]float64
	Colors     []Entry
	Highlights []Entry
	Globals    []Entry
}

// Parse loads and parses a theme file from disk.
func Parse(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseBytes(src, path)
}

// ParseBytes parses theme document source. The filename is used in
// diagnostics only.
func ParseBytes(src []byte, filename string) (*Document, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("internal error: parsed body is not *hclsyntax.Body")
	}

	doc := &Document{Hues: make(map[string]float64)}
	sawColors := false

	for _, block := range body.Blocks {
		switch block.Type {
		case "meta":
			if err := parseMeta(block.Body, &doc.Meta); err != nil {
				return nil, err
			}
		case "hues":
			if err := parseHues(block.Body, doc.Hues); err != nil {
				return nil, err
			}
		case "colors":
			entries, err := parseSection(block.Body, "colors")
			if err != nil {
				return nil, err
			}
			doc.Colors = append(doc.Colors, entries...)
			sawColors = true
		case "highlights":
			entries, err := parseSection(block.Body, "highlights")
			if err != nil {
				return nil, err
			}
			doc.Highlights = append(doc.Highlights, entries...)
		case "globals":
			entries, err := parseSection(block.Body, "globals")
			if err != nil {
				return nil, err
			}
			doc.Globals = append(doc.Globals, entries...)
		default:
			return nil, fmt.Errorf("%s: unknown block %q", block.DefRange().String(), block.Type)
		}
	}

	if !sawColors {
		return nil, fmt.Errorf("no colors block found")
	}
	if doc.Meta.Name == "" {
		return nil, fmt.Errorf("meta block must set a theme name")
	}
	if doc.Meta.Background != "dark" && doc.Meta.Background != "light" {
		return nil, fmt.Errorf("invalid background %q: must be dark or light", doc.Meta.Background)
	}

	return doc, nil
}

func parseMeta(body *hclsyntax.Body, meta *Meta) error {
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating meta.%s: %s", name, diags.Error())
		}
		if val.Type() != cty.String {
			return fmt.Errorf("meta.%s: must be a string", name)
		}
		switch name {
		case "name":
			meta.Name = val.AsString()
		case "background":
			meta.Background = val.AsString()
		default:
			return fmt.Errorf("meta.%s: unknown attribute (valid: name, background)", name)
		}
	}
	return nil
}

func parseHues(body *hclsyntax.Body, dest map[string]float64) error {
	for name, attr := range body.Attributes {
		if _, dup := dest[name]; dup {
			return fmt.Errorf("hues.%s: duplicate hue name", name)
		}
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating hues.%s: %s", name, diags.Error())
		}
		if val.Type() != cty.Number {
			return fmt.Errorf("hues.%s: must be a number", name)
		}
		degrees, _ := val.AsBigFloat().Float64()
		dest[name] = degrees
	}
	return nil
}

// parseSection reads a flat block of string attributes, ordered by source
// position so declaration order survives the map-shaped HCL API.
func parseSection(body *hclsyntax.Body, section string) ([]Entry, error) {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		a, b := attrs[i].SrcRange.Start, attrs[j].SrcRange.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	entries := make([]Entry, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %s.%s: %s", section, attr.Name, diags.Error())
		}
		if val.Type() != cty.String {
			return nil, fmt.Errorf("%s.%s: must be a string", section, attr.Name)
		}
		entries = append(entries, Entry{
			Name:  attr.Name,
			Value: val.AsString(),
			Range: attr.SrcRange,
		})
	}
	return entries, nil
}
