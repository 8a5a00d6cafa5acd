// Package huesmith compiles declarative .hstheme documents into resolved
// color themes for the Neovim emitter.
package huesmith

import (
	"fmt"

	"github.com/jsvensson/huesmith/internal/highlight"
	"github.com/jsvensson/huesmith/internal/palette"
	"github.com/jsvensson/huesmith/internal/parser"
)

// Meta holds theme metadata.
type Meta struct {
	Name       string
	Background string
}

// Highlight is one resolved highlight group in declaration order.
type Highlight struct {
	Group string
	Spec  highlight.Spec
}

// Global is one resolved global binding in declaration order. A nil Ref
// means the value was explicitly unset.
type Global struct {
	Name string
	Ref  *highlight.ColorRef
}

// Theme is the fully-compiled theme, ready for emission. All fields are
// read-only once compilation succeeds.
type Theme struct {
	Meta       Meta
	Colors     []palette.Entry
	Table      *palette.Table
	Highlights []Highlight
	Globals    []Global
}

// Load parses an .hstheme file and compiles it into a resolved Theme.
func Load(path string) (*Theme, error) {
	doc, err := parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	return Compile(doc)
}

// Compile resolves a parsed document: colors first, in dependency order,
// then highlights and globals against the finished color table. Compilation
// is all-or-nothing; the first error aborts.
func Compile(doc *parser.Document) (*Theme, error) {
	hues := palette.NewHues(doc.Hues)

	entries := make([]palette.RawEntry, len(doc.Colors))
	for i, c := range doc.Colors {
		entries[i] = palette.RawEntry{Name: c.Name, Expr: c.Value}
	}

	table, err := palette.Resolve(entries, hues)
	if err != nil {
		return nil, fmt.Errorf("resolving colors: %w", err)
	}

	theme := &Theme{
		Meta:   Meta{Name: doc.Meta.Name, Background: doc.Meta.Background},
		Colors: table.Entries(),
		Table:  table,
	}

	for _, h := range doc.Highlights {
		spec, err := highlight.ParseSpec(h.Name, h.Value, table)
		if err != nil {
			return nil, fmt.Errorf("resolving highlights: %w", err)
		}
		theme.Highlights = append(theme.Highlights, Highlight{Group: h.Name, Spec: spec})
	}

	for _, g := range doc.Globals {
		ref, err := highlight.ResolveGlobal(g.Name, g.Value, table)
		if err != nil {
			return nil, fmt.Errorf("resolving globals: %w", err)
		}
		theme.Globals = append(theme.Globals, Global{Name: g.Name, Ref: ref})
	}

	return theme, nil
}
