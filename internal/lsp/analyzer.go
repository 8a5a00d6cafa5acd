package lsp

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"

	"github.com/jsvensson/huesmith/internal/color"
	"github.com/jsvensson/huesmith/internal/highlight"
	"github.com/jsvensson/huesmith/internal/palette"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagnosticSource = "hstheme"

// AnalysisResult holds all information produced by analyzing a theme file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Table       *palette.Table
	Hues        palette.Hues
	Symbols     map[string]protocol.Range // color name -> colors entry range
	HueSymbols  map[string]protocol.Range // hue name -> hues entry range
	Groups      map[string]protocol.Range // highlight group -> highlights entry range
	Colors      []ColorLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.Color
	IsRef bool // true when the value references other names rather than a hex literal
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses theme content from memory and produces diagnostics, symbol
// tables, and resolved color locations. Unlike the compiler it collects ALL
// errors rather than stopping at the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Hues:       palette.Hues{},
		Table:      palette.NewTable(),
		Symbols:    make(map[string]protocol.Range),
		HueSymbols: make(map[string]protocol.Range),
		Groups:     make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		// Cannot proceed with semantic analysis if syntax is broken
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	var colorsBody, highlightsBody, globalsBody *hclsyntax.Body

	for _, block := range body.Blocks {
		switch block.Type {
		case "meta":
			result.analyzeMeta(block.Body)
		case "hues":
			result.analyzeHues(block.Body)
		case "colors":
			colorsBody = block.Body
		case "highlights":
			highlightsBody = block.Body
		case "globals":
			globalsBody = block.Body
		default:
			result.addError(block.DefRange(), fmt.Sprintf("unknown block %q (valid: meta, hues, colors, highlights, globals)", block.Type))
		}
	}

	if colorsBody != nil {
		result.analyzeColors(colorsBody)
	} else {
		result.addError(hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: 1, Column: 1},
			End:      hcl.Pos{Line: 1, Column: 1},
		}, "missing required colors block")
	}

	if highlightsBody != nil {
		result.analyzeHighlights(highlightsBody)
	}
	if globalsBody != nil {
		result.analyzeGlobals(globalsBody)
	}

	return result
}

func (r *AnalysisResult) analyzeMeta(body *hclsyntax.Body) {
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating meta.%s: %s", name, diags.Error()))
			continue
		}
		switch name {
		case "name":
			if val.Type() != cty.String || val.AsString() == "" {
				r.addError(attr.SrcRange, "meta.name must be a non-empty string")
			}
		case "background":
			if val.Type() != cty.String || (val.AsString() != "dark" && val.AsString() != "light") {
				r.addError(attr.SrcRange, "invalid background: must be dark or light")
			}
		default:
			r.addWarning(attr.SrcRange, fmt.Sprintf("unknown meta attribute %q (valid: name, background)", name))
		}
	}
}

func (r *AnalysisResult) analyzeHues(body *hclsyntax.Body) {
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating hues.%s: %s", name, diags.Error()))
			continue
		}
		if val.Type() != cty.Number {
			r.addError(attr.SrcRange, fmt.Sprintf("hues.%s: must be a number", name))
			continue
		}
		degrees, _ := val.AsBigFloat().Float64()
		r.Hues[name] = color.NormalizeHue(degrees)
		r.HueSymbols[name] = hclRangeToLSP(attr.SrcRange)
	}
}

// analyzeColors resolves the colors block tolerantly: entries that parse and
// whose references resolve are evaluated; everything else produces a
// diagnostic without aborting the rest of the block.
func (r *AnalysisResult) analyzeColors(body *hclsyntax.Body) {
	type colorEntry struct {
		attr *hclsyntax.Attribute
		expr palette.Expr
	}

	attrs := sortedAttributes(body)
	entries := make([]colorEntry, 0, len(attrs))
	declared := make(map[string]bool, len(attrs))

	for _, attr := range attrs {
		declared[attr.Name] = true
	}

	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating colors.%s: %s", attr.Name, diags.Error()))
			continue
		}
		if val.Type() != cty.String {
			r.addError(attr.SrcRange, fmt.Sprintf("colors.%s: must be a string", attr.Name))
			continue
		}

		expr, err := palette.ParseExpr(val.AsString())
		if err != nil {
			r.addError(attr.SrcRange, fmt.Sprintf("colors.%s: %s", attr.Name, err.Error()))
			continue
		}

		// Validate references up front so a broken entry is reported once,
		// at its definition, instead of through every dependent.
		valid := true
		for _, ref := range expr.Refs() {
			if !declared[ref] {
				r.addError(attr.SrcRange, fmt.Sprintf("colors.%s: unknown color reference %q", attr.Name, ref))
				valid = false
			}
		}
		if hslExpr, ok := expr.(palette.HSLExpr); ok && hslExpr.Hue.IsLookup() {
			if _, err := r.Hues.Lookup(hslExpr.Hue.Name); err != nil {
				r.addError(attr.SrcRange, fmt.Sprintf("colors.%s: %s", attr.Name, err.Error()))
				valid = false
			}
		}
		if !valid {
			continue
		}

		entries = append(entries, colorEntry{attr: attr, expr: expr})
	}

	// Evaluate in passes until no progress; what never settles is cyclic
	// (or depends on an entry excluded above).
	remaining := entries
	for {
		var stuck []colorEntry
		progress := false

		for _, entry := range remaining {
			ready := true
			for _, ref := range entry.expr.Refs() {
				if !r.Table.Has(ref) {
					ready = false
					break
				}
			}
			if !ready {
				stuck = append(stuck, entry)
				continue
			}

			resolved, err := entry.expr.Eval(r.Hues, r.Table)
			if err != nil {
				r.addError(entry.attr.SrcRange, fmt.Sprintf("colors.%s: %s", entry.attr.Name, err.Error()))
				progress = true
				continue
			}

			r.Table.Add(entry.attr.Name, resolved)
			r.Symbols[entry.attr.Name] = hclRangeToLSP(entry.attr.SrcRange)
			_, isHex := entry.expr.(palette.HexExpr)
			r.Colors = append(r.Colors, ColorLocation{
				Range: hclRangeToLSP(entry.attr.Expr.Range()),
				Color: resolved.Color(),
				IsRef: !isHex,
			})
			progress = true
		}

		if !progress || len(stuck) == 0 {
			for _, entry := range stuck {
				r.addError(entry.attr.SrcRange, fmt.Sprintf("colors.%s: part of a reference cycle or depends on an unresolved entry", entry.attr.Name))
			}
			return
		}
		remaining = stuck
	}
}

func (r *AnalysisResult) analyzeHighlights(body *hclsyntax.Body) {
	for _, attr := range sortedAttributes(body) {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating highlights.%s: %s", attr.Name, diags.Error()))
			continue
		}
		if val.Type() != cty.String {
			r.addError(attr.SrcRange, fmt.Sprintf("highlights.%s: must be a string", attr.Name))
			continue
		}

		r.Groups[attr.Name] = hclRangeToLSP(attr.SrcRange)

		spec, err := highlight.ParseSpec(attr.Name, val.AsString(), r.Table)
		if err != nil {
			r.addError(attr.SrcRange, err.Error())
			continue
		}

		// Surface the foreground (or first set color) as the entry's swatch.
		for _, ref := range []*highlight.ColorRef{spec.Fg, spec.Bg, spec.Special} {
			if ref != nil {
				r.Colors = append(r.Colors, ColorLocation{
					Range: hclRangeToLSP(attr.Expr.Range()),
					Color: ref.Color.Color(),
					IsRef: true,
				})
				break
			}
		}
	}
}

func (r *AnalysisResult) analyzeGlobals(body *hclsyntax.Body) {
	for _, attr := range sortedAttributes(body) {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating globals.%s: %s", attr.Name, diags.Error()))
			continue
		}
		if val.Type() != cty.String {
			r.addError(attr.SrcRange, fmt.Sprintf("globals.%s: must be a string", attr.Name))
			continue
		}

		ref, err := highlight.ResolveGlobal(attr.Name, val.AsString(), r.Table)
		if err != nil {
			r.addError(attr.SrcRange, err.Error())
			continue
		}
		if ref != nil {
			r.Colors = append(r.Colors, ColorLocation{
				Range: hclRangeToLSP(attr.Expr.Range()),
				Color: ref.Color.Color(),
				IsRef: true,
			})
		}
	}
}

// sortedAttributes returns a body's attributes in source order.
func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
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
	return attrs
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagnosticSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}
