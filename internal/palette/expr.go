package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsvensson/huesmith/internal/color"
)

// Expr is a parsed color expression. Each variant records which color names
// it references so the resolver can order evaluation without evaluating.
type Expr interface {
	// Refs returns the color names this expression depends on.
	Refs() []string
	// Eval resolves the expression against the hue table and the colors
	// resolved so far.
	Eval(hues Hues, table *Table) (color.HSL, error)
}

// HueRef is the hue argument of hsl(): either a literal degree value or a
// $name lookup into the hue table.
type HueRef struct {
	Name    string
	Degrees float64
}

// IsLookup reports whether the reference names a hue table entry.
func (r HueRef) IsLookup() bool {
	return r.Name != ""
}

func (r HueRef) resolve(hues Hues) (float64, error) {
	if r.IsLookup() {
		return hues.Lookup(r.Name)
	}
	return r.Degrees, nil
}

// HexExpr is a literal #RRGGBB color.
type HexExpr struct {
	Color color.Color
}

func (e HexExpr) Refs() []string { return nil }

func (e HexExpr) Eval(Hues, *Table) (color.HSL, error) {
	return e.Color.HSL(), nil
}

// HSLExpr is hsl(H, S, L).
type HSLExpr struct {
	Hue  HueRef
	S, L float64
}

func (e HSLExpr) Refs() []string { return nil }

func (e HSLExpr) Eval(hues Hues, _ *Table) (color.HSL, error) {
	degrees, err := e.Hue.resolve(hues)
	if err != nil {
		return color.HSL{}, err
	}
	return color.NewHSL(degrees, e.S, e.L), nil
}

// AdjustExpr is adjust(name, ΔS, ΔL). The darken and lighten forms desugar
// to this with a zero saturation delta.
type AdjustExpr struct {
	Name   string
	DS, DL float64
}

func (e AdjustExpr) Refs() []string { return []string{e.Name} }

func (e AdjustExpr) Eval(_ Hues, table *Table) (color.HSL, error) {
	base, ok := table.Lookup(e.Name)
	if !ok {
		return color.HSL{}, &UnresolvedError{Name: e.Name}
	}
	return base.Adjust(e.DS, e.DL), nil
}

// MixExpr is mix(a, b, W), weight relative to a.
type MixExpr struct {
	A, B   string
	Weight float64
}

func (e MixExpr) Refs() []string { return []string{e.A, e.B} }

func (e MixExpr) Eval(_ Hues, table *Table) (color.HSL, error) {
	a, ok := table.Lookup(e.A)
	if !ok {
		return color.HSL{}, &UnresolvedError{Name: e.A}
	}
	b, ok := table.Lookup(e.B)
	if !ok {
		return color.HSL{}, &UnresolvedError{Name: e.B}
	}
	return color.Mix(a, b, e.Weight), nil
}

// ParseExpr parses one color expression: a bare hex literal or one of the
// call forms hsl, adjust, darken, lighten, mix. Function names are matched
// case-insensitively.
func ParseExpr(input string) (Expr, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, &ParseError{Expr: input, Reason: "empty expression"}
	}

	if strings.HasPrefix(trimmed, "#") {
		c, err := color.ParseHex(trimmed)
		if err != nil {
			return nil, err
		}
		return HexExpr{Color: c}, nil
	}

	open := strings.IndexByte(trimmed, '(')
	if open < 0 || !strings.HasSuffix(trimmed, ")") {
		return nil, &ParseError{Expr: input, Reason: "expected a hex literal or a function call"}
	}

	name := strings.ToLower(strings.TrimSpace(trimmed[:open]))
	args := splitArgs(trimmed[open+1 : len(trimmed)-1])

	switch name {
	case "hsl":
		return parseHSL(input, args)
	case "adjust":
		if err := checkArity(input, name, args, 3); err != nil {
			return nil, err
		}
		ds, err := parseNumber(input, args[1])
		if err != nil {
			return nil, err
		}
		dl, err := parseNumber(input, args[2])
		if err != nil {
			return nil, err
		}
		return AdjustExpr{Name: args[0], DS: ds, DL: dl}, nil
	case "darken", "lighten":
		if err := checkArity(input, name, args, 2); err != nil {
			return nil, err
		}
		amount, err := parseNumber(input, args[1])
		if err != nil {
			return nil, err
		}
		if name == "darken" {
			amount = -amount
		}
		return AdjustExpr{Name: args[0], DL: amount}, nil
	case "mix":
		if err := checkArity(input, name, args, 3); err != nil {
			return nil, err
		}
		weight, err := parseNumber(input, args[2])
		if err != nil {
			return nil, err
		}
		return MixExpr{A: args[0], B: args[1], Weight: weight}, nil
	default:
		return nil, &ParseError{Expr: input, Reason: fmt.Sprintf("unknown function %q", name)}
	}
}

func parseHSL(input string, args []string) (Expr, error) {
	if err := checkArity(input, "hsl", args, 3); err != nil {
		return nil, err
	}

	var hue HueRef
	if strings.HasPrefix(args[0], "$") {
		ref := args[0][1:]
		if ref == "" {
			return nil, &ParseError{Expr: input, Reason: "empty hue reference"}
		}
		hue = HueRef{Name: ref}
	} else {
		degrees, err := parseNumber(input, args[0])
		if err != nil {
			return nil, err
		}
		hue = HueRef{Degrees: degrees}
	}

	s, err := parseNumber(input, args[1])
	if err != nil {
		return nil, err
	}
	l, err := parseNumber(input, args[2])
	if err != nil {
		return nil, err
	}
	return HSLExpr{Hue: hue, S: s, L: l}, nil
}

func splitArgs(inner string) []string {
	parts := strings.Split(inner, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func checkArity(input, name string, args []string, want int) error {
	if len(args) != want {
		return &ParseError{
			Expr:   input,
			Reason: fmt.Sprintf("%s expects %d arguments, got %d", name, want, len(args)),
		}
	}
	return nil
}

func parseNumber(input, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ParseError{Expr: input, Reason: fmt.Sprintf("invalid number %q", raw)}
	}
	return v, nil
}
