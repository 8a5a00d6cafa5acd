package palette

import (
	"errors"
	"math"
	"testing"

	"github.com/jsvensson/huesmith/internal/color"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{"hex literal", "#eb6f92", HexExpr{Color: color.Color{R: 235, G: 111, B: 146}}},
		{"hsl literal hue", "hsl(350, 0.7, 0.6)", HSLExpr{Hue: HueRef{Degrees: 350}, S: 0.7, L: 0.6}},
		{"hsl hue reference", "hsl($rose, 0.7, 0.6)", HSLExpr{Hue: HueRef{Name: "rose"}, S: 0.7, L: 0.6}},
		{"adjust", "adjust(base, 0.1, -0.2)", AdjustExpr{Name: "base", DS: 0.1, DL: -0.2}},
		{"darken desugars", "darken(base, 0.2)", AdjustExpr{Name: "base", DL: -0.2}},
		{"lighten desugars", "lighten(base, 0.2)", AdjustExpr{Name: "base", DL: 0.2}},
		{"mix", "mix(base, love, 0.5)", MixExpr{A: "base", B: "love", Weight: 0.5}},
		{"case insensitive name", "HSL(10, 0.5, 0.5)", HSLExpr{Hue: HueRef{Degrees: 10}, S: 0.5, L: 0.5}},
		{"whitespace tolerated", "  mix( base , love , 1 )  ", MixExpr{A: "base", B: "love", Weight: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpr(tt.input)
			if err != nil {
				t.Fatalf("ParseExpr(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseExpr(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExprErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown function", "blend(a, b, 0.5)"},
		{"missing parens", "hsl 10, 0.5, 0.5"},
		{"unclosed call", "hsl(10, 0.5, 0.5"},
		{"wrong arity hsl", "hsl(10, 0.5)"},
		{"wrong arity darken", "darken(base)"},
		{"bad number", "hsl(ten, 0.5, 0.5)"},
		{"empty hue reference", "hsl($, 0.5, 0.5)"},
		{"bare name", "base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpr(tt.input)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("ParseExpr(%q) error = %v, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestParseExprBadHexLiteral(t *testing.T) {
	_, err := ParseExpr("#xyz")
	var invalidErr *color.InvalidLiteralError
	if !errors.As(err, &invalidErr) {
		t.Errorf("ParseExpr(#xyz) error = %v, want *color.InvalidLiteralError", err)
	}
}

func TestExprRefs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"#eb6f92", nil},
		{"hsl($rose, 0.5, 0.5)", nil},
		{"adjust(base, 0, 0.1)", []string{"base"}},
		{"darken(base, 0.1)", []string{"base"}},
		{"mix(base, love, 0.5)", []string{"base", "love"}},
	}

	for _, tt := range tests {
		expr, err := ParseExpr(tt.input)
		if err != nil {
			t.Fatalf("ParseExpr(%q) error: %v", tt.input, err)
		}
		got := expr.Refs()
		if len(got) != len(tt.want) {
			t.Errorf("Refs(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Refs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		}
	}
}

func TestEvalHSL(t *testing.T) {
	hues := NewHues(map[string]float64{"rose": 350, "wrapped": 370})

	t.Run("literal hue", func(t *testing.T) {
		got := mustEval(t, "hsl(120, 0.5, 0.5)", hues, NewTable())
		if !near(got, color.HSL{H: 120, S: 0.5, L: 0.5}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("hue reference", func(t *testing.T) {
		got := mustEval(t, "hsl($rose, 0.7, 0.6)", hues, NewTable())
		if !near(got, color.HSL{H: 350, S: 0.7, L: 0.6}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("out-of-range hue wraps at load", func(t *testing.T) {
		got := mustEval(t, "hsl($wrapped, 0.5, 0.5)", hues, NewTable())
		if !near(got, color.HSL{H: 10, S: 0.5, L: 0.5}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("saturation and lightness clamp", func(t *testing.T) {
		got := mustEval(t, "hsl(10, 1.5, -0.5)", hues, NewTable())
		if !near(got, color.HSL{H: 10, S: 1, L: 0}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("unknown hue", func(t *testing.T) {
		expr, err := ParseExpr("hsl($missing, 0.5, 0.5)")
		if err != nil {
			t.Fatal(err)
		}
		_, err = expr.Eval(hues, NewTable())
		var hueErr *UnknownHueError
		if !errors.As(err, &hueErr) {
			t.Fatalf("error = %v, want *UnknownHueError", err)
		}
		if hueErr.Name != "missing" {
			t.Errorf("hue name = %q, want %q", hueErr.Name, "missing")
		}
	})
}

func TestEvalAgainstTable(t *testing.T) {
	table := NewTable()
	table.Add("base", color.HSL{H: 0, S: 0.5, L: 0.5})
	table.Add("love", color.HSL{H: 100, S: 0.3, L: 0.7})

	t.Run("adjust", func(t *testing.T) {
		got := mustEval(t, "adjust(base, 0.2, -0.1)", nil, table)
		if !near(got, color.HSL{H: 0, S: 0.7, L: 0.4}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("mix midpoint", func(t *testing.T) {
		got := mustEval(t, "mix(base, love, 0.5)", nil, table)
		if !near(got, color.HSL{H: 50, S: 0.4, L: 0.6}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("unresolved reference", func(t *testing.T) {
		expr, err := ParseExpr("darken(missing, 0.1)")
		if err != nil {
			t.Fatal(err)
		}
		_, err = expr.Eval(nil, table)
		var unresolvedErr *UnresolvedError
		if !errors.As(err, &unresolvedErr) {
			t.Fatalf("error = %v, want *UnresolvedError", err)
		}
	})
}

func mustEval(t *testing.T, input string, hues Hues, table *Table) color.HSL {
	t.Helper()
	expr, err := ParseExpr(input)
	if err != nil {
		t.Fatalf("ParseExpr(%q) error: %v", input, err)
	}
	got, err := expr.Eval(hues, table)
	if err != nil {
		t.Fatalf("Eval(%q) error: %v", input, err)
	}
	return got
}

func near(a, b color.HSL) bool {
	const eps = 1e-9
	return math.Abs(a.H-b.H) < eps && math.Abs(a.S-b.S) < eps && math.Abs(a.L-b.L) < eps
}
