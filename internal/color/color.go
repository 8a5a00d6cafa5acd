package color

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGB color. The R, G, B uint8 fields are the source of truth;
// all output formats are derived from them.
type Color struct {
	R, G, B uint8
}

// InvalidLiteralError reports a malformed hex color literal.
type InvalidLiteralError struct {
	Literal string
}

func (e *InvalidLiteralError) Error() string {
	return fmt.Sprintf("invalid hex color %q: expected 6 hex digits with optional leading #", e.Literal)
}

// ParseHex parses a hex color string like "#eb6f92" into a Color. All six
// characters must be hex digits.
func ParseHex(s string) (Color, error) {
	stripped := strings.TrimPrefix(s, "#")
	if len(stripped) != 6 {
		return Color{}, &InvalidLiteralError{Literal: s}
	}
	v, err := strconv.ParseUint(stripped, 16, 32)
	if err != nil {
		return Color{}, &InvalidLiteralError{Literal: s}
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexBare returns the color as a hex string without leading #, e.g. "eb6f92".
func (c Color) HexBare() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
