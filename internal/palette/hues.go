package palette

import "github.com/jsvensson/huesmith/internal/color"

// Hues maps symbolic hue names to degrees on the color wheel. Referenced
// from expressions as $name inside hsl(). Immutable once built.
type Hues map[string]float64

// NewHues builds a hue table from raw name/degree pairs. Out-of-range
// degrees are wrapped into [0, 360), never rejected.
func NewHues(raw map[string]float64) Hues {
	hues := make(Hues, len(raw))
	for name, degrees := range raw {
		hues[name] = color.NormalizeHue(degrees)
	}
	return hues
}

// Lookup resolves a hue name to its degree value.
func (h Hues) Lookup(name string) (float64, error) {
	degrees, ok := h[name]
	if !ok {
		return 0, &UnknownHueError{Name: name}
	}
	return degrees, nil
}
