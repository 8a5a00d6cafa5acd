package color

import "math"

// HSL represents a color as hue/saturation/lightness. Hue is in degrees
// [0, 360); saturation and lightness are in [0, 1].
type HSL struct {
	H, S, L float64
}

// NewHSL builds an HSL color, wrapping the hue into [0, 360) and clamping
// saturation and lightness to [0, 1]. Out-of-range inputs are never rejected.
func NewHSL(h, s, l float64) HSL {
	return HSL{
		H: NormalizeHue(h),
		S: Clamp01(s),
		L: Clamp01(l),
	}
}

// Clamp01 clamps a value to the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NormalizeHue wraps a hue angle into [0, 360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Adjust returns a copy with the saturation and lightness deltas applied.
// Deltas are absolute; each component is clamped independently.
func (c HSL) Adjust(ds, dl float64) HSL {
	return HSL{
		H: c.H,
		S: Clamp01(c.S + ds),
		L: Clamp01(c.L + dl),
	}
}

// Lighten returns a copy with the lightness increased by amount.
func (c HSL) Lighten(amount float64) HSL {
	return c.Adjust(0, amount)
}

// Darken returns a copy with the lightness decreased by amount.
func (c HSL) Darken(amount float64) HSL {
	return c.Adjust(0, -amount)
}

// Mix interpolates each HSL component linearly between a and b. The weight is
// relative to a: Mix(a, b, 1) is a, Mix(a, b, 0) is b. Hue is interpolated
// linearly, not along the shortest arc. Weights outside [0, 1] extrapolate;
// the result components are still wrapped/clamped.
func Mix(a, b HSL, weight float64) HSL {
	lerp := func(v1, v2 float64) float64 {
		return weight*v1 + (1-weight)*v2
	}
	return NewHSL(lerp(a.H, b.H), lerp(a.S, b.S), lerp(a.L, b.L))
}

// Color converts to RGB using the standard HSL->RGB algorithm.
func (c HSL) Color() Color {
	h := c.H / 360
	s := c.S
	l := c.L

	// Achromatic
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return Color{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToRGB(p, q, h+1.0/3.0)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3.0)

	return Color{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
	}
}

// Hex returns the color rendered as an #rrggbb string.
func (c HSL) Hex() string {
	return c.Color().Hex()
}

// HSL converts to hue/saturation/lightness using the standard RGB->HSL
// algorithm.
func (c Color) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)
	l := (max + min) / 2

	// Achromatic
	if max == min {
		return HSL{H: 0, S: 0, L: l}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}

	return HSL{H: h * 60, S: s, L: l}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
