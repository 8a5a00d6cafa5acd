// Package highlight parses highlight-group lines and global bindings against
// a resolved color table.
package highlight

import (
	"fmt"
	"strings"

	"github.com/jsvensson/huesmith/internal/color"
	"github.com/jsvensson/huesmith/internal/palette"
)

// ColorRef is a resolved reference to a named color. A nil *ColorRef means
// the field is unset, rendered as the editor's "NONE" sentinel.
type ColorRef struct {
	Name  string
	Color color.HSL
}

// Attrs is the set of style flags a highlight group can carry. Field names
// follow the editor's highlight attribute names.
type Attrs struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Undercurl     bool
	Underdouble   bool
	Underdotted   bool
	Underdashed   bool
	Standout      bool
	Strikethrough bool
	Reverse       bool
	Nocombine     bool
}

// Names returns the set attribute names in a fixed order.
func (a Attrs) Names() []string {
	var names []string
	for _, flag := range []struct {
		set  bool
		name string
	}{
		{a.Bold, "bold"},
		{a.Italic, "italic"},
		{a.Underline, "underline"},
		{a.Undercurl, "undercurl"},
		{a.Underdouble, "underdouble"},
		{a.Underdotted, "underdotted"},
		{a.Underdashed, "underdashed"},
		{a.Standout, "standout"},
		{a.Strikethrough, "strikethrough"},
		{a.Reverse, "reverse"},
		{a.Nocombine, "nocombine"},
	} {
		if flag.set {
			names = append(names, flag.name)
		}
	}
	return names
}

// Spec is one parsed highlight definition: either a link to another group or
// a styled spec with optional foreground, background, special color, and
// style flags.
type Spec struct {
	Link    string // non-empty for link definitions
	Fg      *ColorRef
	Bg      *ColorRef
	Special *ColorRef
	Attrs   Attrs
}

// IsLink reports whether the spec aliases another highlight group.
func (s Spec) IsLink() bool {
	return s.Link != ""
}

// UnknownColorError reports a highlight or global referencing a color that
// is not in the table.
type UnknownColorError struct {
	Name  string
	Group string
}

func (e *UnknownColorError) Error() string {
	return fmt.Sprintf("%s: unknown color %q", e.Group, e.Name)
}

// UnknownStyleError reports an unrecognized style flag letter.
type UnknownStyleError struct {
	Letter rune
	Group  string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("%s: unknown style flag %q", e.Group, e.Letter)
}

// InvalidSpecError reports a highlight line that does not fit the grammar.
type InvalidSpecError struct {
	Group  string
	Value  string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("%s: invalid highlight %q: %s", e.Group, e.Value, e.Reason)
}

const linkPrefix = "link:"

// ParseSpec parses one highlight line. The grammar is either "link:Target"
// or up to four whitespace-separated fields "fg bg styles special", where a
// field of "-" is explicitly unset and trailing fields may be omitted. Link
// targets are opaque names in the editor's namespace and are not validated.
func ParseSpec(group, value string, table *palette.Table) (Spec, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, linkPrefix) {
		target := strings.TrimSpace(value[len(linkPrefix):])
		if target == "" {
			return Spec{}, &InvalidSpecError{Group: group, Value: value, Reason: "empty link target"}
		}
		return Spec{Link: target}, nil
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return Spec{}, &InvalidSpecError{Group: group, Value: value, Reason: "empty definition"}
	}
	if len(fields) > 4 {
		return Spec{}, &InvalidSpecError{Group: group, Value: value, Reason: "expected at most 4 fields (fg bg styles special)"}
	}

	var spec Spec
	var err error

	if spec.Fg, err = resolveField(group, fields[0], table); err != nil {
		return Spec{}, err
	}
	if len(fields) > 1 {
		if spec.Bg, err = resolveField(group, fields[1], table); err != nil {
			return Spec{}, err
		}
	}
	if len(fields) > 2 {
		if spec.Attrs, err = parseAttrs(group, fields[2]); err != nil {
			return Spec{}, err
		}
	}
	if len(fields) > 3 {
		if spec.Special, err = resolveField(group, fields[3], table); err != nil {
			return Spec{}, err
		}
	}

	return spec, nil
}

// ResolveGlobal resolves a global binding value to a color reference. The
// grammar is a single color name, or "-" for unset.
func ResolveGlobal(name, value string, table *palette.Table) (*ColorRef, error) {
	return resolveField(name, strings.TrimSpace(value), table)
}

func resolveField(group, field string, table *palette.Table) (*ColorRef, error) {
	if field == "-" {
		return nil, nil
	}
	c, ok := table.Lookup(field)
	if !ok {
		return nil, &UnknownColorError{Name: field, Group: group}
	}
	return &ColorRef{Name: field, Color: c}, nil
}

func parseAttrs(group, field string) (Attrs, error) {
	var attrs Attrs
	for _, letter := range field {
		switch letter {
		case 'b':
			attrs.Bold = true
		case 'i':
			attrs.Italic = true
		case 'u':
			attrs.Underline = true
		case 'c':
			attrs.Undercurl = true
		case 'd':
			attrs.Underdouble = true
		case 't':
			attrs.Underdotted = true
		case 'h':
			attrs.Underdashed = true
		case 'o':
			attrs.Standout = true
		case 's':
			attrs.Strikethrough = true
		case 'r':
			attrs.Reverse = true
		case 'n':
			attrs.Nocombine = true
		case '-':
			// Explicitly no styles.
		default:
			return Attrs{}, &UnknownStyleError{Letter: letter, Group: group}
		}
	}
	return attrs, nil
}
