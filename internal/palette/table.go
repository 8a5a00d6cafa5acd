package palette

import "github.com/jsvensson/huesmith/internal/color"

// Entry is a named resolved color.
type Entry struct {
	Name  string
	Color color.HSL
}

// Table holds resolved colors in evaluation order. Built incrementally by
// Resolve and read-only to every downstream consumer.
type Table struct {
	order  []string
	colors map[string]color.HSL
}

// NewTable returns an empty color table.
func NewTable() *Table {
	return &Table{colors: make(map[string]color.HSL)}
}

// Add records a resolved color. Called while the table is being built;
// consumers treat the finished table as read-only.
func (t *Table) Add(name string, c color.HSL) {
	if _, exists := t.colors[name]; !exists {
		t.order = append(t.order, name)
	}
	t.colors[name] = c
}

// Lookup returns the resolved color for name.
func (t *Table) Lookup(name string) (color.HSL, bool) {
	c, ok := t.colors[name]
	return c, ok
}

// Has reports whether name is present in the table.
func (t *Table) Has(name string) bool {
	_, ok := t.colors[name]
	return ok
}

// Len returns the number of resolved colors.
func (t *Table) Len() int {
	return len(t.order)
}

// Entries returns the resolved colors in evaluation order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, name := range t.order {
		entries = append(entries, Entry{Name: name, Color: t.colors[name]})
	}
	return entries
}
