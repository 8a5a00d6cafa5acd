package palette

import "fmt"

// RawEntry is one un-evaluated colors-block entry in declaration order.
type RawEntry struct {
	Name string
	Expr string
}

// Resolve parses every color expression, orders the entries so each is
// evaluated only after everything it references, and evaluates them into a
// Table. Entries with no ordering constraint between them keep their
// declaration order, so output is deterministic across runs.
func Resolve(entries []RawEntry, hues Hues) (*Table, error) {
	parsed := make([]Expr, len(entries))
	index := make(map[string]int, len(entries))

	for i, entry := range entries {
		if _, dup := index[entry.Name]; dup {
			return nil, fmt.Errorf("duplicate color %q", entry.Name)
		}
		expr, err := ParseExpr(entry.Expr)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", entry.Name, err)
		}
		parsed[i] = expr
		index[entry.Name] = i
	}

	// Check every reference before evaluating anything: color references
	// must name a declared entry, hue references must name a declared hue.
	for i, expr := range parsed {
		for _, ref := range expr.Refs() {
			if _, ok := index[ref]; !ok {
				return nil, fmt.Errorf("color %q: %w", entries[i].Name, &UnknownReferenceError{Name: ref})
			}
		}
		if hslExpr, ok := expr.(HSLExpr); ok && hslExpr.Hue.IsLookup() {
			if _, err := hues.Lookup(hslExpr.Hue.Name); err != nil {
				return nil, fmt.Errorf("color %q: %w", entries[i].Name, err)
			}
		}
	}

	order, err := sortEntries(entries, parsed, index)
	if err != nil {
		return nil, err
	}

	table := NewTable()
	for _, i := range order {
		resolved, err := parsed[i].Eval(hues, table)
		if err != nil {
			// References were validated and ordered above, so any failure
			// here is a resolver defect, not bad user input.
			return nil, fmt.Errorf("color %q: %w", entries[i].Name, err)
		}
		table.Add(entries[i].Name, resolved)
	}

	return table, nil
}

// sortEntries produces a topological evaluation order using Kahn's
// algorithm, breaking ties by declaration order. Remaining entries after the
// sort form at least one cycle, reported via CycleError.
func sortEntries(entries []RawEntry, parsed []Expr, index map[string]int) ([]int, error) {
	n := len(entries)
	inDegree := make([]int, n)
	dependents := make([][]int, n)

	for i, expr := range parsed {
		for _, ref := range expr.Refs() {
			dep := index[ref]
			dependents[dep] = append(dependents[dep], i)
			inDegree[i]++
		}
	}

	order := make([]int, 0, n)
	done := make([]bool, n)

	for len(order) < n {
		// Pick the ready entry declared earliest. Linear scan keeps the
		// tie-break trivially stable; documents hold at most a few hundred
		// entries.
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, &CycleError{Path: findCycle(entries, parsed, index, done)}
		}

		done[next] = true
		order = append(order, next)
		for _, dependent := range dependents[next] {
			inDegree[dependent]--
		}
	}

	return order, nil
}

// findCycle walks dependency edges among the unordered entries until a name
// repeats, then trims the walk to the cycle itself.
func findCycle(entries []RawEntry, parsed []Expr, index map[string]int, done []bool) []string {
	start := -1
	for i := range entries {
		if !done[i] {
			start = i
			break
		}
	}

	seen := make(map[int]int) // entry index -> position in walk
	var walk []int

	current := start
	for {
		if pos, ok := seen[current]; ok {
			cycle := walk[pos:]
			path := make([]string, 0, len(cycle)+1)
			for _, i := range cycle {
				path = append(path, entries[i].Name)
			}
			path = append(path, entries[current].Name)
			return path
		}
		seen[current] = len(walk)
		walk = append(walk, current)

		// Every unordered entry still waits on at least one unordered
		// dependency; follow the first.
		next := -1
		for _, ref := range parsed[current].Refs() {
			if dep := index[ref]; !done[dep] {
				next = dep
				break
			}
		}
		current = next
	}
}
