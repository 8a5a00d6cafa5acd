package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot       blockContext = iota
	contextMeta                    // inside meta {}
	contextHues                    // inside hues {}
	contextColors                  // inside colors {}
	contextHighlights              // inside highlights {}
	contextGlobals                 // inside globals {}
)

// metaAttributes are the valid attributes inside the meta block.
var metaAttributes = []string{"name", "background"}

// topLevelBlocks are the valid top-level block names.
var topLevelBlocks = []string{"meta", "hues", "colors", "highlights", "globals"}

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	// A `$` sigil always means a hue reference, regardless of block.
	if hueItems := tryHueCompletion(result, textBeforeCursor); hueItems != nil {
		return hueItems
	}

	ctx := determineBlockContext(lines, int(pos.Line))

	if isValuePosition(textBeforeCursor) {
		switch ctx {
		case contextColors:
			return append(functionCompletions(), colorNameCompletions(result)...)
		case contextHighlights:
			return append(highlightCompletions(), colorNameCompletions(result)...)
		case contextGlobals:
			return colorNameCompletions(result)
		}
		return nil
	}

	switch ctx {
	case contextMeta:
		return metaCompletions(lines, int(pos.Line))
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// tryHueCompletion checks if the text before the cursor ends with a `$` hue
// reference prefix and returns completion items for the defined hue names.
func tryHueCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || len(result.Hues) == 0 {
		return nil
	}

	idx := strings.LastIndexByte(textBeforeCursor, '$')
	if idx == -1 {
		return nil
	}

	// Only complete if everything after the sigil is a (possibly empty)
	// identifier prefix; a `$` buried in finished text is not a trigger.
	for i := idx + 1; i < len(textBeforeCursor); i++ {
		if !isIdentChar(textBeforeCursor[i]) {
			return nil
		}
	}

	kind := protocol.CompletionItemKindConstant
	items := make([]protocol.CompletionItem, 0, len(result.Hues))
	for name := range result.Hues {
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  &kind,
		})
	}
	return items
}

// colorNameCompletions returns the resolved color names as completion items,
// each with its hex value as detail.
func colorNameCompletions(result *AnalysisResult) []protocol.CompletionItem {
	if result == nil || result.Table == nil {
		return nil
	}

	kind := protocol.CompletionItemKindColor

	var items []protocol.CompletionItem
	for _, entry := range result.Table.Entries() {
		hex := entry.Color.Hex()
		items = append(items, protocol.CompletionItem{
			Label:  entry.Name,
			Kind:   &kind,
			Detail: &hex,
		})
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == "" || afterEq == "\""
}

// functionCompletions returns snippets for the color expression functions.
func functionCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	funcs := []struct {
		label   string
		detail  string
		snippet string
	}{
		{"hsl", "hsl(hue, saturation, lightness)", "hsl(${1:\\$hue}, ${2:0.5}, ${3:0.5})"},
		{"adjust", "adjust(color, ds, dl)", "adjust(${1:color}, ${2:0.0}, ${3:0.0})"},
		{"darken", "darken(color, amount)", "darken(${1:color}, ${2:0.1})"},
		{"lighten", "lighten(color, amount)", "lighten(${1:color}, ${2:0.1})"},
		{"mix", "mix(color1, color2, weight)", "mix(${1:color}, ${2:color}, ${3:0.5})"},
	}

	items := make([]protocol.CompletionItem, 0, len(funcs))
	for _, f := range funcs {
		snippet := f.snippet
		items = append(items, protocol.CompletionItem{
			Label:            f.label,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(f.detail),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}
	return items
}

// highlightCompletions returns items specific to highlight values: the link
// prefix and the unset placeholder.
func highlightCompletions() []protocol.CompletionItem {
	linkSnippet := "link:"
	unset := "-"

	return []protocol.CompletionItem{
		{
			Label:      "link:",
			Kind:       completionKindPtr(protocol.CompletionItemKindKeyword),
			Detail:     strPtr("link to another highlight group"),
			InsertText: &linkSnippet,
		},
		{
			Label:      "-",
			Kind:       completionKindPtr(protocol.CompletionItemKindKeyword),
			Detail:     strPtr("leave field unset"),
			InsertText: &unset,
		},
	}
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				name := parts[0]
				for i := 0; i < opens; i++ {
					stack = append(stack, name)
				}
			}
		}

		if closes > 0 {
			for i := 0; i < closes; i++ {
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch stack[len(stack)-1] {
	case "meta":
		return contextMeta
	case "hues":
		return contextHues
	case "colors":
		return contextColors
	case "highlights":
		return contextHighlights
	case "globals":
		return contextGlobals
	default:
		return contextRoot
	}
}

// metaCompletions returns meta attribute completions, excluding attributes
// already defined in the block.
func metaCompletions(lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindKeyword

	var items []protocol.CompletionItem
	for _, name := range metaAttributes {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		snippet := name + " {\n  $0\n}"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	items := complete(result, content, params.Position)
	return items, nil
}
