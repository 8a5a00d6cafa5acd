package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// wordAtCursor extracts the identifier under the cursor. A leading `$`
// sigil is included so hue references can be told apart from color names.
// Returns "" if the cursor is not on an identifier.
func wordAtCursor(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}
	if !isIdentChar(line[col]) && line[col] != '$' {
		return ""
	}

	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}

	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}
	if start > 0 && line[start-1] == '$' {
		start--
	}

	return line[start:end]
}

// isIdentChar returns true if the byte is a valid identifier character.
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// definition returns the definition location for the name under the cursor.
// Hue references (`$name`) resolve against the hues block, plain names
// resolve against the colors block, and link targets resolve against
// highlight group declarations. Returns nil if the cursor is not on a known
// name.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := strings.Split(content, "\n")
	lineIdx := int(pos.Line)
	if lineIdx >= len(lines) {
		return nil
	}

	word := wordAtCursor(lines[lineIdx], pos.Character)
	if word == "" {
		return nil
	}

	var symRange protocol.Range
	var ok bool

	if name, isHue := strings.CutPrefix(word, "$"); isHue {
		symRange, ok = result.HueSymbols[name]
	} else if symRange, ok = result.Symbols[word]; !ok {
		symRange, ok = result.Groups[word]
	}

	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return definition(result, content, uri, params.Position), nil
}
