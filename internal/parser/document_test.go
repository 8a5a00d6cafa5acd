package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTheme = `
meta {
  name       = "dusk"
  background = "dark"
}

hues {
  rose = 350
  pine = 180
}

colors {
  base  = "hsl($pine, 0.2, 0.12)"
  text  = "#e0def4"
  love  = "hsl($rose, 0.7, 0.6)"
  muted = "darken(text, 0.3)"
}

highlights {
  Normal  = "text base"
  Comment = "muted - i"
  Link    = "link:Comment"
}

globals {
  terminal_color_0 = "base"
}
`

func TestParseBytes(t *testing.T) {
	doc, err := ParseBytes([]byte(sampleTheme), "theme.hstheme")
	if err != nil {
		t.Fatalf("ParseBytes() error: %v", err)
	}

	if doc.Meta.Name != "dusk" {
		t.Errorf("Meta.Name = %q, want dusk", doc.Meta.Name)
	}
	if doc.Meta.Background != "dark" {
		t.Errorf("Meta.Background = %q, want dark", doc.Meta.Background)
	}

	if len(doc.Hues) != 2 || doc.Hues["rose"] != 350 || doc.Hues["pine"] != 180 {
		t.Errorf("Hues = %v", doc.Hues)
	}

	wantColors := []string{"base", "text", "love", "muted"}
	if len(doc.Colors) != len(wantColors) {
		t.Fatalf("Colors = %d entries, want %d", len(doc.Colors), len(wantColors))
	}
	for i, name := range wantColors {
		if doc.Colors[i].Name != name {
			t.Errorf("Colors[%d] = %s, want %s", i, doc.Colors[i].Name, name)
		}
	}

	if len(doc.Highlights) != 3 || doc.Highlights[0].Name != "Normal" {
		t.Errorf("Highlights = %v", doc.Highlights)
	}
	if doc.Highlights[1].Value != "muted - i" {
		t.Errorf("Highlights[1].Value = %q", doc.Highlights[1].Value)
	}

	if len(doc.Globals) != 1 || doc.Globals[0].Value != "base" {
		t.Errorf("Globals = %v", doc.Globals)
	}
}

func TestParseEntryRanges(t *testing.T) {
	doc, err := ParseBytes([]byte(sampleTheme), "theme.hstheme")
	if err != nil {
		t.Fatal(err)
	}

	for _, entry := range doc.Colors {
		if entry.Range.Start.Line == 0 {
			t.Errorf("Colors entry %s has no source range", entry.Name)
		}
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dusk.hstheme")
	if err := os.WriteFile(path, []byte(sampleTheme), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if doc.Meta.Name != "dusk" {
		t.Errorf("Meta.Name = %q, want dusk", doc.Meta.Name)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.hstheme")); err == nil {
		t.Fatal("Parse() expected error for missing file")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "broken syntax",
			src:     `colors {`,
			wantMsg: "parsing HCL",
		},
		{
			name:    "missing colors block",
			src:     "meta {\n  name = \"x\"\n  background = \"dark\"\n}",
			wantMsg: "no colors block",
		},
		{
			name:    "missing name",
			src:     `meta { background = "dark" }` + "\n" + `colors { a = "#111111" }`,
			wantMsg: "theme name",
		},
		{
			name:    "invalid background",
			src:     "meta {\n  name = \"x\"\n  background = \"dim\"\n}" + "\n" + `colors { a = "#111111" }`,
			wantMsg: "invalid background",
		},
		{
			name:    "unknown block",
			src:     "meta {\n  name = \"x\"\n  background = \"dark\"\n}" + "\n" + `colors { a = "#111111" }` + "\n" + `wat { }`,
			wantMsg: "unknown block",
		},
		{
			name:    "non-string color value",
			src:     "meta {\n  name = \"x\"\n  background = \"dark\"\n}" + "\n" + `colors { a = 42 }`,
			wantMsg: "must be a string",
		},
		{
			name:    "non-number hue",
			src:     "meta {\n  name = \"x\"\n  background = \"dark\"\n}" + "\n" + `hues { rose = "350" }` + "\n" + `colors { a = "#111111" }`,
			wantMsg: "must be a number",
		},
		{
			name:    "unknown meta attribute",
			src:     "meta {\n  name = \"x\"\n  background = \"dark\"\n  author = \"y\"\n}" + "\n" + `colors { a = "#111111" }`,
			wantMsg: "unknown attribute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.src), "test.hstheme")
			if err == nil {
				t.Fatal("ParseBytes() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err, tt.wantMsg)
			}
		})
	}
}
