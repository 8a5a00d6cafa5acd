package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsvensson/huesmith"
	"github.com/jsvensson/huesmith/internal/parser"
)

const testThemeSrc = `
meta {
  name       = "dusk"
  background = "dark"
}

colors {
  base = "#191724"
  text = "#e0def4"
  love = "#eb6f92"
}

highlights {
  Normal     = "text base"
  Comment    = "love - i"
  SpellBad   = "- - c love"
  LinkSample = "link:Comment"
}

globals {
  terminal_color_0 = "base"
  terminal_color_1 = "-"
}
`

func testTheme(t *testing.T) *huesmith.Theme {
	t.Helper()
	doc, err := parser.ParseBytes([]byte(testThemeSrc), "dusk.hstheme")
	if err != nil {
		t.Fatal(err)
	}
	theme, err := huesmith.Compile(doc)
	if err != nil {
		t.Fatal(err)
	}
	return theme
}

func TestRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{OutputDir: outDir}

	if err := e.Run(testTheme(t)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	t.Run("loader stub", func(t *testing.T) {
		got := readFile(t, filepath.Join(outDir, "colors", "dusk.lua"))
		want := "require(\"dusk\").init()\n"
		if got != want {
			t.Errorf("loader = %q, want %q", got, want)
		}
	})

	t.Run("init module", func(t *testing.T) {
		got := readFile(t, filepath.Join(outDir, "lua", "dusk", "init.lua"))
		wantLines := []string{
			`hl(0, "Normal", { fg = "#e0def4", bg = "#191724" })`,
			`hl(0, "Comment", { fg = "#eb6f92", bg = "NONE", italic = true })`,
			`hl(0, "SpellBad", { fg = "NONE", bg = "NONE", sp = "#eb6f92", undercurl = true })`,
			`hl(0, "LinkSample", { link = "Comment" })`,
			`vim.o.background = "dark"`,
			`vim.g.colors_name = "dusk"`,
			`vim.g.terminal_color_0 = "#191724"`,
			`vim.g.terminal_color_1 = "NONE"`,
		}
		for _, want := range wantLines {
			if !strings.Contains(got, want) {
				t.Errorf("init.lua missing %q\n---\n%s", want, got)
			}
		}
	})

	t.Run("palette module", func(t *testing.T) {
		got := readFile(t, filepath.Join(outDir, "lua", "dusk", "palette.lua"))
		for _, want := range []string{`base = "#191724"`, `text = "#e0def4"`, `love = "#eb6f92"`} {
			if !strings.Contains(got, want) {
				t.Errorf("palette.lua missing %q", want)
			}
		}
	})
}

func TestRunHighlightOrder(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{OutputDir: outDir}

	if err := e.Run(testTheme(t)); err != nil {
		t.Fatal(err)
	}

	got := readFile(t, filepath.Join(outDir, "lua", "dusk", "init.lua"))
	normal := strings.Index(got, `"Normal"`)
	comment := strings.Index(got, `"Comment"`)
	if normal < 0 || comment < 0 || normal > comment {
		t.Errorf("highlight calls out of declaration order (Normal at %d, Comment at %d)", normal, comment)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
