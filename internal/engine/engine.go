// Package engine renders a compiled theme into a Neovim colorscheme plugin:
// a colors/ loader stub and a lua/<name>/ module with highlight calls.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jsvensson/huesmith"
	"github.com/jsvensson/huesmith/internal/highlight"
)

const loaderTemplate = `require("{{ .Meta.Name }}").init()
`

const initTemplate = `local M = {}

local function set_hl_groups()
    local hl = vim.api.nvim_set_hl
{{- range .Highlights }}
    hl(0, "{{ .Group }}", { {{ specArgs .Spec }} })
{{- end }}
end

function M.init()
    vim.cmd("hi clear")

    if vim.fn.exists("syntax_on") then
        vim.cmd("syntax reset")
    end

    vim.o.background = "{{ .Meta.Background }}"
    vim.o.termguicolors = true
    vim.g.colors_name = "{{ .Meta.Name }}"
{{ range .Globals }}    vim.g.{{ .Name }} = "{{ refHex .Ref }}"
{{ end }}
    set_hl_groups()
end

return M
`

const paletteTemplate = `return {
{{- range .Colors }}
    {{ .Name }} = "{{ .Color.Hex }}",
{{- end }}
}
`

// Engine writes the generated colorscheme files under OutputDir.
type Engine struct {
	OutputDir string
}

// Run renders the loader stub, the init module, and the palette module for
// the given theme.
func (e *Engine) Run(theme *huesmith.Theme) error {
	name := theme.Meta.Name
	colorsDir := filepath.Join(e.OutputDir, "colors")
	luaDir := filepath.Join(e.OutputDir, "lua", name)

	for _, dir := range []string{colorsDir, luaDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	files := []struct {
		path string
		tmpl string
	}{
		{filepath.Join(colorsDir, name+".lua"), loaderTemplate},
		{filepath.Join(luaDir, "init.lua"), initTemplate},
		{filepath.Join(luaDir, "palette.lua"), paletteTemplate},
	}

	for _, file := range files {
		if err := render(file.path, file.tmpl, theme); err != nil {
			return err
		}
	}

	return nil
}

func render(path, tmpl string, theme *huesmith.Theme) error {
	t, err := template.New(filepath.Base(path)).Funcs(funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing template for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	defer f.Close()

	if err := t.Execute(f, theme); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"specArgs": specArgs,
		"refHex":   refHex,
	}
}

// refHex renders a color reference as hex, or the editor's "no color"
// sentinel when unset.
func refHex(ref *highlight.ColorRef) string {
	if ref == nil {
		return "NONE"
	}
	return ref.Color.Hex()
}

// specArgs renders the argument table of one nvim_set_hl call.
func specArgs(spec highlight.Spec) string {
	if spec.IsLink() {
		return fmt.Sprintf("link = %q", spec.Link)
	}

	args := []string{
		fmt.Sprintf("fg = %q", refHex(spec.Fg)),
		fmt.Sprintf("bg = %q", refHex(spec.Bg)),
	}
	if spec.Special != nil {
		args = append(args, fmt.Sprintf("sp = %q", refHex(spec.Special)))
	}
	for _, attr := range spec.Attrs.Names() {
		args = append(args, attr+" = true")
	}
	return strings.Join(args, ", ")
}
