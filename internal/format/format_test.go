package format

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic formatting",
			input:    `meta{name="dusk"background="dark"}`,
			expected: `meta { name = "dusk" background = "dark" }`,
		},
		{
			name:     "extra whitespace normalized",
			input:    `hues   {   rose   =   350   }`,
			expected: `hues { rose = 350 }`,
		},
		{
			name: "already formatted stays same",
			input: `meta {
  name = "dusk"
}
`,
			expected: `meta {
  name = "dusk"
}
`,
		},
		{
			name: "attribute alignment",
			input: `colors {
  base = "#191724"
  text = "#e0def4"
}
`,
			expected: `colors {
  base = "#191724"
  text = "#e0def4"
}
`,
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name: "multiple blocks",
			input: `meta{name="dusk"background="dark"}
colors{base="#191724"}
highlights{Normal="base base"}`,
			expected: `meta { name = "dusk" background = "dark" }
colors { base = "#191724" }
highlights { Normal = "base base" }`,
		},
		{
			name:     "multiple blank lines collapsed to one",
			input:    "hues { rose = 350 }\n\n\n\ncolors { base = \"#191724\" }",
			expected: "hues { rose = 350 }\n\ncolors { base = \"#191724\" }",
		},
		{
			name:     "single blank line preserved",
			input:    "hues { rose = 350 }\n\ncolors { base = \"#191724\" }",
			expected: "hues { rose = 350 }\n\ncolors { base = \"#191724\" }",
		},
		{
			name:     "blank line after opening brace removed",
			input:    "colors {\n\n  base = \"#191724\"\n}",
			expected: "colors {\n  base = \"#191724\"\n}",
		},
		{
			name:     "blank line before closing brace removed",
			input:    "colors {\n  base = \"#191724\"\n\n}",
			expected: "colors {\n  base = \"#191724\"\n}",
		},
		{
			name:     "blank lines after and before braces both removed",
			input:    "colors {\n\n  base = \"#191724\"\n\n}",
			expected: "colors {\n  base = \"#191724\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Format(tt.input)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Normalize line endings for comparison
			result = strings.TrimSuffix(result, "\n")
			expected := strings.TrimSuffix(tt.expected, "\n")

			if result != expected {
				t.Errorf("Format() = %q, want %q", result, expected)
			}
		})
	}
}

func TestFormatInvalidHCL(t *testing.T) {
	// hclwrite.Format should handle partial/invalid input gracefully
	input := `meta { name = "dusk"`
	_, err := Format(input)
	if err != nil {
		t.Errorf("Format() on incomplete input should not error, got: %v", err)
	}
}
