package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/huesmith"
	"github.com/jsvensson/huesmith/internal/engine"
	"github.com/jsvensson/huesmith/internal/format"
	"github.com/spf13/cobra"
)

var (
	flagTheme string
	flagOut   string
	flagCheck bool
	version   = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "huesmith",
	Short:   "Compile declarative .hstheme files into Neovim colorschemes",
	Version: version,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile a theme and write the colorscheme plugin files",
	RunE:  runGenerate,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format .hstheme files",
	Long:  "Format one or more .hstheme files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	generateCmd.Flags().StringVar(&flagTheme, "theme", "theme.hstheme", "path to theme file")
	generateCmd.Flags().StringVar(&flagOut, "out", ".", "output directory")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	theme, err := huesmith.Load(flagTheme)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	e := &engine.Engine{OutputDir: flagOut}
	if err := e.Run(theme); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated colorscheme %q in %s\n", theme.Meta.Name, flagOut)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
