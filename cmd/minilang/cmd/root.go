package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/diag"
	"github.com/minilang-lang/minilang/internal/lexer"
	"github.com/minilang-lang/minilang/internal/parser"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "minilang",
	Short: "MiniLang compiler front end",
	Long: `minilang parses and analyzes MiniLang source files.

Commands:
  check    parse and semantically analyze a file
  tokens   dump the token stream
  ast      print the parsed syntax tree
  stats    report source metrics`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

// loadSource reads one source file named by the command arguments.
func loadSource(args []string) (filename, source string, err error) {
	filename = args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", "", fmt.Errorf("cannot read %s: %w", filename, err)
	}
	return filename, string(data), nil
}

// newFormatter builds a diagnostic formatter preloaded with the source text
// so snippets render without re-reading the file.
func newFormatter(filename, source string) *diag.Formatter {
	var f *diag.Formatter
	if noColor {
		f = diag.NewPlainFormatter(os.Stderr)
	} else {
		f = diag.NewFormatter()
	}
	f.AddSource(filename, source)
	return f
}

// parseFile runs the lexer and parser, rendering any failure through the
// formatter. The returned program is nil when the pipeline stopped early.
func parseFile(filename, source string, f *diag.Formatter) *ast.Program {
	tokens, lexErr := lexer.Tokenize(source, filename)
	if lexErr != nil {
		f.Format(lexErr.ToDiagnostic())
		return nil
	}

	program, parseErr := parser.Parse(tokens, source)
	if parseErr != nil {
		f.Format(parseErr.ToDiagnostic())
		return nil
	}

	return program
}
