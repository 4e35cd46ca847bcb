package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minilang-lang/minilang/internal/sem"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Parse and semantically analyze a source file",
	Long: `check runs the full front end over one MiniLang file: lexing,
parsing, and semantic analysis. Every diagnostic found is rendered;
the exit status is non-zero when any error (not warning) was reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit diagnostics as JSON on stdout")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename, source, err := loadSource(args)
	if err != nil {
		return err
	}
	f := newFormatter(filename, source)

	program := parseFile(filename, source, f)
	if program == nil {
		return fmt.Errorf("check failed")
	}

	errors, warnings := sem.Check(program)

	if checkJSON {
		all := append(append([]any{}, toAny(errors)...), toAny(warnings)...)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(all); err != nil {
			return err
		}
	} else {
		for _, d := range errors {
			f.Format(d)
		}
		for _, d := range warnings {
			f.Format(d)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%d error(s) found", len(errors))
	}

	if !checkJSON {
		fmt.Printf("%s: no errors", filename)
		if n := len(warnings); n > 0 {
			fmt.Printf(", %d warning(s)", n)
		}
		fmt.Println()
	}
	return nil
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
