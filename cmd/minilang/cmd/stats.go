package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minilang-lang/minilang/internal/metrics"
)

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Report source metrics for a source file",
	Long: `stats parses a file and reports statement counts, line
classification, and per-function cyclomatic complexity.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	filename, source, err := loadSource(args)
	if err != nil {
		return err
	}

	program := parseFile(filename, source, newFormatter(filename, source))
	if program == nil {
		return fmt.Errorf("parsing failed")
	}

	report := metrics.Analyze(program, source)

	fmt.Printf("%s\n", filename)
	fmt.Printf("  lines:      %d (%d code, %d comment, %d blank)\n",
		report.TotalLines(), report.CodeLines, report.CommentLines, report.BlankLines)
	fmt.Printf("  functions:  %d\n", len(report.Functions))
	fmt.Printf("  statements: %d\n", report.Statements)
	fmt.Println()
	fmt.Printf("  %-20s %10s %10s %12s\n", "function", "params", "stmts", "complexity")
	for _, fn := range report.Functions {
		fmt.Printf("  %-20s %10d %10d %12d\n", fn.Name, fn.Parameters, fn.Statements, fn.Cyclomatic)
	}
	return nil
}
