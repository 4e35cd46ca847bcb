package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minilang-lang/minilang/internal/ast"
)

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the parsed syntax tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAst,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAst(cmd *cobra.Command, args []string) error {
	filename, source, err := loadSource(args)
	if err != nil {
		return err
	}

	program := parseFile(filename, source, newFormatter(filename, source))
	if program == nil {
		return fmt.Errorf("parsing failed")
	}

	ast.Fprint(os.Stdout, program)
	return nil
}
