package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minilang-lang/minilang/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Dump the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	filename, source, err := loadSource(args)
	if err != nil {
		return err
	}

	tokens, lexErr := lexer.Tokenize(source, filename)
	if lexErr != nil {
		newFormatter(filename, source).Format(lexErr.ToDiagnostic())
		return fmt.Errorf("lexing failed")
	}

	for _, tok := range tokens {
		fmt.Printf("%4d:%-3d %-10s %q\n", tok.Span.Line, tok.Span.Column, tok.Type, tok.Literal)
	}
	return nil
}
