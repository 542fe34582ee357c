package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javafront/java/parser"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var listProductions bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of the accepted Java subset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := parser.Grammar()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if listProductions {
				fmt.Fprintln(out, strings.Join(parser.Productions(grammar), "\n"))
				return nil
			}
			fmt.Fprint(out, parser.GrammarSource())
			return nil
		},
	}

	cmd.Flags().BoolVar(&listProductions, "productions", false, "list production names instead")

	return cmd
}
