package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/javafront/format"
	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/passes"
	"github.com/spf13/cobra"
)

func newRenameCmd(flags *globalFlags) *cobra.Command {
	var mappings []string

	cmd := &cobra.Command{
		Use:   "rename --map old=new[,old=new] <file.java>",
		Short: "Rename unqualified names and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping, err := parseMapping(mappings)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			unit, err := parser.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			count := passes.Rename(unit, mapping)

			enc, err := format.New(cfg.Format, os.Stdout, nil)
			if err != nil {
				return err
			}
			if err := enc.Encode(unit); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Fprintf(os.Stderr, "%d occurrences renamed\n", count)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&mappings, "map", nil, "renaming as old=new pairs")
	cmd.MarkFlagRequired("map")

	return cmd
}

// parseMapping turns "old=new" pairs into a mapping.
func parseMapping(pairs []string) (map[string]string, error) {
	mapping := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		old, replacement, ok := strings.Cut(pair, "=")
		if !ok || old == "" || replacement == "" {
			return nil, fmt.Errorf("invalid mapping %q (want old=new)", pair)
		}
		if strings.Contains(old, ".") || strings.Contains(replacement, ".") {
			return nil, fmt.Errorf("invalid mapping %q: only simple names can be renamed", pair)
		}
		mapping[old] = replacement
	}
	return mapping, nil
}
