package main

import (
	"github.com/dhamidi/javafront/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			opts, err := contextOptions(cfg)
			if err != nil {
				return err
			}
			server := lsp.NewServer(version, cfg.Debug, opts...)
			return server.RunStdio()
		},
	}
}
