package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/bannockburn/workspace"
)

func newLSPCmd() *cobra.Command {
	var flags parserFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := workspace.NewLSPServer(version, flags.parserOptions()...)
			return server.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&flags.strict, "strict", false, "enable strict mode")
	cmd.Flags().BoolVar(&flags.unreachable, "unreachable", false, "report unreachable statements as errors")
	cmd.Flags().StringSliceVar(&flags.types, "types", nil, "additional builtin type names")

	return cmd
}
