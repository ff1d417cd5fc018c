package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/bannockburn/format"
)

func newParseCmd() *cobra.Command {
	var flags parserFlags

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a script and dump its syntax tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}

			_, p, err := flags.parser(filepath.Dir(filename))
			if err != nil {
				return err
			}
			nodes, err := p.Parse(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}

			if err := format.NewASTJSONEncoder(cmd.OutOrStdout()).Encode(nodes); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
