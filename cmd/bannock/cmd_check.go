package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/bannockburn/workspace"
)

func newCheckCmd() *cobra.Command {
	var flags parserFlags

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse scripts and report syntax errors",
		Long: `Parse every script named on the command line. Directories are searched
for files with the configured script extensions. With no arguments the
project containing the current directory is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			p, err := flags.project(dir)
			if err != nil {
				return err
			}
			defines, err := flags.defineMap()
			if err != nil {
				return err
			}
			if len(defines) > 0 {
				p.Config = p.Config.Merge(defines)
			}

			paths, err := p.Scripts(args...)
			if err != nil {
				return err
			}

			ws := workspace.New(p, flags.parserOptions()...)
			for _, path := range paths {
				if _, err := ws.ScanFile(path); err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
			}

			failed := ws.Failed()
			report(cmd.OutOrStdout(), failed)
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d scripts failed to parse", len(failed), len(paths))
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func report(w io.Writer, docs []*workspace.Document) {
	for _, doc := range docs {
		for _, d := range doc.Diagnostics {
			fmt.Fprintf(w, "%s:%d:%d: %s\n", doc.Path, d.Loc.Start.Line, d.Loc.Start.Col+1, d.Message)
		}
	}
}
