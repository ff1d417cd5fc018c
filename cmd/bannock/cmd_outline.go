package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/bannockburn/workspace"
)

func newOutlineCmd() *cobra.Command {
	var flags parserFlags

	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "List the functions, parameters, variables and labels of a script",
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

			printOutline(cmd.OutOrStdout(), workspace.Outline(nodes), 0)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func printOutline(w io.Writer, symbols []*workspace.Symbol, depth int) {
	for _, s := range symbols {
		fmt.Fprintf(w, "%s%d:%d\t%s\t%s", strings.Repeat("  ", depth), s.NameLoc.Start.Line, s.NameLoc.Start.Col, s.Kind, s.Name)
		if s.Detail != "" {
			fmt.Fprintf(w, "\t%s", s.Detail)
		}
		fmt.Fprintln(w)
		printOutline(w, s.Children, depth+1)
	}
}
