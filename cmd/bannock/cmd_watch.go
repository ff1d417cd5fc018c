package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/bannockburn/workspace"
)

func newWatchCmd() *cobra.Command {
	var flags parserFlags
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check scripts whenever they change",
		Args:  cobra.MaximumNArgs(1),
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

			ws := workspace.New(p, flags.parserOptions()...)
			if err := ws.ScanAll(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			report(out, ws.Failed())
			fmt.Fprintf(out, "watching %d scripts in %s\n", len(ws.Documents()), p.RootDir)

			w, err := workspace.NewWatcher(ws,
				workspace.WithDebounce(debounce),
				workspace.OnChange(func(changes []workspace.Change) {
					for _, c := range changes {
						switch {
						case c.Removed:
							fmt.Fprintf(out, "%s: removed\n", c.Path)
						case c.Document.Failed():
							report(out, []*workspace.Document{c.Document})
						default:
							fmt.Fprintf(out, "%s: ok\n", c.Path)
						}
					}
				}),
			)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "wait this long for changes to settle")

	return cmd
}
