package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/bannockburn/format"
)

func newLexCmd() *cobra.Command {
	var outputFormat string
	var whitespace bool

	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the tokens of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			lexed := format.Lex(string(data), whitespace)

			var encoder format.Encoder[format.Lexed]
			switch outputFormat {
			case "json":
				encoder = format.NewTokenJSONEncoder(cmd.OutOrStdout())
			case "text":
				encoder = format.NewTokenLineEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(lexed); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVarP(&whitespace, "whitespace", "w", false, "include whitespace and comment records")

	return cmd
}
