package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/bannockburn/format"
	"github.com/dhamidi/bannockburn/lexer"
	"github.com/dhamidi/bannockburn/preprocessor"
)

func newPreprocessCmd() *cobra.Command {
	var flags parserFlags
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "preprocess <file>",
		Short: "Print the tokens of a script after macro expansion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}

			p, err := flags.project(filepath.Dir(filename))
			if err != nil {
				return err
			}
			defines, err := flags.defineMap()
			if err != nil {
				return err
			}
			cfg := p.Config.Merge(defines)

			tokens, _ := lexer.Tokenize(string(data))
			tokens, err = preprocessor.New(preprocessor.WithDefines(cfg.Defines)).Run(tokens)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}

			var encoder format.Encoder[format.Lexed]
			switch outputFormat {
			case "json":
				encoder = format.NewTokenJSONEncoder(cmd.OutOrStdout())
			case "text":
				encoder = format.NewTokenLineEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return encoder.Encode(format.Lexed{Tokens: tokens})
		},
	}

	flags.registerMacros(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}
