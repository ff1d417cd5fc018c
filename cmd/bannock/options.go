package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/bannockburn/config"
	"github.com/dhamidi/bannockburn/parser"
	"github.com/dhamidi/bannockburn/project"
)

// parserFlags are the parser settings shared by every command that parses.
// Flags override the project configuration.
type parserFlags struct {
	configPath  string
	strict      bool
	unreachable bool
	types       []string
	defines     []string
}

func (f *parserFlags) register(cmd *cobra.Command) {
	f.registerMacros(cmd)
	cmd.Flags().BoolVar(&f.strict, "strict", false, "enable strict mode")
	cmd.Flags().BoolVar(&f.unreachable, "unreachable", false, "report unreachable statements as errors")
	cmd.Flags().StringSliceVar(&f.types, "types", nil, "additional builtin type names")
}

// registerMacros adds only the flags that affect preprocessing.
func (f *parserFlags) registerMacros(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "configuration file (default: nearest .bannock.toml or .bannock.yaml)")
	cmd.Flags().StringArrayVarP(&f.defines, "define", "D", nil, "predefine a macro as NAME or NAME=BODY")
}

// project loads the project containing dir, or the one rooted at the
// explicit configuration file.
func (f *parserFlags) project(dir string) (*project.Project, error) {
	if f.configPath == "" {
		return project.LoadFrom(dir)
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(cfg.Dir())
	if err != nil {
		return nil, err
	}
	return &project.Project{RootDir: root, Config: cfg}, nil
}

func (f *parserFlags) parserOptions() []parser.Option {
	var opts []parser.Option
	if f.strict {
		opts = append(opts, parser.WithStrict())
	}
	if f.unreachable {
		opts = append(opts, parser.WithUnreachableCodeErrors())
	}
	if len(f.types) > 0 {
		opts = append(opts, parser.WithAdditionalTypes(f.types...))
	}
	return opts
}

func (f *parserFlags) defineMap() (map[string]string, error) {
	if len(f.defines) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(f.defines))
	for _, d := range f.defines {
		name, body, _ := strings.Cut(d, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid macro definition %q", d)
		}
		m[name] = body
	}
	return m, nil
}

// parser builds a parser for the project containing dir.
func (f *parserFlags) parser(dir string) (*project.Project, *parser.Parser, error) {
	p, err := f.project(dir)
	if err != nil {
		return nil, nil, err
	}
	defines, err := f.defineMap()
	if err != nil {
		return nil, nil, err
	}
	return p, p.Parser(defines, f.parserOptions()...), nil
}
