// Package config loads project settings from .bannock.toml or
// .bannock.yaml.
//
// A configuration file looks like this:
//
//	strict = true
//	unreachable_code_errors = false
//	additional_types = ["Widget", "Frame"]
//	extensions = [".Script", ".e"]
//
//	[defines]
//	DEBUG = ""
//	VERSION = "'1.0'"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/bannockburn/parser"
)

type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Names lists the file names Discover looks for, in order of preference.
var Names = []string{".bannock.toml", ".bannock.yaml", ".bannock.yml"}

// DefaultExtensions are the script file extensions used when a
// configuration does not name any.
var DefaultExtensions = []string{".Script", ".e", ".os", ".oscript"}

type Config struct {
	Strict                bool              `toml:"strict" yaml:"strict"`
	UnreachableCodeErrors bool              `toml:"unreachable_code_errors" yaml:"unreachable_code_errors"`
	AdditionalTypes       []string          `toml:"additional_types" yaml:"additional_types"`
	Defines               map[string]string `toml:"defines" yaml:"defines"`
	Extensions            []string          `toml:"extensions" yaml:"extensions"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

func Default() *Config {
	return &Config{Extensions: slices.Clone(DefaultExtensions)}
}

// FormatOf picks the decoder for a file by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unsupported configuration format: %s", path)
}

func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Parse decodes content. Unset fields keep their defaults.
func Parse(content []byte, format Format) (*Config, error) {
	c := &Config{}
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), c)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %s", undecoded[0])
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if len(c.Extensions) == 0 {
		c.Extensions = slices.Clone(DefaultExtensions)
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	return c, nil
}

// ErrNotFound is returned by Discover when no configuration file exists in
// dir or any of its parents.
var ErrNotFound = errors.New("no configuration file found")

// Discover walks up from dir to the filesystem root and loads the first
// configuration file it finds.
func Discover(dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	for {
		for _, name := range Names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return Load(path)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNotFound
		}
		dir = parent
	}
}

// DiscoverOrDefault is Discover falling back to Default when no file
// exists.
func DiscoverOrDefault(dir string) (*Config, error) {
	c, err := Discover(dir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return c, err
}

// Dir returns the directory holding the configuration file, or "" for
// defaults.
func (c *Config) Dir() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// HasScriptExtension reports whether path names a script file. Extensions
// are matched without regard to case.
func (c *Config) HasScriptExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// ParserOptions converts the configuration to parser options.
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if c.Strict {
		opts = append(opts, parser.WithStrict())
	}
	if c.UnreachableCodeErrors {
		opts = append(opts, parser.WithUnreachableCodeErrors())
	}
	if len(c.AdditionalTypes) > 0 {
		opts = append(opts, parser.WithAdditionalTypes(c.AdditionalTypes...))
	}
	if len(c.Defines) > 0 {
		opts = append(opts, parser.WithDefines(c.Defines))
	}
	return opts
}

// Merge overlays the defines in extra, as given on a command line, onto
// a copy of c. Macro names are case-insensitive, so an extra define
// replaces a configured one spelled in a different case.
func (c *Config) Merge(extra map[string]string) *Config {
	out := *c
	out.Defines = make(map[string]string, len(c.Defines)+len(extra))
	for k, v := range c.Defines {
		out.Defines[k] = v
	}
	for k, v := range extra {
		for existing := range out.Defines {
			if existing != k && strings.EqualFold(existing, k) {
				delete(out.Defines, existing)
			}
		}
		out.Defines[k] = v
	}
	return &out
}
