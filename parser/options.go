package parser

import "github.com/dhamidi/bannockburn/preprocessor"

// Options are the switches a parser is built with.
type Options struct {
	// Strict is accepted for compatibility; it enables no checks yet.
	Strict bool
	// UnreachableCodeErrors rejects statements that follow return,
	// break or continue in the same block.
	UnreachableCodeErrors bool
	// AdditionalTypes are extra builtin type names.
	AdditionalTypes []string
}

type Option func(*Parser)

func WithStrict() Option {
	return func(p *Parser) {
		p.options.Strict = true
	}
}

func WithUnreachableCodeErrors() Option {
	return func(p *Parser) {
		p.options.UnreachableCodeErrors = true
	}
}

func WithAdditionalTypes(types ...string) Option {
	return func(p *Parser) {
		p.options.AdditionalTypes = append(p.options.AdditionalTypes, types...)
	}
}

// WithOptions replaces all switches at once.
func WithOptions(o Options) Option {
	return func(p *Parser) {
		p.options = o
	}
}

// WithFeatures replaces the default language tables.
func WithFeatures(f *Features) Option {
	return func(p *Parser) {
		p.features = f
	}
}

// WithDefines predefines preprocessor macros from name → body text.
func WithDefines(defines map[string]string) Option {
	return func(p *Parser) {
		p.preprocessorOpts = append(p.preprocessorOpts, preprocessor.WithDefines(defines))
	}
}
