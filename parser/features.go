package parser

import "strings"

// Features describes the parts of the language that vary between
// deployments: keyword spellings, builtin type names and the word forms
// of operators.
type Features struct {
	ReservedWords []string
	BuiltinTypes  []string
	OpAlternates  map[string]string
}

// DefaultFeatures returns the standard language tables.
func DefaultFeatures() *Features {
	return &Features{
		ReservedWords: []string{
			"and", "or", "not", "eq", "lt", "gt",
			"if", "elseif", "for", "switch", "repeat", "while", "end", "function",
			"in", "to", "downto", "default", "case", "return", "break", "breakif", "continueif", "continue",
		},
		BuiltinTypes: []string{
			"assoc", "boolean", "bytes", "cachetree", "capiconnect", "capierr", "capilog", "capilogin", "dapinode",
			"dapisession", "dapistream", "dapiversion", "date", "dialog", "domattr", "domcdatasection", "domcharacterdata",
			"domcomment", "domdocument", "domdocumentfragment", "domdocumenttype", "domelement", "domentity", "domentityreference",
			"domimplementation", "domnamednodemap", "domnode", "domnodelist", "domnotation", "domparser", "domprocessinginstruction",
			"domtext", "dynamic", "error", "file", "filecopy", "fileprefs", "frame", "integer", "javaobject", "list", "long",
			"mailmessage", "object", "objref", "patchange", "patfind", "pattern", "real", "recarray", "record", "regex", "saxparser",
			"script", "socket", "string", "uapisession", "uapiuser", "ulong", "wapimap", "wapimaptask", "wapisession", "wapisubwork",
			"wapiwork", "xslprocessor",
		},
		OpAlternates: map[string]string{
			"eq":  "=",
			"lt":  "<",
			"gt":  ">",
			"or":  "||",
			"and": "&&",
			"xor": "^^",
			"not": "!",
		},
	}
}

// withTypes returns a copy with additional builtin types appended,
// lower-cased and without duplicates.
func (f *Features) withTypes(extra []string) *Features {
	c := &Features{
		ReservedWords: f.ReservedWords,
		OpAlternates:  f.OpAlternates,
	}
	seen := make(map[string]bool)
	for _, t := range append(append([]string(nil), f.BuiltinTypes...), extra...) {
		t = strings.ToLower(t)
		if !seen[t] {
			seen[t] = true
			c.BuiltinTypes = append(c.BuiltinTypes, t)
		}
	}
	return c
}
