// Package parser turns script source into a declaration-resolved syntax
// tree.
//
// Parsing runs the lexer and the preprocessor, then a Pratt parser over
// the resulting tokens. Every token id has a binding power and up to three
// productions: one used when the token starts an expression, one used
// when it continues an expression after a left operand, and one used when
// it opens a statement.
//
// Names are resolved while tokens are read. A name that was declared in
// an enclosing scope is marked Declared; a builtin type name that was
// redeclared as a variable loses its type meaning in that scope; a name
// that matches a keyword takes the keyword as its arity. Undeclared names
// are not an error.
//
// A script may start with statements outside any function. They are
// parsed in an implicit function scope that ends at the first function
// declaration; after that only function declarations may appear at the
// top level.
//
// A Parser holds configuration only. Each call to Parse owns its own
// session, so one Parser can serve many goroutines.
package parser
