// Package parser turns Java source text into java/ast trees.
//
// # Accepted language
//
// The parser accepts a subset of Java sufficient for name resolution:
// package and import clauses, top-level classes and interfaces, fields,
// methods, constructors, the common statements and the expression forms
// that reference names. GrammarSource returns the EBNF for the subset and
// Grammar verifies it.
//
// # Errors
//
// Syntax errors are collected rather than returned at the first failure.
// Parse returns whatever tree it could build together with an ErrorList;
// callers that need a well-formed tree must check the error. Parsing is
// abandoned once the number of errors reaches the WithMaxErrors limit.
//
// # Names
//
// Dotted expressions are parsed into ObjectNode values carrying qualified
// names (System.out is one ObjectNode whose name has the qualifier System).
// Whether a qualifier denotes a package, a type or a variable is left to
// resolution.
package parser
