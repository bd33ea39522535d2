// Package expr implements the guard language used by conditional template
// directives.
//
// A guard is a boolean expression over primitive matchers:
//
//	exists("Cargo.toml")           a file matching the glob exists under the root
//	lang(go)                       a file with one of the language's extensions exists
//	env(CI)                        the variable is set to a non-empty value
//	env(NODE_ENV="production")     the variable is set to exactly this value
//
// Matchers combine with ! (not), && (and) and || (or), in decreasing order of
// binding, and parentheses group sub-expressions. Both binary operators are
// left-associative and evaluate their left operand first, skipping the right
// operand once the result is decided.
//
// # String arguments
//
// Matcher arguments may be written as:
//
//	"double quoted"   escapes \n \r \t \\ \' \" are decoded, other escapes kept as-is
//	'single quoted'   same escapes as double quoted
//	r"raw"            taken verbatim up to the next double quote
//	bare              runs until whitespace or ')'
//
// # Evaluation
//
// The package only knows how to combine results. Answering a single matcher
// is delegated to an Evaluator, see package matchers for the filesystem and
// environment backed implementation.
package expr
