// Package rewrite is the transformation engine behind cmd/impass.
//
// It takes a parsed Go file, finds the functions annotated with the fatal
// marker, and rewrites each one: the directive is extracted, the declared
// (T, error) outcome is validated, the body is wrapped in a thunk passed to
// fatal.Do, and the declared results become the bare T. The rewrite is a
// pure source-to-source step; fragments that do not validate are rejected
// with a StructuralError before any execution can occur.
package rewrite
