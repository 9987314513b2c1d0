package rewrite

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
)

// Source parses src, rewrites every annotated function, and returns the
// formatted result. The boolean reports whether anything changed; when a
// structural error is returned the source comes back untouched, so a
// rejected fragment can never reach execution.
func Source(filename string, src []byte) ([]byte, bool, []*StructuralError) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return src, false, []*StructuralError{
			structural(CodeMalformedBlock, token.Position{Filename: filename}, err, "%v", err),
		}
	}

	n, errs := File(fset, file)
	if len(errs) > 0 || n == 0 {
		return src, false, errs
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return src, false, []*StructuralError{
			structural(CodeMalformedBlock, token.Position{Filename: filename}, err,
				"rendering rewritten source: %v", err),
		}
	}

	// Synthesized nodes carry no positions; a second formatting pass
	// normalizes their spacing.
	out, err := format.Source(buf.Bytes())
	if err != nil {
		out = buf.Bytes()
	}
	return out, true, nil
}
