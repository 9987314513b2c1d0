package directive

import (
	"go/ast"
)

// Extract scans a function's leading comments for the fatal marker and
// consumes it: the marker line is removed from the doc comment (other doc
// lines are preserved), and a marker standing inside the body before the
// first statement is removed from the file's comment list.
//
// A second marker anywhere on the same function is ErrAmbiguous. Absence
// yields the zero Directive. Extraction has no side effects other than the
// removal itself.
func Extract(file *ast.File, fn *ast.FuncDecl) (Directive, error) {
	var dir Directive

	record := func(c *ast.Comment) error {
		if dir.Present {
			return ErrAmbiguous
		}
		reason, err := parseReason(c)
		if err != nil {
			return err
		}
		dir = Directive{Present: true, Reason: reason, Pos: c.Pos()}
		return nil
	}

	if fn.Doc != nil {
		kept := fn.Doc.List[:0]
		for _, c := range fn.Doc.List {
			if !IsMarker(c) {
				kept = append(kept, c)
				continue
			}
			if err := record(c); err != nil {
				return Directive{}, err
			}
		}
		// Filtering in place keeps the group shared with file.Comments
		// consistent.
		fn.Doc.List = kept
		if len(fn.Doc.List) == 0 {
			fn.Doc = nil
		}
	}

	for _, g := range leadingBodyGroups(file, fn) {
		for _, c := range g.List {
			if !IsMarker(c) {
				continue
			}
			if err := record(c); err != nil {
				return Directive{}, err
			}
			removeComment(g, c)
		}
	}
	pruneEmptyGroups(file)

	return dir, nil
}

// Annotated reports whether fn carries the fatal marker, without consuming
// anything.
func Annotated(file *ast.File, fn *ast.FuncDecl) bool {
	if fn.Doc != nil {
		for _, c := range fn.Doc.List {
			if IsMarker(c) {
				return true
			}
		}
	}
	for _, g := range leadingBodyGroups(file, fn) {
		for _, c := range g.List {
			if IsMarker(c) {
				return true
			}
		}
	}
	return false
}

// leadingBodyGroups returns the comment groups positioned inside fn's body
// before its first statement.
func leadingBodyGroups(file *ast.File, fn *ast.FuncDecl) []*ast.CommentGroup {
	if fn.Body == nil {
		return nil
	}
	limit := fn.Body.Rbrace
	if len(fn.Body.List) > 0 {
		limit = fn.Body.List[0].Pos()
	}

	var groups []*ast.CommentGroup
	for _, g := range file.Comments {
		// A group emptied by doc filtering has no position to compare.
		if len(g.List) == 0 {
			continue
		}
		if g.Pos() > fn.Body.Lbrace && g.End() < limit {
			groups = append(groups, g)
		}
	}
	return groups
}

func removeComment(g *ast.CommentGroup, target *ast.Comment) {
	kept := g.List[:0]
	for _, c := range g.List {
		if c != target {
			kept = append(kept, c)
		}
	}
	g.List = kept
}

func pruneEmptyGroups(file *ast.File) {
	kept := file.Comments[:0]
	for _, g := range file.Comments {
		if len(g.List) > 0 {
			kept = append(kept, g)
		}
	}
	file.Comments = kept
}
