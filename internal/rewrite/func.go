package rewrite

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/impass-go/impass/internal/directive"
)

// RuntimeImport is the package the generated code calls into.
const RuntimeImport = "github.com/impass-go/impass/pkg/fatal"

// runtimePkg is the identifier the generated expression references.
const runtimePkg = "fatal"

// Func applies the function-form transformation to one annotated
// declaration: the directive is extracted and consumed, the body becomes
// the block-form expression, and the declared outcome (T, error) is
// rewritten to T. Name, receiver, parameters, type parameters and the
// remaining doc lines are preserved unchanged.
func Func(fset *token.FileSet, file *ast.File, fn *ast.FuncDecl) *StructuralError {
	dir, err := directive.Extract(file, fn)
	if err != nil {
		code := CodeBadDirective
		if errors.Is(err, directive.ErrAmbiguous) {
			code = CodeAmbiguousDirective
		}
		return structural(code, fset.Position(fn.Pos()), err, "function %s: %v", fn.Name.Name, err)
	}

	value, serr := outcomeValue(fset, fn)
	if serr != nil {
		return serr
	}

	if fn.Body == nil || len(fn.Body.List) == 0 {
		return structural(CodeMalformedBlock, fset.Position(fn.Pos()), nil,
			"function %s has no body to transform", fn.Name.Name)
	}

	if shadow := shadowingName(fn); shadow != "" {
		return structural(CodeMalformedBlock, fset.Position(fn.Pos()), nil,
			"function %s: the %s shadows the %s runtime package", fn.Name.Name, shadow, runtimePkg)
	}

	frag := &Fragment{
		Stmts:   fn.Body.List,
		Results: fn.Type.Results,
		Value:   value,
		Reason:  dir.Reason,
	}

	fn.Type.Results = &ast.FieldList{List: []*ast.Field{{Type: value}}}
	fn.Body = &ast.BlockStmt{
		Lbrace: fn.Body.Lbrace,
		List:   []ast.Stmt{&ast.ReturnStmt{Results: []ast.Expr{frag.Expr()}}},
		Rbrace: fn.Body.Rbrace,
	}
	return nil
}

// File transforms every annotated function declaration in a parsed file.
// Functions without the marker are left untouched. Each fragment is
// processed independently; a structural rejection of one function does not
// stop the others. Returns the number of rewritten functions.
func File(fset *token.FileSet, file *ast.File) (int, []*StructuralError) {
	var (
		rewritten int
		errs      []*StructuralError
	)

	var annotated []*ast.FuncDecl
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && directive.Annotated(file, fn) {
			annotated = append(annotated, fn)
		}
	}
	if len(annotated) == 0 {
		return 0, nil
	}

	if desc := runtimeCollision(file); desc != "" {
		errs = append(errs, structural(CodeMalformedBlock, fset.Position(file.Pos()), nil,
			"generated code needs the %s identifier to resolve to %s, but it is taken by %s", runtimePkg, RuntimeImport, desc))
		return 0, errs
	}

	for _, fn := range annotated {
		if serr := Func(fset, file, fn); serr != nil {
			errs = append(errs, serr)
			continue
		}
		rewritten++
	}

	if rewritten > 0 {
		ensureImport(file)
	}
	return rewritten, errs
}

func ensureImport(file *ast.File) {
	for _, imp := range file.Imports {
		if path, err := strconv.Unquote(imp.Path.Value); err == nil && path == RuntimeImport {
			return
		}
	}

	spec := &ast.ImportSpec{
		Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(RuntimeImport)},
	}
	file.Imports = append(file.Imports, spec)

	for _, d := range file.Decls {
		if gd, ok := d.(*ast.GenDecl); ok && gd.Tok == token.IMPORT {
			gd.Specs = append(gd.Specs, spec)
			return
		}
	}
	file.Decls = append([]ast.Decl{&ast.GenDecl{
		Tok:   token.IMPORT,
		Specs: []ast.Spec{spec},
	}}, file.Decls...)
}

// runtimeCollision describes whatever captures the runtime package's
// identifier at file scope: the runtime import under an alias, a foreign
// import visible under the same name, or a top-level declaration of it.
// Empty means the generated selector resolves to the runtime package.
func runtimeCollision(file *ast.File) string {
	if alias := importedAs(file); alias != runtimePkg {
		return fmt.Sprintf("the runtime import aliased as %q", alias)
	}

	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path == RuntimeImport {
			continue
		}
		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == runtimePkg {
			return fmt.Sprintf("the import of %q", path)
		}
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil && d.Name.Name == runtimePkg {
				return fmt.Sprintf("the top-level function %s", d.Name.Name)
			}
		case *ast.GenDecl:
			for _, s := range d.Specs {
				switch sp := s.(type) {
				case *ast.TypeSpec:
					if sp.Name.Name == runtimePkg {
						return fmt.Sprintf("the top-level type %s", sp.Name.Name)
					}
				case *ast.ValueSpec:
					for _, n := range sp.Names {
						if n.Name == runtimePkg {
							return fmt.Sprintf("the top-level declaration of %s", n.Name)
						}
					}
				}
			}
		}
	}
	return ""
}

// shadowingName reports the receiver, parameter or type parameter of fn
// that would shadow the runtime package inside the rewritten body.
func shadowingName(fn *ast.FuncDecl) string {
	match := func(fl *ast.FieldList, kind string) string {
		if fl == nil {
			return ""
		}
		for _, f := range fl.List {
			for _, n := range f.Names {
				if n.Name == runtimePkg {
					return fmt.Sprintf("%s %s", kind, n.Name)
				}
			}
		}
		return ""
	}

	if s := match(fn.Recv, "receiver"); s != "" {
		return s
	}
	if s := match(fn.Type.TypeParams, "type parameter"); s != "" {
		return s
	}
	return match(fn.Type.Params, "parameter")
}

// importedAs returns the identifier the runtime package is visible under in
// this file, defaulting to the package's own name when it is not imported.
func importedAs(file *ast.File) string {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != RuntimeImport {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return runtimePkg
	}
	if i := strings.LastIndex(RuntimeImport, "/"); i >= 0 {
		return RuntimeImport[i+1:]
	}
	return runtimePkg
}
