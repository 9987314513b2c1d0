package rewrite

import (
	"go/ast"
	"go/token"
	"strconv"
)

// Fragment is the unit of transformation: the statements of a validated
// block plus the success-value type of the outcome they produce and the
// extracted directive reason. Fragments are transient; nothing survives
// the transformation call that created one.
type Fragment struct {
	Stmts   []ast.Stmt
	Results *ast.FieldList // the declared (T, error) fields, names included
	Value   ast.Expr       // the T of the (T, error) outcome
	Reason  string
}

// outcomeValue validates that a declared result list has outcome shape
// (T, error) and returns the T expression. Anything else is a structural
// rejection: this check happens at transformation time, never at run time.
func outcomeValue(fset *token.FileSet, fn *ast.FuncDecl) (ast.Expr, *StructuralError) {
	results := fn.Type.Results
	reject := func() (ast.Expr, *StructuralError) {
		return nil, structural(CodeNotOutcome, fset.Position(fn.Pos()), nil,
			"function %s must be declared with outcome shape (T, error)", fn.Name.Name)
	}

	if results == nil || flattenedLen(results) != 2 {
		return reject()
	}

	fields := results.List
	var value, last ast.Expr
	switch len(fields) {
	case 1:
		// (a, b error): both names share one type.
		value, last = fields[0].Type, fields[0].Type
	case 2:
		value, last = fields[0].Type, fields[1].Type
	default:
		return reject()
	}

	if id, ok := last.(*ast.Ident); !ok || id.Name != "error" {
		return reject()
	}
	return value, nil
}

func flattenedLen(fl *ast.FieldList) int {
	n := 0
	for _, f := range fl.List {
		if len(f.Names) == 0 {
			n++
			continue
		}
		n += len(f.Names)
	}
	return n
}

// Expr assembles the fail-fast expression for the fragment:
//
//	fatal.Do(func() (T, error) { <stmts> }, fatal.WithReason("..."))
//
// The thunk evaluates the original statements exactly as written; the
// declared result fields move into it unchanged, so named results and
// naked returns keep their meaning. The surrounding call yields the
// unwrapped T on success and reports-and-exits on failure. The whole
// expression's static type is T.
func (f *Fragment) Expr() ast.Expr {
	thunk := &ast.FuncLit{
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: f.Results,
		},
		Body: &ast.BlockStmt{List: f.Stmts},
	}

	args := []ast.Expr{thunk}
	if f.Reason != "" {
		args = append(args, &ast.CallExpr{
			Fun: selector(runtimePkg, "WithReason"),
			Args: []ast.Expr{&ast.BasicLit{
				Kind:  token.STRING,
				Value: strconv.Quote(f.Reason),
			}},
		})
	}

	return &ast.CallExpr{
		Fun:  selector(runtimePkg, "Do"),
		Args: args,
	}
}

func selector(pkg, name string) ast.Expr {
	return &ast.SelectorExpr{X: ast.NewIdent(pkg), Sel: ast.NewIdent(name)}
}
