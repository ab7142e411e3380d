package transform

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/collect"
	"github.com/relquery/relquery/errs"
)

// DecomposeCTEs splits sel's WITH clause into its CTEs, ordered by the
// dependency graph's topological order, plus a final statement for the
// main query body with the WITH clause stripped. The returned CTEs are
// the original nodes: each body still refers to the CTEs it depends on by
// name and gains no WITH clause of its own, so a body with dependencies
// is not a standalone query. The caller is expected to run the
// CTEs in the returned order and feed each one's materialized result into
// the next via whatever substitution mechanism owns table creation;
// DecomposeCTEs itself only computes the split, it does not execute
// anything.
func DecomposeCTEs(sel *ast.SelectStmt) ([]*ast.CTE, *ast.SelectStmt, error) {
	if sel.With == nil || len(sel.With.CTEs) == 0 {
		return nil, sel, nil
	}
	graph, err := collect.AnalyzeCTEDependencies(sel)
	if err != nil {
		return nil, nil, err
	}
	order := graph.TopoOrder()

	byName := make(map[string]*ast.CTE, len(sel.With.CTEs))
	for _, cte := range sel.With.CTEs {
		byName[cte.Name] = cte
	}

	ordered := make([]*ast.CTE, 0, len(order))
	for _, name := range order {
		if cte, ok := byName[name]; ok {
			ordered = append(ordered, cte)
		}
	}

	main := cloneSelectShallow(sel)
	main.With = nil
	return ordered, main, nil
}

// ExtractCTE pulls the named CTE out of sel's WITH clause into its own
// standalone SELECT, leaving the rest of the WITH clause (and the main
// query) unchanged. Returns an error if no CTE by that name exists.
func ExtractCTE(sel *ast.SelectStmt, name string) (*ast.SelectStmt, *ast.SelectStmt, error) {
	if sel.With == nil {
		return nil, nil, errs.ConversionError(map[string]any{"cte": name}, "statement has no WITH clause")
	}
	for _, cte := range sel.With.CTEs {
		if cte.Name != name {
			continue
		}
		body, ok := cte.Query.(*ast.SelectStmt)
		if !ok {
			return nil, nil, errs.ConversionError(map[string]any{"cte": name}, "CTE body is not a SELECT")
		}
		remaining := make([]*ast.CTE, 0, len(sel.With.CTEs)-1)
		for _, other := range sel.With.CTEs {
			if other.Name != name {
				remaining = append(remaining, other)
			}
		}
		rest := cloneSelectShallow(sel)
		if len(remaining) == 0 {
			rest.With = nil
		} else {
			rest.With = &ast.WithClause{Recursive: sel.With.Recursive, CTEs: remaining}
		}
		return body, rest, nil
	}
	return nil, nil, errs.ConversionError(map[string]any{"cte": name}, "no CTE named %q", name)
}

// Synchronize is the inverse of ExtractCTE/DecomposeCTEs: it re-attaches
// ctes onto main's WITH clause, in the order given, preserving main's
// recursive flag when main already had a WITH clause or defaulting to
// non-recursive otherwise.
func Synchronize(main *ast.SelectStmt, ctes []*ast.CTE) *ast.SelectStmt {
	if len(ctes) == 0 {
		return main
	}
	out := cloneSelectShallow(main)
	recursive := false
	if main.With != nil {
		recursive = main.With.Recursive
	}
	out.With = &ast.WithClause{Recursive: recursive, CTEs: ctes}
	return out
}

// DisableCTEs rewrites sel so every WITH-clause CTE body is inlined as a
// derived sub-query table expression in place of each reference to it,
// and the WITH clause itself is removed. This is useful against engines
// or analyzers that do not understand CTEs. References inside other CTE
// bodies are also inlined (earlier CTEs may depend on later ones's
// positions in the WITH list; disabling handles that via DecomposeCTEs's
// dependency ordering).
func DisableCTEs(sel *ast.SelectStmt) (*ast.SelectStmt, error) {
	if sel.With == nil || len(sel.With.CTEs) == 0 {
		return sel, nil
	}
	ordered, main, err := DecomposeCTEs(sel)
	if err != nil {
		return nil, err
	}
	bodies := make(map[string]*ast.SelectStmt, len(ordered))
	for _, cte := range ordered {
		body, ok := cte.Query.(*ast.SelectStmt)
		if !ok {
			return nil, errs.ConversionError(map[string]any{"cte": cte.Name}, "CTE body is not a SELECT")
		}
		inlined, err := inlineReferences(body, bodies)
		if err != nil {
			return nil, err
		}
		bodies[cte.Name] = inlined
	}
	return inlineReferences(main, bodies)
}

// inlineReferences replaces every *ast.TableName in from's table
// expressions whose name matches a key of bodies with a derived
// sub-query wrapping the corresponding body.
func inlineReferences(sel *ast.SelectStmt, bodies map[string]*ast.SelectStmt) (*ast.SelectStmt, error) {
	out := cloneSelectShallow(sel)
	out.From = inlineTableExpr(out.From, bodies)
	return out, nil
}

func inlineTableExpr(t ast.TableExpr, bodies map[string]*ast.SelectStmt) ast.TableExpr {
	switch e := t.(type) {
	case *ast.TableName:
		if body, ok := bodies[e.Name()]; ok {
			return &ast.AliasedTableExpr{
				Expr:  &ast.Subquery{Select: body},
				Alias: e.Name(),
			}
		}
		return t
	case *ast.AliasedTableExpr:
		cp := *e
		cp.Expr = inlineTableExpr(e.Expr, bodies)
		return &cp
	case *ast.JoinExpr:
		cp := *e
		cp.Left = inlineTableExpr(e.Left, bodies)
		cp.Right = inlineTableExpr(e.Right, bodies)
		return &cp
	default:
		return t
	}
}
