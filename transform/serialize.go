package transform

import (
	"sort"

	"github.com/relquery/relquery/ast"
)

// serialize rewrites sel's SELECT list into a single nested
// json_build_object/json_agg expression tree described by spec.Root. The
// rest of the query (FROM, WHERE, JOINs, WITH, pagination) is left
// untouched; only the projection changes.
func serialize(sel *ast.SelectStmt, spec *SerializeSpec) (*ast.SelectStmt, error) {
	if spec == nil || spec.Root == nil {
		return sel, nil
	}
	out := cloneSelectShallow(sel)
	expr := entityExpr(spec.Root)
	out.Columns = []ast.SelectExpr{&ast.AliasedExpr{Expr: expr, Alias: spec.Root.Alias}}
	return out, nil
}

// entityExpr builds the json_build_object(...) call for a single entity,
// wrapping it in json_agg(...) when Many is set. Keys are emitted in sorted
// order for deterministic output.
func entityExpr(e *Entity) ast.Expr {
	var args []ast.Expr

	keys := make([]string, 0, len(e.Columns))
	for k := range e.Columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, &ast.Literal{Type: ast.LiteralString, Value: k})
		args = append(args, colRef(e.Columns[k]))
	}

	childKeys := make([]string, 0, len(e.Children))
	for k := range e.Children {
		childKeys = append(childKeys, k)
	}
	sort.Strings(childKeys)
	for _, k := range childKeys {
		child := e.Children[k]
		args = append(args, &ast.Literal{Type: ast.LiteralString, Value: k})
		args = append(args, entityExpr(child))
	}

	obj := ast.Expr(&ast.FuncExpr{Name: "json_build_object", Args: args})
	if e.Many {
		obj = &ast.FuncExpr{Name: "json_agg", Args: []ast.Expr{obj}}
	}
	return obj
}
