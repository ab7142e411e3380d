// Package collect implements the read-only static analyzers: CTE
// collection, selectable-column collection, column-reference collection,
// parameter collection, filterable-item collection, and CTE dependency
// analysis.
package collect

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/visitor"
)

// CTEs returns every CTE reachable from root, in first-encounter
// (pre-order) order, including CTEs nested inside other CTE bodies,
// sub-selects, and set-operation branches. No deduplication by name is
// performed; a query that legally shadows an outer CTE name in an inner
// WITH clause yields both entries.
func CTEs(root ast.Node) []*ast.CTE {
	var out []*ast.CTE
	visitor.Inspect(root, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.SelectStmt:
			appendCTEs(s.With, &out)
		case *ast.InsertStmt:
			appendCTEs(s.With, &out)
		case *ast.UpdateStmt:
			appendCTEs(s.With, &out)
		case *ast.DeleteStmt:
			appendCTEs(s.With, &out)
		case *ast.MergeStmt:
			appendCTEs(s.With, &out)
		}
		return true
	})
	return out
}

func appendCTEs(with *ast.WithClause, out *[]*ast.CTE) {
	if with == nil {
		return
	}
	*out = append(*out, with.CTEs...)
}
