package collect

import (
	"strconv"

	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/visitor"
)

// ColumnRefs returns every *ast.ColName reachable from root, in traversal
// order, including references inside CTE bodies and sub-queries. Identity
// is preserved (each returned pointer is the actual AST node, not a copy)
// and no deduplication is performed — a column referenced five times in a
// WHERE clause yields five entries.
func ColumnRefs(root ast.Node) []*ast.ColName {
	var out []*ast.ColName
	visitor.Inspect(root, func(n ast.Node) bool {
		if col, ok := n.(*ast.ColName); ok {
			out = append(out, col)
		}
		return true
	})
	return out
}

// Parameters returns every *ast.Param reachable from root, deduplicated by
// name for named/positional markers sharing the same name; anonymous `?`
// markers are never deduplicated since they have no shared identity. Order
// is first occurrence.
func Parameters(root ast.Node) []*ast.Param {
	var out []*ast.Param
	seen := make(map[string]struct{})
	visitor.Inspect(root, func(n ast.Node) bool {
		p, ok := n.(*ast.Param)
		if !ok {
			return true
		}
		if p.Type == ast.ParamQuestion {
			out = append(out, p)
			return true
		}
		key := paramKey(p)
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		out = append(out, p)
		return true
	})
	return out
}

func paramKey(p *ast.Param) string {
	switch p.Type {
	case ast.ParamDollar:
		return "$" + strconv.Itoa(p.Index)
	case ast.ParamColon:
		return ":" + p.Name
	case ast.ParamAt:
		return "@" + p.Name
	default:
		return "?"
	}
}
