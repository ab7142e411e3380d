// Package rename implements cursor-to-scope resolution and the
// alias/CTE rename engines: RenameAlias, RenameCTE, SmartRename, and the
// IsRenameable editor predicate.
package rename

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/token"
	"github.com/relquery/relquery/visitor"
)

// ScopeKind identifies the kind of lexical scope a cursor falls in.
type ScopeKind string

const (
	ScopeMain     ScopeKind = "MAIN"
	ScopeCTE      ScopeKind = "CTE"
	ScopeSubquery ScopeKind = "SUBQUERY"
)

// Scope is the innermost enclosing lexical region of a cursor position.
type Scope struct {
	Kind ScopeKind
	Name string // CTE name, set only when Kind == ScopeCTE
	ID   int    // subquery ordinal, set only when Kind == ScopeSubquery
	Node ast.Node
}

// span is one entry of the span tree: a node's byte range plus the scope
// it introduces, tagged with nesting depth so DetectScope can prefer the
// innermost (deepest) match among overlapping spans.
type span struct {
	start, end int
	scope      Scope
	depth      int
}

// spanTree is the flattened list of every scope-introducing span in a
// statement (the main query, every CTE body, every sub-query).
type spanTree struct {
	spans []span
}

// builder accumulates spans while walking a statement exactly once.
type builder struct {
	tree  *spanTree
	subID int
}

// buildSpanTree walks root once, recording the main query's own span plus
// the span of every CTE body and sub-query reachable from it.
func buildSpanTree(root ast.Node) *spanTree {
	t := &spanTree{spans: []span{{
		start: root.Pos().Offset,
		end:   root.End().Offset,
		scope: Scope{Kind: ScopeMain, Node: root},
		depth: 0,
	}}}
	b := &builder{tree: t}
	if sel, ok := root.(*ast.SelectStmt); ok {
		b.visitSelect(sel, 0)
	}
	return t
}

// visitSelect records sel's CTE and sub-query scopes and recurses into
// each of their bodies exactly once.
func (b *builder) visitSelect(sel *ast.SelectStmt, depth int) {
	if sel.With != nil {
		for _, cte := range sel.With.CTEs {
			b.tree.spans = append(b.tree.spans, span{
				start: cte.Query.Pos().Offset,
				end:   cte.Query.End().Offset,
				scope: Scope{Kind: ScopeCTE, Name: cte.Name, Node: cte.Query},
				depth: depth + 1,
			})
			if body, ok := cte.Query.(*ast.SelectStmt); ok {
				b.visitSelect(body, depth+1)
			}
		}
	}

	// Find sub-queries directly reachable from sel (FROM, WHERE, etc.),
	// stopping descent at any nested *ast.SelectStmt so that its subtree
	// (a CTE body, already handled above, or a sub-query body) is only
	// ever visited through this function's own recursive calls.
	root := ast.Node(sel)
	visitor.Inspect(sel, func(n ast.Node) bool {
		if n == root {
			return true
		}
		switch t := n.(type) {
		case *ast.Subquery:
			b.subID++
			b.tree.spans = append(b.tree.spans, span{
				start: t.Select.Pos().Offset,
				end:   t.Select.End().Offset,
				scope: Scope{Kind: ScopeSubquery, ID: b.subID, Node: t.Select},
				depth: depth + 1,
			})
			b.visitSelect(t.Select, depth+1)
			return false
		case *ast.SelectStmt:
			return false
		}
		return true
	})
}

// DetectScope returns the innermost scope enclosing the byte offset pos
// within root.
func DetectScope(root ast.Node, pos token.Pos) Scope {
	tree := buildSpanTree(root)
	best := tree.spans[0]
	for _, s := range tree.spans {
		if pos.Offset >= s.start && pos.Offset <= s.end && s.depth >= best.depth {
			best = s
		}
	}
	return best.scope
}
