package collect

import (
	"fmt"

	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/errs"
)

// TableColumnResolver resolves the column list of a physical table for
// wildcard expansion. Callers without schema access may pass nil; in that
// case wildcards are returned opaque (Column.Wildcard = true) rather than
// expanded.
type TableColumnResolver func(table string) ([]string, error)

// Column is a single projected item of a SELECT's column list.
type Column struct {
	Name     string   // output name: alias, or the bare column name, or "*"
	Expr     ast.Expr // the underlying expression (nil for a bare wildcard)
	Origin   *string  // qualifying table/alias, if statically known
	Wildcard bool     // true for "*" or "t.*" left unexpanded
}

// Columns returns the selectable output columns of sel, expanding any
// wildcard (`*` or `t.*`) using resolve when provided. With resolve == nil,
// wildcards are returned as a single opaque Column. When resolve is
// provided and returns an empty column list for a wildcard's table, the
// call fails with errs.ResolveError(errs.ReasonEmptyWildcard, ...) per the
// documented Open Question resolution — it is considered more surprising
// for the caller to silently get zero columns than to be told the
// resolver's answer was empty.
func Columns(sel *ast.SelectStmt, resolve TableColumnResolver) ([]Column, error) {
	var out []Column
	for _, se := range sel.Columns {
		switch c := se.(type) {
		case *ast.StarExpr:
			qualifier := ""
			if c.HasQualifier {
				qualifier = c.TableName
			}
			if resolve == nil {
				out = append(out, Column{Name: "*", Wildcard: true, Origin: nilIfEmpty(qualifier)})
				continue
			}
			names, err := resolve(qualifier)
			if err != nil {
				return nil, errs.Wrap(err, "resolve columns for wildcard %q", qualifier)
			}
			if len(names) == 0 {
				return nil, errs.ResolveError(errs.ReasonEmptyWildcard,
					map[string]any{"table": qualifier},
					"wildcard %q resolved to zero columns", displayQualifier(qualifier))
			}
			for _, name := range names {
				out = append(out, Column{
					Name:   name,
					Origin: nilIfEmpty(qualifier),
				})
			}
		case *ast.AliasedExpr:
			name := c.Alias
			if name == "" {
				name = exprDisplayName(c.Expr)
			}
			out = append(out, Column{
				Name:   name,
				Expr:   c.Expr,
				Origin: columnOrigin(c.Expr),
			})
		default:
			// Any other SelectExpr shape (shouldn't normally occur; the parser
			// always wraps bare expressions in AliasedExpr).
			if expr, ok := se.(ast.Expr); ok {
				out = append(out, Column{Name: exprDisplayName(expr), Expr: expr})
			}
		}
	}
	return out, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func displayQualifier(q string) string {
	if q == "" {
		return "*"
	}
	return q + ".*"
}

func exprDisplayName(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.ColName:
		return v.Name()
	case *ast.FuncExpr:
		return v.Name
	default:
		return fmt.Sprintf("%T", e)
	}
}

func columnOrigin(e ast.Expr) *string {
	if col, ok := e.(*ast.ColName); ok {
		t := col.Table()
		if t != "" {
			return &t
		}
	}
	return nil
}

// FilterableItem is a column or parameter that a caller may legally filter
// or sort on.
type FilterableItem struct {
	Kind string // "column" or "parameter"
	Name string
}

// FilterableItems returns the union of sel's selectable columns (deduped
// by fully-qualified name: "origin.name" or bare "name" when Origin is
// unset) and every parameter referenced anywhere in sel.
func FilterableItems(sel *ast.SelectStmt, resolve TableColumnResolver) ([]FilterableItem, error) {
	cols, err := Columns(sel, resolve)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []FilterableItem
	for _, c := range cols {
		if c.Wildcard {
			continue
		}
		key := c.Name
		if c.Origin != nil {
			key = *c.Origin + "." + c.Name
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, FilterableItem{Kind: "column", Name: key})
	}

	for _, p := range Parameters(sel) {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("$%d", p.Index)
		}
		key := "param:" + name
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, FilterableItem{Kind: "parameter", Name: name})
	}

	return out, nil
}
