package rename

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/errs"
	"github.com/relquery/relquery/format"
	"github.com/relquery/relquery/token"
	"github.com/relquery/relquery/visitor"
)

// RenameAlias finds the AliasedTableExpr whose alias (or, lacking an
// alias, whose bare table name) is under cursor, determines its
// enclosing scope via DetectScope, and renames it plus every ColName
// reference that qualifies a column with the old alias anywhere inside
// that scope — but nowhere else. root is mutated in place and returned
// for convenience.
func RenameAlias(root ast.Node, cursor token.Pos, newName string) (ast.Node, error) {
	target := findAliasAt(root, cursor)
	if target == nil {
		return nil, errs.SchemaError(map[string]any{"cursor": cursor}, "no table alias at cursor")
	}
	oldName := target.Alias
	if oldName == "" {
		if name, ok := target.Expr.(*ast.TableName); ok {
			oldName = name.Name()
		}
	}
	if oldName == "" {
		return nil, errs.SchemaError(nil, "cannot rename an unaliased, unnamed table expression")
	}

	scope := DetectScope(root, cursor)
	target.Alias = newName

	visitor.Inspect(scope.Node, func(n ast.Node) bool {
		col, ok := n.(*ast.ColName)
		if !ok {
			return true
		}
		if col.Table() == oldName {
			col.Parts[len(col.Parts)-2] = newName
		}
		return true
	})

	return root, nil
}

func findAliasAt(root ast.Node, cursor token.Pos) *ast.AliasedTableExpr {
	var found *ast.AliasedTableExpr
	visitor.Inspect(root, func(n ast.Node) bool {
		ate, ok := n.(*ast.AliasedTableExpr)
		if !ok {
			return true
		}
		if withinRange(ate.Pos(), ate.End(), cursor) {
			found = ate
		}
		return true
	})
	return found
}

func withinRange(start, end, pos token.Pos) bool {
	return pos.Offset >= start.Offset && pos.Offset <= end.Offset
}

// RenameCTE renames the CTE named oldName to newName throughout root:
// its own definition, every TableName reference inside any CTE body
// (including ones defined earlier or later in the same WITH clause), and
// every reference in the main query. Fails if newName already names
// another CTE in the same WITH clause, or if oldName does not exist.
func RenameCTE(root ast.Node, oldName, newName string) (ast.Node, error) {
	sel, ok := root.(*ast.SelectStmt)
	if !ok || sel.With == nil {
		return nil, errs.SchemaError(map[string]any{"cte": oldName}, "statement has no WITH clause")
	}

	var target *ast.CTE
	for _, cte := range sel.With.CTEs {
		if cte.Name == newName {
			return nil, errs.SchemaError(map[string]any{"name": newName}, "a CTE named %q already exists", newName)
		}
		if cte.Name == oldName {
			target = cte
		}
	}
	if target == nil {
		return nil, errs.SchemaError(map[string]any{"cte": oldName}, "no CTE named %q", oldName)
	}
	target.Name = newName

	visitor.Inspect(sel, func(n ast.Node) bool {
		if tbl, ok := n.(*ast.TableName); ok && tbl.Name() == oldName {
			tbl.Parts[len(tbl.Parts)-1] = newName
		}
		return true
	})

	return sel, nil
}

// IsRenameable reports whether cursor points at something RenameAlias or
// RenameCTE can act on: a table alias/name token, or a CTE name.
func IsRenameable(root ast.Node, cursor token.Pos) bool {
	if findAliasAt(root, cursor) != nil {
		return true
	}
	sel, ok := root.(*ast.SelectStmt)
	if !ok || sel.With == nil {
		return false
	}
	return cteNameAt(sel, cursor) != ""
}

// cteNameAt returns the name of the CTE whose name token cursor falls on,
// approximated as falling strictly before the CTE body's own start
// position and within the enclosing WITH clause's span; CTE.NamePos is
// not consulted.
func cteNameAt(sel *ast.SelectStmt, cursor token.Pos) string {
	if sel.With == nil {
		return ""
	}
	for _, cte := range sel.With.CTEs {
		if cursor.Offset < cte.Query.Pos().Offset && cursor.Offset >= sel.Pos().Offset {
			return cte.Name
		}
	}
	return ""
}

// SmartRename dispatches to RenameCTE or RenameAlias depending on what
// cursor points at.
func SmartRename(root ast.Node, cursor token.Pos, newName string) (ast.Node, error) {
	if sel, ok := root.(*ast.SelectStmt); ok {
		if name := cteNameAt(sel, cursor); name != "" {
			return RenameCTE(root, name, newName)
		}
	}
	return RenameAlias(root, cursor, newName)
}

// RenameAliasPreserveFormat behaves like RenameAlias but, instead of
// mutating root and leaving re-serialization to the formatter, splices
// newName directly into src at the exact byte ranges of the alias (or bare
// table name) token and every qualifying ColName part, via
// format.RenderWithEdits. Everything else in src — whitespace, comments,
// keyword casing — is carried through untouched, which is what the
// format-preserving rename path requires that mutate-then-reformat cannot
// give: a round-trip through the formatter normalizes layout even where
// the rename itself touched nothing.
func RenameAliasPreserveFormat(src string, root ast.Node, cursor token.Pos, newName string) (string, error) {
	target := findAliasAt(root, cursor)
	if target == nil {
		return "", errs.SchemaError(map[string]any{"cursor": cursor}, "no table alias at cursor")
	}

	var oldName string
	var edits []format.Edit
	if target.Alias != "" {
		oldName = target.Alias
		edits = append(edits, edit(target.AliasPos, oldName, newName))
	} else if tn, ok := target.Expr.(*ast.TableName); ok {
		oldName = tn.Name()
		if len(tn.PartPos) > 0 {
			edits = append(edits, edit(tn.PartPos[len(tn.PartPos)-1], oldName, newName))
		}
	}
	if oldName == "" {
		return "", errs.SchemaError(nil, "cannot rename an unaliased, unnamed table expression")
	}

	scope := DetectScope(root, cursor)
	visitor.Inspect(scope.Node, func(n ast.Node) bool {
		col, ok := n.(*ast.ColName)
		if !ok {
			return true
		}
		if col.Table() == oldName && len(col.PartPos) >= 2 {
			edits = append(edits, edit(col.PartPos[len(col.PartPos)-2], oldName, newName))
		}
		return true
	})

	return format.RenderWithEdits(src, edits), nil
}

// RenameCTEPreserveFormat behaves like RenameCTE but splices newName
// directly into src at the CTE's own name token and every TableName
// reference's matching part, leaving the rest of src byte-for-byte
// unchanged.
func RenameCTEPreserveFormat(src string, root ast.Node, oldName, newName string) (string, error) {
	sel, ok := root.(*ast.SelectStmt)
	if !ok || sel.With == nil {
		return "", errs.SchemaError(map[string]any{"cte": oldName}, "statement has no WITH clause")
	}

	var target *ast.CTE
	for _, cte := range sel.With.CTEs {
		if cte.Name == newName {
			return "", errs.SchemaError(map[string]any{"name": newName}, "a CTE named %q already exists", newName)
		}
		if cte.Name == oldName {
			target = cte
		}
	}
	if target == nil {
		return "", errs.SchemaError(map[string]any{"cte": oldName}, "no CTE named %q", oldName)
	}

	edits := []format.Edit{edit(target.NamePos, oldName, newName)}
	visitor.Inspect(sel, func(n ast.Node) bool {
		tbl, ok := n.(*ast.TableName)
		if !ok || tbl.Name() != oldName || len(tbl.PartPos) == 0 {
			return true
		}
		edits = append(edits, edit(tbl.PartPos[len(tbl.PartPos)-1], oldName, newName))
		return true
	})

	return format.RenderWithEdits(src, edits), nil
}

func edit(pos token.Pos, oldName, newName string) format.Edit {
	return format.Edit{Start: pos.Offset, End: pos.Offset + len(oldName), Replacement: newName}
}
