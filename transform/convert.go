package transform

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/errs"
)

// mainTable extracts the single real table a SELECT's FROM clause names,
// unwrapping an AliasedTableExpr. Converters fail with a ConversionError
// when From is absent or is anything other than a plain or aliased table
// (a join, sub-query, or set operation has no single target to convert
// into).
func mainTable(sel *ast.SelectStmt) (*ast.TableName, error) {
	switch t := sel.From.(type) {
	case *ast.TableName:
		return t, nil
	case *ast.AliasedTableExpr:
		if name, ok := t.Expr.(*ast.TableName); ok {
			return name, nil
		}
	}
	return nil, errs.ConversionError(map[string]any{"from": sel.From},
		"SELECT's FROM clause does not name a single table")
}

// ToInsert builds an INSERT ... SELECT statement that inserts sel's
// projection into target, reusing sel wholesale as the INSERT's source
// query (this is the common "materialize a view" shape, not a
// row-by-row VALUES expansion).
func ToInsert(sel *ast.SelectStmt, target *ast.TableName, columns []*ast.ColName) (*ast.InsertStmt, error) {
	return &ast.InsertStmt{
		With:    sel.With,
		Table:   target,
		Columns: columns,
		Select:  withoutWith(sel),
	}, nil
}

// ToUpdate converts a SELECT into an UPDATE of its own FROM table, using
// set to build the SET list and the SELECT's WHERE as the UPDATE's WHERE.
func ToUpdate(sel *ast.SelectStmt, set []*ast.UpdateExpr) (*ast.UpdateStmt, error) {
	tbl, err := mainTable(sel)
	if err != nil {
		return nil, err
	}
	return &ast.UpdateStmt{
		With:  sel.With,
		Table: tbl,
		Set:   set,
		Where: sel.Where,
	}, nil
}

// ToDelete converts a SELECT into a DELETE from its own FROM table,
// keeping the WHERE clause unchanged.
func ToDelete(sel *ast.SelectStmt) (*ast.DeleteStmt, error) {
	tbl, err := mainTable(sel)
	if err != nil {
		return nil, err
	}
	return &ast.DeleteStmt{
		With:  sel.With,
		Table: tbl,
		Where: sel.Where,
	}, nil
}

// ToMerge converts a SELECT that joins a target and a source table into a
// MERGE INTO target USING source ON on statement with the given WHEN
// clauses. The SELECT's own JoinExpr supplies Target/Source/On.
func ToMerge(sel *ast.SelectStmt, whens []*ast.MergeWhen) (*ast.MergeStmt, error) {
	join, ok := sel.From.(*ast.JoinExpr)
	if !ok {
		return nil, errs.ConversionError(map[string]any{"from": sel.From},
			"MERGE conversion requires a SELECT joining exactly two tables")
	}
	target, ok := join.Left.(*ast.AliasedTableExpr)
	if !ok {
		return nil, errs.ConversionError(nil, "MERGE target must be an aliased table reference")
	}
	return &ast.MergeStmt{
		With:   sel.With,
		Target: target,
		Source: join.Right,
		On:     join.On,
		Whens:  whens,
	}, nil
}

func withoutWith(sel *ast.SelectStmt) *ast.SelectStmt {
	if sel.With == nil {
		return sel
	}
	cp := cloneSelectShallow(sel)
	cp.With = nil
	return cp
}

// ValuesToUnionAll rewrites a multi-row INSERT ... VALUES into the
// equivalent SELECT ... UNION ALL SELECT ... chain, one SELECT per row,
// each column list aliased from ins.Columns when provided.
func ValuesToUnionAll(ins *ast.InsertStmt) (ast.Statement, error) {
	if len(ins.Values) == 0 {
		return nil, errs.ConversionError(nil, "INSERT has no VALUES rows to convert")
	}
	var result ast.Statement
	for _, row := range ins.Values {
		cols := make([]ast.SelectExpr, len(row))
		for i, v := range row {
			alias := ""
			if i < len(ins.Columns) {
				alias = ins.Columns[i].Name()
			}
			cols[i] = &ast.AliasedExpr{Expr: v, Alias: alias}
		}
		sel := &ast.SelectStmt{Columns: cols}
		if result == nil {
			result = sel
			continue
		}
		result = &ast.SetOp{Type: ast.Union, All: true, Left: result, Right: sel}
	}
	return result, nil
}

// UnionAllToValues collapses a chain of UNION ALL SELECTs (each projecting
// only literal/aliased-literal columns) back into a single multi-row
// INSERT ... VALUES targeting table. Any branch containing a non-literal
// expression fails the conversion.
func UnionAllToValues(stmt ast.Statement, table *ast.TableName) (*ast.InsertStmt, error) {
	branches, err := flattenUnionAll(stmt)
	if err != nil {
		return nil, err
	}
	var columns []*ast.ColName
	rows := make([][]ast.Expr, 0, len(branches))
	for bi, branch := range branches {
		row := make([]ast.Expr, 0, len(branch.Columns))
		for ci, se := range branch.Columns {
			ae, ok := se.(*ast.AliasedExpr)
			if !ok {
				return nil, errs.ConversionError(map[string]any{"branch": bi, "column": ci},
					"UNION ALL branch column is not a simple expression")
			}
			if _, ok := ae.Expr.(*ast.Literal); !ok {
				return nil, errs.ConversionError(map[string]any{"branch": bi, "column": ci},
					"UNION ALL branch column is not a literal value")
			}
			row = append(row, ae.Expr)
			if bi == 0 && ae.Alias != "" {
				columns = append(columns, &ast.ColName{Parts: []string{ae.Alias}})
			}
		}
		rows = append(rows, row)
	}
	return &ast.InsertStmt{
		Table:   table,
		Columns: columns,
		Values:  rows,
	}, nil
}

func flattenUnionAll(stmt ast.Statement) ([]*ast.SelectStmt, error) {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return []*ast.SelectStmt{s}, nil
	case *ast.SetOp:
		if s.Type != ast.Union || !s.All {
			return nil, errs.ConversionError(nil, "only UNION ALL chains convert to VALUES")
		}
		left, err := flattenUnionAll(s.Left)
		if err != nil {
			return nil, err
		}
		right, err := flattenUnionAll(s.Right)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	default:
		return nil, errs.ConversionError(nil, "unsupported statement shape for VALUES conversion")
	}
}
