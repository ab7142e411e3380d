package transform

import (
	"fmt"
	"sort"

	"github.com/relquery/relquery/ast"
)

// GeneralizeDDL strips dialect-specific decoration from a CREATE TABLE
// statement (storage/table options, column charset/collation, and the
// UNSIGNED flag) so the remaining shape compares equal across dialects
// that spell the same table differently. stmt itself is not mutated.
func GeneralizeDDL(stmt *ast.CreateTableStmt) *ast.CreateTableStmt {
	cp := *stmt
	cp.Options = nil
	cp.Columns = make([]*ast.ColumnDef, len(stmt.Columns))
	for i, col := range stmt.Columns {
		colCp := *col
		if col.Type != nil {
			typeCp := *col.Type
			typeCp.Charset = ""
			typeCp.Collation = ""
			typeCp.Unsigned = false
			colCp.Type = &typeCp
		}
		cp.Columns[i] = &colCp
	}
	return &cp
}

// DDLDiff is a single structural difference between two CREATE TABLE
// statements, expressed as an AlterTableAction that would transform From
// into To.
type DDLDiff struct {
	Action      ast.AlterTableAction
	Description string
}

// DiffDDL compares two (ideally GeneralizeDDL'd) CREATE TABLE statements
// and returns the column-level additions, removals, and the table rename
// needed to turn from into to. Constraint and option diffing is left to
// the caller; this reports structural column drift only.
func DiffDDL(from, to *ast.CreateTableStmt) []DDLDiff {
	var diffs []DDLDiff

	if from.Table.Name() != to.Table.Name() {
		diffs = append(diffs, DDLDiff{
			Action:      &ast.RenameTable{NewName: to.Table},
			Description: fmt.Sprintf("rename table %s to %s", from.Table.Name(), to.Table.Name()),
		})
	}

	fromCols := columnsByName(from.Columns)
	toCols := columnsByName(to.Columns)

	var added, removed []string
	for name := range toCols {
		if _, ok := fromCols[name]; !ok {
			added = append(added, name)
		}
	}
	for name := range fromCols {
		if _, ok := toCols[name]; !ok {
			removed = append(removed, name)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)

	for _, name := range added {
		diffs = append(diffs, DDLDiff{
			Action:      &ast.AddColumn{Column: toCols[name]},
			Description: fmt.Sprintf("add column %s", name),
		})
	}
	for _, name := range removed {
		diffs = append(diffs, DDLDiff{
			Action:      &ast.DropColumn{Name: name},
			Description: fmt.Sprintf("drop column %s", name),
		})
	}
	for _, name := range sortedCommon(fromCols, toCols) {
		if !sameType(fromCols[name].Type, toCols[name].Type) {
			newDef := toCols[name]
			diffs = append(diffs, DDLDiff{
				Action:      &ast.ModifyColumn{Name: name, NewDef: newDef},
				Description: fmt.Sprintf("modify column %s", name),
			})
		}
	}

	return diffs
}

func columnsByName(cols []*ast.ColumnDef) map[string]*ast.ColumnDef {
	out := make(map[string]*ast.ColumnDef, len(cols))
	for _, c := range cols {
		out[c.Name] = c
	}
	return out
}

func sortedCommon(a, b map[string]*ast.ColumnDef) []string {
	var out []string
	for name := range a {
		if _, ok := b[name]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func sameType(a, b *ast.DataType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name &&
		intPtrEqual(a.Length, b.Length) &&
		intPtrEqual(a.Precision, b.Precision) &&
		intPtrEqual(a.Scale, b.Scale) &&
		a.Array == b.Array
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
