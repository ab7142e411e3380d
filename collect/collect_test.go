package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/errs"
	"github.com/relquery/relquery/parser"
)

func mustParseSelect(t *testing.T, sql string) *ast.SelectStmt {
	t.Helper()
	p := parser.New(sql)
	stmt, err := p.Parse()
	require.NoError(t, err)
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok, "expected *ast.SelectStmt, got %T", stmt)
	return sel
}

func TestCTEsFindsAllDefinitions(t *testing.T) {
	sel := mustParseSelect(t, `
		WITH a AS (SELECT 1),
		     b AS (SELECT * FROM a)
		SELECT * FROM b`)

	ctes := CTEs(sel)
	names := make([]string, len(ctes))
	for i, c := range ctes {
		names[i] = c.Name
	}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestColumnsNamesAliasesAndBareColumns(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id, name AS n, 1 + 1 AS total FROM users`)

	cols, err := Columns(sel, nil)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, "id", cols[0].Name)
	assert.Equal(t, "n", cols[1].Name)
	assert.Equal(t, "total", cols[2].Name)
}

func TestColumnsWildcardWithoutResolverIsOpaque(t *testing.T) {
	sel := mustParseSelect(t, `SELECT * FROM users`)

	cols, err := Columns(sel, nil)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.True(t, cols[0].Wildcard)
}

func TestColumnsWildcardEmptyResolverFails(t *testing.T) {
	sel := mustParseSelect(t, `SELECT * FROM users`)

	_, err := Columns(sel, func(table string) ([]string, error) {
		return nil, nil
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindResolve, errs.GetKind(err))
	assert.Equal(t, errs.ReasonEmptyWildcard, errs.GetReason(err))
}

func TestColumnsWildcardResolved(t *testing.T) {
	sel := mustParseSelect(t, `SELECT * FROM users`)

	cols, err := Columns(sel, func(table string) ([]string, error) {
		return []string{"id", "name"}, nil
	})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].Name)
	assert.Equal(t, "name", cols[1].Name)
}

func TestColumnRefsFindsAllOccurrences(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users WHERE id > 1 AND id < 10`)

	refs := ColumnRefs(sel)
	assert.Len(t, refs, 3)
}

func TestParametersDeduplicatesNamedParams(t *testing.T) {
	sel := mustParseSelect(t, `SELECT * FROM users WHERE id = :id OR parent_id = :id`)

	params := Parameters(sel)
	require.Len(t, params, 1)
	assert.Equal(t, "id", params[0].Name)
}

func TestFilterableItemsUnionsColumnsAndParameters(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id, name FROM users WHERE id = :id`)

	items, err := FilterableItems(sel, nil)
	require.NoError(t, err)

	var kinds []string
	for _, it := range items {
		kinds = append(kinds, it.Kind)
	}
	assert.Contains(t, kinds, "column")
	assert.Contains(t, kinds, "parameter")
}

func TestAnalyzeCTEDependenciesOrdersByDependency(t *testing.T) {
	sel := mustParseSelect(t, `
		WITH a AS (SELECT 1 AS x),
		     b AS (SELECT x FROM a)
		SELECT * FROM b`)

	graph, err := AnalyzeCTEDependencies(sel)
	require.NoError(t, err)

	order := graph.TopoOrder()
	aIdx, bIdx := indexOf(order, "a"), indexOf(order, "b")
	require.NotEqual(t, -1, aIdx)
	require.NotEqual(t, -1, bIdx)
	assert.Less(t, aIdx, bIdx)
}

func TestAnalyzeCTEDependenciesDetectsCycle(t *testing.T) {
	sel := mustParseSelect(t, `
		WITH a AS (SELECT * FROM b),
		     b AS (SELECT * FROM a)
		SELECT * FROM a`)

	_, err := AnalyzeCTEDependencies(sel)
	require.Error(t, err)
	assert.Equal(t, errs.KindCycle, errs.GetKind(err))
}

func TestAnalyzeCTEDependenciesExcludesRecursiveSelfEdge(t *testing.T) {
	sel := mustParseSelect(t, `
		WITH RECURSIVE counter AS (
			SELECT 1 AS n
			UNION ALL
			SELECT n + 1 FROM counter WHERE n < 10
		)
		SELECT * FROM counter`)

	_, err := AnalyzeCTEDependencies(sel)
	assert.NoError(t, err)
}

func indexOf(xs []string, target string) int {
	for i, x := range xs {
		if x == target {
			return i
		}
	}
	return -1
}
