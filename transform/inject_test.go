package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/errs"
	"github.com/relquery/relquery/format"
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

func TestInjectFilterAddsWhereClause(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users`)

	out, err := Inject(sel, InjectOptions{
		Filter: &FilterCondition{Op: FilterEq, Column: "status", Value: "active"},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Where)

	result := format.Render(out, format.DefaultOptions)
	assert.Contains(t, result.SQL, "status")
	assert.Contains(t, result.SQL, ":status")
	assert.NotContains(t, result.SQL, "active")

	require.Len(t, result.Params, 1)
	assert.Equal(t, "status", result.Params[0].Name)
	assert.Equal(t, "active", result.Params[0].Value)
}

func TestInjectFilterCombinesWithExistingWhere(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users WHERE age > 18`)

	out, err := Inject(sel, InjectOptions{
		Filter: &FilterCondition{Op: FilterEq, Column: "status", Value: "active"},
	})
	require.NoError(t, err)

	bin, ok := out.Where.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, sel.Where, bin.Left)
}

func TestInjectPaginationEmitsLimitAndOffset(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users`)

	out, err := Inject(sel, InjectOptions{Paging: &Paging{Page: 3, PageSize: 20}})
	require.NoError(t, err)
	require.NotNil(t, out.Limit)
	assert.NotNil(t, out.Limit.Count)
	assert.NotNil(t, out.Limit.Offset)

	result := format.Render(out, format.DefaultOptions)
	assert.Contains(t, result.SQL, ":paging_limit")
	assert.Contains(t, result.SQL, ":paging_offset")

	byName := map[string]any{}
	for _, p := range result.Params {
		byName[p.Name] = p.Value
	}
	assert.Equal(t, 20, byName["paging_limit"])
	assert.Equal(t, 40, byName["paging_offset"]) // (page-1)*pageSize = (3-1)*20
}

func TestInjectPaginationFailsOnExistingLimit(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users LIMIT 10`)

	_, err := Inject(sel, InjectOptions{Paging: &Paging{Page: 1, PageSize: 20}})
	require.Error(t, err)
	assert.Equal(t, errs.KindInjection, errs.GetKind(err))
	assert.Equal(t, errs.ReasonExistingLimit, errs.GetReason(err))
}

func TestInjectPaginationRejectsPageOutOfRange(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users`)

	_, err := Inject(sel, InjectOptions{Paging: &Paging{Page: 0, PageSize: 20}})
	require.Error(t, err)
	assert.Equal(t, errs.ReasonPageOutOfRange, errs.GetReason(err))

	_, err = Inject(sel, InjectOptions{Paging: &Paging{Page: 1, PageSize: 1001}})
	require.Error(t, err)
	assert.Equal(t, errs.ReasonPageOutOfRange, errs.GetReason(err))
}

func TestInjectSortAppendsOrderBy(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users ORDER BY id`)

	out, err := Inject(sel, InjectOptions{Sort: []SortKey{{Column: "name", Desc: true, NullsLast: true}}})
	require.NoError(t, err)
	require.Len(t, out.OrderBy, 2)
	assert.True(t, out.OrderBy[1].Desc)
	require.NotNil(t, out.OrderBy[1].NullsFirst)
	assert.False(t, *out.OrderBy[1].NullsFirst)
}

func TestInjectPipelineOrderFilterBeforePaginate(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users`)

	out, err := Inject(sel, InjectOptions{
		Filter: &FilterCondition{Op: FilterEq, Column: "status", Value: "active"},
		Paging: &Paging{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.NotNil(t, out.Where)
	assert.NotNil(t, out.Limit)
}

func TestInjectUpstreamPushDownTargetsCTE(t *testing.T) {
	sel := mustParseSelect(t, `
		WITH active_users AS (SELECT id, status FROM users)
		SELECT id FROM active_users`)

	out, err := Inject(sel, InjectOptions{
		Filter: &FilterCondition{Op: FilterEq, Column: "status", Value: "active"},
	})
	require.NoError(t, err)
	assert.Nil(t, out.Where)
	require.NotNil(t, out.With)
	cteBody := out.With.CTEs[0].Query.(*ast.SelectStmt)
	assert.NotNil(t, cteBody.Where)

	// sel itself, including its CTE body, must be untouched.
	origBody := sel.With.CTEs[0].Query.(*ast.SelectStmt)
	assert.Nil(t, origBody.Where)
	assert.NotSame(t, origBody, cteBody)
}

func TestInjectUnsupportedOperatorErrors(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users`)

	_, err := Inject(sel, InjectOptions{
		Filter: &FilterCondition{Op: "bogus", Column: "id"},
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindInjection, errs.GetKind(err))
}

func TestInjectSerializeBuildsJSONObject(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id, name FROM users`)

	out, err := Inject(sel, InjectOptions{
		Serialize: &SerializeSpec{Root: &Entity{
			Alias:   "user",
			Columns: map[string]string{"id": "id", "name": "name"},
		}},
	})
	require.NoError(t, err)
	require.Len(t, out.Columns, 1)

	sql := format.String(out)
	assert.Contains(t, sql, "json_build_object")
}
