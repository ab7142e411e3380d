package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relquery/relquery/ast"
)

func TestSerializeNestsChildEntities(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id, name FROM users`)

	spec := &SerializeSpec{
		Root: &Entity{
			Alias:   "user",
			Columns: map[string]string{"id": "id", "name": "name"},
			Children: map[string]*Entity{
				"orders": {
					Alias:   "orders",
					Many:    true,
					Columns: map[string]string{"id": "order_id"},
				},
			},
		},
	}

	out, err := serialize(sel, spec)
	require.NoError(t, err)
	require.Len(t, out.Columns, 1)

	ae, ok := out.Columns[0].(*ast.AliasedExpr)
	require.True(t, ok)
	assert.Equal(t, "user", ae.Alias)

	fn, ok := ae.Expr.(*ast.FuncExpr)
	require.True(t, ok)
	assert.Equal(t, "json_build_object", fn.Name)
}

func TestSerializeNoSpecIsNoop(t *testing.T) {
	sel := mustParseSelect(t, `SELECT id FROM users`)

	out, err := serialize(sel, nil)
	require.NoError(t, err)
	assert.Equal(t, sel, out)
}

func TestEntityExprWrapsManyInJSONAgg(t *testing.T) {
	e := &Entity{Alias: "orders", Many: true, Columns: map[string]string{"id": "order_id"}}

	expr := entityExpr(e)
	fn, ok := expr.(*ast.FuncExpr)
	require.True(t, ok)
	assert.Equal(t, "json_agg", fn.Name)
	require.Len(t, fn.Args, 1)

	inner, ok := fn.Args[0].(*ast.FuncExpr)
	require.True(t, ok)
	assert.Equal(t, "json_build_object", inner.Name)
}
