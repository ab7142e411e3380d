package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCTEAtCursorReturnsName(t *testing.T) {
	sql := `WITH active AS (SELECT id FROM users WHERE status = 'active') SELECT * FROM active`
	sel := mustParseSelect(t, sql)

	cursor := posAt(sql, "status = 'active'")
	assert.Equal(t, "active", DetectCTEAtCursor(sel, cursor))
}

func TestDetectCTEAtCursorEmptyInMainQuery(t *testing.T) {
	sql := `WITH active AS (SELECT id FROM users) SELECT * FROM active WHERE id = 1`
	sel := mustParseSelect(t, sql)

	cursor := posAt(sql, "id = 1")
	assert.Equal(t, "", DetectCTEAtCursor(sel, cursor))
}

func TestGetCTERegionsReturnsAllInOrder(t *testing.T) {
	sql := `WITH a AS (SELECT 1), b AS (SELECT 2) SELECT * FROM a, b`
	sel := mustParseSelect(t, sql)

	regions := GetCTERegions(sel)
	require.Len(t, regions, 2)
	assert.Equal(t, "a", regions[0].Name)
	assert.Equal(t, "b", regions[1].Name)
}

func TestGetCTERegionsNilWithoutWith(t *testing.T) {
	sql := `SELECT id FROM users`
	sel := mustParseSelect(t, sql)

	assert.Nil(t, GetCTERegions(sel))
}

func TestSplitMultiQuerySplitsOnSemicolons(t *testing.T) {
	out := SplitMultiQuery(`SELECT 1; SELECT 2; SELECT 3`)
	require.Len(t, out, 3)
	assert.Contains(t, out[0], "SELECT 1")
	assert.Contains(t, out[2], "SELECT 3")
}

func TestSplitMultiQueryIgnoresSemicolonInsideStringLiteral(t *testing.T) {
	out := SplitMultiQuery(`SELECT 'a;b'; SELECT 2`)
	require.Len(t, out, 2)
	assert.Contains(t, out[0], "'a;b'")
}

func TestSplitMultiQueryIgnoresSemicolonInLineComment(t *testing.T) {
	out := SplitMultiQuery("SELECT 1; -- comment; still comment\nSELECT 2")
	require.Len(t, out, 2)
}

func TestSplitMultiQueryIgnoresSemicolonInBlockComment(t *testing.T) {
	out := SplitMultiQuery(`SELECT 1; /* comment; still comment */ SELECT 2`)
	require.Len(t, out, 2)
}

func TestSplitMultiQueryDropsTrailingEmptySegment(t *testing.T) {
	out := SplitMultiQuery(`SELECT 1;`)
	require.Len(t, out, 1)
}

func TestSplitMultiQueryHandlesEscapedQuote(t *testing.T) {
	out := SplitMultiQuery(`SELECT 'it''s; fine'; SELECT 2`)
	require.Len(t, out, 2)
	assert.Contains(t, out[0], "it''s; fine")
}
