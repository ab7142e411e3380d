package rename

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/token"
)

// DetectCTEAtCursor returns the name of the CTE whose body spans cursor,
// or "" if cursor falls outside every CTE body (e.g. in the main query).
func DetectCTEAtCursor(root ast.Node, cursor token.Pos) string {
	scope := DetectScope(root, cursor)
	if scope.Kind == ScopeCTE {
		return scope.Name
	}
	return ""
}

// CTERegion is the named byte span of one CTE body.
type CTERegion struct {
	Name  string
	Start token.Pos
	End   token.Pos
}

// GetCTERegions returns the byte span of every CTE body in root, in
// definition order.
func GetCTERegions(root ast.Node) []CTERegion {
	sel, ok := root.(*ast.SelectStmt)
	if !ok || sel.With == nil {
		return nil
	}
	out := make([]CTERegion, 0, len(sel.With.CTEs))
	for _, cte := range sel.With.CTEs {
		out = append(out, CTERegion{Name: cte.Name, Start: cte.Query.Pos(), End: cte.Query.End()})
	}
	return out
}

// SplitMultiQuery splits a semicolon-delimited SQL string into its
// individual statement source texts, respecting single-quoted strings,
// double-quoted identifiers, and line/block comments so a semicolon
// inside any of those is not treated as a separator. The trailing empty
// segment after a final semicolon is dropped.
func SplitMultiQuery(sql string) []string {
	var out []string
	var cur []byte
	inSingle, inDouble, inLineComment, inBlockComment := false, false, false, false

	runes := []byte(sql)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inLineComment:
			cur = append(cur, c)
			if c == '\n' {
				inLineComment = false
			}
			continue
		case inBlockComment:
			cur = append(cur, c)
			if c == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				cur = append(cur, '/')
				i++
				inBlockComment = false
			}
			continue
		case inSingle:
			cur = append(cur, c)
			if c == '\'' {
				if i+1 < len(runes) && runes[i+1] == '\'' {
					cur = append(cur, '\'')
					i++
				} else {
					inSingle = false
				}
			}
			continue
		case inDouble:
			cur = append(cur, c)
			if c == '"' {
				inDouble = false
			}
			continue
		}

		switch c {
		case '\'':
			inSingle = true
			cur = append(cur, c)
		case '"':
			inDouble = true
			cur = append(cur, c)
		case '-':
			if i+1 < len(runes) && runes[i+1] == '-' {
				inLineComment = true
			}
			cur = append(cur, c)
		case '/':
			if i+1 < len(runes) && runes[i+1] == '*' {
				inBlockComment = true
			}
			cur = append(cur, c)
		case ';':
			out = append(out, string(cur))
			cur = cur[:0]
		default:
			cur = append(cur, c)
		}
	}

	if len(trimSpace(cur)) > 0 {
		out = append(out, string(cur))
	}
	return out
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
