package parser

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/token"
)

// parseMerge handles MERGE INTO target USING source ON cond
// WHEN [NOT] MATCHED [AND cond] THEN { UPDATE SET ... | DELETE | INSERT ... | DO NOTHING } ...
func (p *Parser) parseMerge() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume MERGE

	if p.curIs(token.INTO) {
		p.advance()
	}

	stmt := &ast.MergeStmt{StartPos: pos}

	targetTable := p.parseTableName()
	target := &ast.AliasedTableExpr{Expr: targetTable}
	if p.curIs(token.AS) {
		p.advance()
	}
	if p.curIsIdent() && !p.curIsKeyword(token.USING, token.ON) {
		target.Alias = p.curIdentValue()
		p.advance()
	}
	stmt.Target = target

	if !p.expect(token.USING) {
		return nil
	}
	stmt.Source = p.parseTableExpr()

	if !p.expect(token.ON) {
		return nil
	}
	stmt.On = p.parseExpr()

	for p.curIs(token.WHEN) {
		when := p.parseMergeWhen()
		if when == nil {
			break
		}
		stmt.Whens = append(stmt.Whens, when)
	}

	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseMergeWhen() *ast.MergeWhen {
	p.advance() // consume WHEN

	when := &ast.MergeWhen{Matched: true}
	if p.curIs(token.NOT) {
		p.advance()
		when.Matched = false
	}
	if !p.expect(token.MATCHED) {
		return nil
	}
	if p.curIs(token.BY) {
		p.advance()
		// BY SOURCE / BY TARGET (SQL Server)
		if p.curIsIdent() {
			when.BySource = p.curIdentValue() == "source" || p.curIdentValue() == "SOURCE"
			p.advance()
		}
	}
	if p.curIs(token.AND) {
		p.advance()
		when.Condition = p.parseExpr()
	}

	if !p.expect(token.THEN) {
		return nil
	}

	switch p.cur.Type {
	case token.UPDATE:
		p.advance()
		p.expect(token.SET)
		when.Action = &ast.MergeUpdate{Set: p.parseUpdateExprList()}
	case token.DELETE:
		p.advance()
		when.Action = &ast.MergeDelete{}
	case token.INSERT:
		p.advance()
		ins := &ast.MergeInsert{}
		if p.curIs(token.LPAREN) {
			for _, name := range p.parseColumnNameList() {
				ins.Columns = append(ins.Columns, &ast.ColName{Parts: []string{name}})
			}
		}
		if p.curIs(token.VALUES) {
			p.advance()
			p.expect(token.LPAREN)
			for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
				ins.Values = append(ins.Values, p.parseExpr())
				if !p.curIs(token.COMMA) {
					break
				}
				p.advance()
			}
			p.expect(token.RPAREN)
		} else if p.curIs(token.DEFAULT) {
			p.advance()
			p.expect(token.VALUES)
		}
		when.Action = ins
	case token.DO:
		p.advance()
		p.expect(token.NOTHING)
		when.Action = &ast.MergeDoNothing{}
	default:
		p.errorf("expected UPDATE, DELETE, INSERT, or DO NOTHING after THEN")
		return nil
	}

	return when
}

// parseUpdateExprList parses the comma-separated SET list of
// MERGE ... WHEN MATCHED THEN UPDATE SET.
func (p *Parser) parseUpdateExprList() []*ast.UpdateExpr {
	var sets []*ast.UpdateExpr
	for {
		if !p.curIsIdent() {
			break
		}
		col := &ast.ColName{Parts: []string{p.curIdentValue()}}
		p.advance()
		if !p.expect(token.EQ) {
			break
		}
		sets = append(sets, &ast.UpdateExpr{Column: col, Expr: p.parseExpr()})
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	return sets
}

// parseVacuum handles VACUUM [FULL] [VERBOSE] [ANALYZE] [table [(col, ...)]].
func (p *Parser) parseVacuum() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume VACUUM

	stmt := &ast.VacuumStmt{StartPos: pos}

	if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			switch p.cur.Type {
			case token.FULL:
				stmt.Full = true
			case token.VERBOSE:
				stmt.Verbose = true
			case token.ANALYZE:
				stmt.Analyze = true
			}
			p.advance()
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RPAREN)
	} else {
		for {
			switch p.cur.Type {
			case token.FULL:
				stmt.Full = true
				p.advance()
				continue
			case token.VERBOSE:
				stmt.Verbose = true
				p.advance()
				continue
			case token.ANALYZE:
				stmt.Analyze = true
				p.advance()
				continue
			}
			break
		}
	}

	if p.curIsIdent() {
		stmt.Table = p.parseTableName()
		if p.curIs(token.LPAREN) {
			stmt.Columns = p.parseColumnNameList()
		}
	}

	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseReindex handles REINDEX {INDEX|TABLE|DATABASE|SYSTEM} [CONCURRENTLY] name.
func (p *Parser) parseReindex() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume REINDEX

	stmt := &ast.ReindexStmt{StartPos: pos}

	switch p.cur.Type {
	case token.INDEX:
		stmt.Target = ast.ReindexIndex
		p.advance()
	case token.TABLE:
		stmt.Target = ast.ReindexTable
		p.advance()
	case token.DATABASE:
		stmt.Target = ast.ReindexDatabase
		p.advance()
	case token.SYSTEM:
		stmt.Target = ast.ReindexSystem
		p.advance()
	default:
		p.errorf("expected INDEX, TABLE, DATABASE, or SYSTEM after REINDEX")
		return nil
	}

	if p.curIs(token.CONCURRENTLY) {
		stmt.Concurrently = true
		p.advance()
	}

	if p.curIsIdent() {
		stmt.Name = p.curIdentValue()
		p.advance()
	}

	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseAnalyzeStmt handles the standalone ANALYZE [table [(col, ...)]] form,
// distinct from the ANALYZE modifier on EXPLAIN (parseStatement sends
// ANALYZE to parseExplain instead only when the next token is "(").
func (p *Parser) parseAnalyzeStmt() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume ANALYZE

	stmt := &ast.AnalyzeStmt{StartPos: pos}

	if p.curIsIdent() {
		stmt.Table = p.parseTableName()
		if p.curIs(token.LPAREN) {
			stmt.Columns = p.parseColumnNameList()
		}
	}

	stmt.EndPos = p.cur.Pos
	return stmt
}
