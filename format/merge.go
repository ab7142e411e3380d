package format

import "github.com/relquery/relquery/ast"

func (f *Formatter) formatMerge(s *ast.MergeStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
	}
	f.writeKeyword("MERGE INTO")
	f.write(" ")
	f.Format(s.Target)
	f.write(" ")
	f.writeKeyword("USING")
	f.write(" ")
	f.Format(s.Source)
	f.write(" ")
	f.writeKeyword("ON")
	f.write(" ")
	f.Format(s.On)

	for _, when := range s.Whens {
		f.write(" ")
		f.writeKeyword("WHEN")
		f.write(" ")
		if !when.Matched {
			f.writeKeyword("NOT")
			f.write(" ")
		}
		f.writeKeyword("MATCHED")
		if when.Condition != nil {
			f.write(" ")
			f.writeKeyword("AND")
			f.write(" ")
			f.Format(when.Condition)
		}
		f.write(" ")
		f.writeKeyword("THEN")
		f.write(" ")
		f.formatMergeAction(when.Action)
	}
}

func (f *Formatter) formatMergeAction(action ast.MergeAction) {
	switch a := action.(type) {
	case *ast.MergeUpdate:
		f.writeKeyword("UPDATE SET")
		f.write(" ")
		for i, set := range a.Set {
			if i > 0 {
				f.write(", ")
			}
			f.Format(set.Column)
			f.write(" = ")
			f.Format(set.Expr)
		}
	case *ast.MergeDelete:
		f.writeKeyword("DELETE")
	case *ast.MergeInsert:
		f.writeKeyword("INSERT")
		if len(a.Columns) == 0 && len(a.Values) == 0 {
			f.write(" ")
			f.writeKeyword("DEFAULT VALUES")
			return
		}
		if len(a.Columns) > 0 {
			f.write(" (")
			for i, c := range a.Columns {
				if i > 0 {
					f.write(", ")
				}
				f.Format(c)
			}
			f.write(")")
		}
		f.write(" ")
		f.writeKeyword("VALUES")
		f.write(" (")
		for i, v := range a.Values {
			if i > 0 {
				f.write(", ")
			}
			f.Format(v)
		}
		f.write(")")
	case *ast.MergeDoNothing:
		f.writeKeyword("DO NOTHING")
	}
}

func (f *Formatter) formatVacuum(s *ast.VacuumStmt) {
	f.writeKeyword("VACUUM")
	if s.Full || s.Verbose || s.Analyze {
		f.write(" ")
		first := true
		writeOpt := func(name string) {
			if !first {
				f.write(" ")
			}
			f.writeKeyword(name)
			first = false
		}
		if s.Full {
			writeOpt("FULL")
		}
		if s.Verbose {
			writeOpt("VERBOSE")
		}
		if s.Analyze {
			writeOpt("ANALYZE")
		}
	}
	if s.Table != nil {
		f.write(" ")
		f.Format(s.Table)
		if len(s.Columns) > 0 {
			f.write(" (")
			for i, c := range s.Columns {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(c)
			}
			f.write(")")
		}
	}
}

func (f *Formatter) formatReindex(s *ast.ReindexStmt) {
	f.writeKeyword("REINDEX")
	f.write(" ")
	switch s.Target {
	case ast.ReindexIndex:
		f.writeKeyword("INDEX")
	case ast.ReindexTable:
		f.writeKeyword("TABLE")
	case ast.ReindexDatabase:
		f.writeKeyword("DATABASE")
	case ast.ReindexSystem:
		f.writeKeyword("SYSTEM")
	}
	if s.Concurrently {
		f.write(" ")
		f.writeKeyword("CONCURRENTLY")
	}
	f.write(" ")
	f.writeIdent(s.Name)
}

func (f *Formatter) formatAnalyzeStmt(s *ast.AnalyzeStmt) {
	f.writeKeyword("ANALYZE")
	if s.Table != nil {
		f.write(" ")
		f.Format(s.Table)
		if len(s.Columns) > 0 {
			f.write(" (")
			for i, c := range s.Columns {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(c)
			}
			f.write(")")
		}
	}
}
