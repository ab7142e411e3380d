package ast

import "github.com/relquery/relquery/token"

// MergeStmt represents a MERGE INTO statement with one or more WHEN
// clauses, evaluated in order against the join of Target and Source on
// On.
type MergeStmt struct {
	CommentInfo comments
	StartPos    token.Pos
	EndPos      token.Pos
	With        *WithClause
	Target      *AliasedTableExpr
	Source      TableExpr
	On          Expr
	Whens       []*MergeWhen
}

func (*MergeStmt) statementNode()   {}
func (m *MergeStmt) Pos() token.Pos { return m.StartPos }
func (m *MergeStmt) End() token.Pos { return m.EndPos }

func (m *MergeStmt) HeaderComments() []Comment { return m.CommentInfo.HeaderComments() }
func (m *MergeStmt) Before() []Comment         { return m.CommentInfo.Before() }
func (m *MergeStmt) After() []Comment          { return m.CommentInfo.After() }

// MergeWhen represents a single WHEN [NOT] MATCHED [AND cond] THEN clause.
type MergeWhen struct {
	Matched   bool // false for WHEN NOT MATCHED
	BySource  bool // SQL Server "WHEN NOT MATCHED BY SOURCE"
	Condition Expr // optional AND <condition>
	Action    MergeAction
}

// MergeAction is the THEN side of a MergeWhen clause.
type MergeAction interface {
	mergeAction()
}

// MergeUpdate represents THEN UPDATE SET ...
type MergeUpdate struct {
	Set []*UpdateExpr
}

func (*MergeUpdate) mergeAction() {}

// MergeDelete represents THEN DELETE.
type MergeDelete struct{}

func (*MergeDelete) mergeAction() {}

// MergeInsert represents THEN INSERT (cols) VALUES (exprs), or the
// DEFAULT VALUES form when Columns and Values are both empty.
type MergeInsert struct {
	Columns []*ColName
	Values  []Expr
}

func (*MergeInsert) mergeAction() {}

// MergeDoNothing represents THEN DO NOTHING.
type MergeDoNothing struct{}

func (*MergeDoNothing) mergeAction() {}

// VacuumStmt represents VACUUM [FULL] [VERBOSE] [ANALYZE] [table].
type VacuumStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Full     bool
	Verbose  bool
	Analyze  bool
	Table    *TableName // optional
	Columns  []string   // optional column list when Table is set
}

func (*VacuumStmt) statementNode()   {}
func (v *VacuumStmt) Pos() token.Pos { return v.StartPos }
func (v *VacuumStmt) End() token.Pos { return v.EndPos }

// ReindexTargetType identifies what REINDEX operates on.
type ReindexTargetType int

const (
	ReindexIndex ReindexTargetType = iota
	ReindexTable
	ReindexDatabase
	ReindexSystem
)

// ReindexStmt represents REINDEX {INDEX|TABLE|DATABASE|SYSTEM} name.
type ReindexStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Target   ReindexTargetType
	Name     string
	Concurrently bool
}

func (*ReindexStmt) statementNode()   {}
func (r *ReindexStmt) Pos() token.Pos { return r.StartPos }
func (r *ReindexStmt) End() token.Pos { return r.EndPos }

// AnalyzeStmt represents a standalone ANALYZE [table [(col, ...)]]
// statement (as distinct from the ANALYZE option on EXPLAIN).
type AnalyzeStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    *TableName // optional
	Columns  []string
}

func (*AnalyzeStmt) statementNode()   {}
func (a *AnalyzeStmt) Pos() token.Pos { return a.StartPos }
func (a *AnalyzeStmt) End() token.Pos { return a.EndPos }

// SequenceOption carries a CREATE/ALTER SEQUENCE option as a loose
// name/value pair; sequence DDL is not deeply modeled per SPEC_FULL §4.2.
type SequenceOption struct {
	Name  string
	Value string
}
