package ast

import "reflect"

// Kind tags every concrete AST component with a stable, comparable
// identity so visitors and collectors can dispatch without runtime
// down-casting at every call site. Kind values are registered once at
// package init and never change across a process lifetime.
type Kind int

const (
	KindInvalid Kind = iota

	KindSelectStmt
	KindInsertStmt
	KindUpdateStmt
	KindDeleteStmt
	KindMergeStmt
	KindValuesStmt
	KindCreateTableStmt
	KindAlterTableStmt
	KindDropTableStmt
	KindCreateIndexStmt
	KindDropIndexStmt
	KindTruncateStmt
	KindExplainStmt
	KindVacuumStmt
	KindReindexStmt
	KindAnalyzeStmt

	KindColName
	KindLiteral
	KindBinaryExpr
	KindUnaryExpr
	KindParenExpr
	KindFuncExpr
	KindCastExpr
	KindCaseExpr
	KindInExpr
	KindBetweenExpr
	KindLikeExpr
	KindIsExpr
	KindSubquery
	KindExistsExpr
	KindParam
	KindArrayExpr
	KindSubscriptExpr
	KindIntervalExpr
	KindExtractExpr
	KindTrimExpr
	KindSubstringExpr
	KindPositionExpr
	KindCollateExpr

	KindTableName
	KindAliasedTableExpr
	KindJoinExpr
	KindParenTableExpr
	KindOrderByExpr
	KindLimit
	KindAliasedExpr
	KindStarExpr
	KindWindowSpec
	KindWindowDef
	KindTableList
	KindWithClause
	KindCTE
)

var kindNames = map[Kind]string{
	KindInvalid:          "invalid",
	KindSelectStmt:       "select_stmt",
	KindInsertStmt:       "insert_stmt",
	KindUpdateStmt:       "update_stmt",
	KindDeleteStmt:       "delete_stmt",
	KindMergeStmt:        "merge_stmt",
	KindValuesStmt:       "values_stmt",
	KindCreateTableStmt:  "create_table_stmt",
	KindAlterTableStmt:   "alter_table_stmt",
	KindDropTableStmt:    "drop_table_stmt",
	KindCreateIndexStmt:  "create_index_stmt",
	KindDropIndexStmt:    "drop_index_stmt",
	KindTruncateStmt:     "truncate_stmt",
	KindExplainStmt:      "explain_stmt",
	KindVacuumStmt:       "vacuum_stmt",
	KindReindexStmt:      "reindex_stmt",
	KindAnalyzeStmt:      "analyze_stmt",
	KindColName:          "col_name",
	KindLiteral:          "literal",
	KindBinaryExpr:       "binary_expr",
	KindUnaryExpr:        "unary_expr",
	KindParenExpr:        "paren_expr",
	KindFuncExpr:         "func_expr",
	KindCastExpr:         "cast_expr",
	KindCaseExpr:         "case_expr",
	KindInExpr:           "in_expr",
	KindBetweenExpr:      "between_expr",
	KindLikeExpr:         "like_expr",
	KindIsExpr:           "is_expr",
	KindSubquery:         "subquery",
	KindExistsExpr:       "exists_expr",
	KindParam:            "param",
	KindArrayExpr:        "array_expr",
	KindSubscriptExpr:    "subscript_expr",
	KindIntervalExpr:     "interval_expr",
	KindExtractExpr:      "extract_expr",
	KindTrimExpr:         "trim_expr",
	KindSubstringExpr:    "substring_expr",
	KindPositionExpr:     "position_expr",
	KindCollateExpr:      "collate_expr",
	KindTableName:        "table_name",
	KindAliasedTableExpr: "aliased_table_expr",
	KindJoinExpr:         "join_expr",
	KindParenTableExpr:   "paren_table_expr",
	KindOrderByExpr:      "order_by_expr",
	KindLimit:            "limit",
	KindAliasedExpr:      "aliased_expr",
	KindStarExpr:         "star_expr",
	KindWindowSpec:       "window_spec",
	KindWindowDef:        "window_def",
	KindTableList:        "table_list",
	KindWithClause:       "with_clause",
	KindCTE:              "cte",
}

// String returns the registered name of k, or "unknown" if k was never
// registered.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var kindByType = map[reflect.Type]Kind{}

func register(k Kind, zero Node) {
	t := reflect.TypeOf(zero)
	kindByType[t] = k
}

func init() {
	register(KindSelectStmt, &SelectStmt{})
	register(KindInsertStmt, &InsertStmt{})
	register(KindUpdateStmt, &UpdateStmt{})
	register(KindDeleteStmt, &DeleteStmt{})
	register(KindMergeStmt, &MergeStmt{})
	register(KindValuesStmt, &ValuesStmt{})
	register(KindCreateTableStmt, &CreateTableStmt{})
	register(KindAlterTableStmt, &AlterTableStmt{})
	register(KindDropTableStmt, &DropTableStmt{})
	register(KindCreateIndexStmt, &CreateIndexStmt{})
	register(KindDropIndexStmt, &DropIndexStmt{})
	register(KindTruncateStmt, &TruncateStmt{})
	register(KindExplainStmt, &ExplainStmt{})
	register(KindVacuumStmt, &VacuumStmt{})
	register(KindReindexStmt, &ReindexStmt{})
	register(KindAnalyzeStmt, &AnalyzeStmt{})

	register(KindColName, &ColName{})
	register(KindLiteral, &Literal{})
	register(KindBinaryExpr, &BinaryExpr{})
	register(KindUnaryExpr, &UnaryExpr{})
	register(KindParenExpr, &ParenExpr{})
	register(KindFuncExpr, &FuncExpr{})
	register(KindCastExpr, &CastExpr{})
	register(KindCaseExpr, &CaseExpr{})
	register(KindInExpr, &InExpr{})
	register(KindBetweenExpr, &BetweenExpr{})
	register(KindLikeExpr, &LikeExpr{})
	register(KindIsExpr, &IsExpr{})
	register(KindSubquery, &Subquery{})
	register(KindExistsExpr, &ExistsExpr{})
	register(KindParam, &Param{})
	register(KindArrayExpr, &ArrayExpr{})
	register(KindSubscriptExpr, &SubscriptExpr{})
	register(KindIntervalExpr, &IntervalExpr{})
	register(KindExtractExpr, &ExtractExpr{})
	register(KindTrimExpr, &TrimExpr{})
	register(KindSubstringExpr, &SubstringExpr{})
	register(KindPositionExpr, &PositionExpr{})
	register(KindCollateExpr, &CollateExpr{})

	register(KindTableName, &TableName{})
	register(KindAliasedTableExpr, &AliasedTableExpr{})
	register(KindJoinExpr, &JoinExpr{})
	register(KindParenTableExpr, &ParenTableExpr{})
	register(KindOrderByExpr, &OrderByExpr{})
	register(KindLimit, &Limit{})
	register(KindAliasedExpr, &AliasedExpr{})
	register(KindStarExpr, &StarExpr{})
	register(KindWindowSpec, &WindowSpec{})
	register(KindWindowDef, &WindowDef{})
	register(KindTableList, &TableList{})
	register(KindWithClause, &WithClause{})
	register(KindCTE, &CTE{})
}

// KindOf returns the registered Kind for node's concrete type, or
// KindInvalid if node is nil or was never registered (e.g. a caller's own
// Node implementation).
func KindOf(node Node) Kind {
	if node == nil {
		return KindInvalid
	}
	if k, ok := kindByType[reflect.TypeOf(node)]; ok {
		return k
	}
	return KindInvalid
}
