// Package relquery provides a high-performance SQL parser, formatter, and
// set of static analyzers and AST transformers for a PostgreSQL-leaning
// SQL dialect.
//
// Basic usage:
//
//	stmt, err := relquery.Parse("SELECT * FROM users WHERE id = 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(relquery.String(stmt))
//
// Walking the AST:
//
//	relquery.Walk(stmt, func(node ast.Node) bool {
//	    if col, ok := node.(*ast.ColName); ok {
//	        fmt.Printf("Found column: %s\n", col.Name())
//	    }
//	    return true
//	})
//
// Rewriting nodes:
//
//	rewritten := relquery.Rewrite(stmt, func(n ast.Node) ast.Node {
//	    // Transform nodes as needed
//	    return n
//	})
//
// Beyond parsing, the root package re-exports the dynamic query builder,
// the static collectors, and the cursor/rename utilities so most callers
// never need to import the sub-packages directly.
package relquery

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/collect"
	"github.com/relquery/relquery/format"
	"github.com/relquery/relquery/parser"
	"github.com/relquery/relquery/query"
	"github.com/relquery/relquery/rename"
	"github.com/relquery/relquery/token"
	"github.com/relquery/relquery/transform"
	"github.com/relquery/relquery/visitor"
)

// Parse parses a single SQL statement.
// The parser uses internal pooling for efficiency.
// For maximum performance when parsing many queries, call Repool(stmt)
// when done with the statement (optional, see Repool).
func Parse(sql string) (ast.Statement, error) {
	p := parser.Get(sql)
	stmt, err := p.Parse()
	parser.Put(p)
	return stmt, err
}

// ParseAll parses all statements in the input.
// For maximum performance, call Repool on each statement when done (optional).
func ParseAll(sql string) ([]ast.Statement, error) {
	p := parser.Get(sql)
	stmts, err := p.ParseAll()
	parser.Put(p)
	return stmts, err
}

// Repool returns AST nodes to internal pools for reuse.
// This is optional - if not called, nodes are garbage collected normally.
// Calling Repool after you're done with a statement improves performance
// when parsing many queries by reducing allocations.
//
// Example:
//
//	stmt, err := relquery.Parse(sql)
//	if err != nil {
//	    return err
//	}
//	defer relquery.Repool(stmt)
//	// ... use stmt ...
func Repool(stmt Statement) {
	ast.ReleaseAST(stmt)
}

// String formats an AST node back to SQL.
func String(node ast.Node) string {
	return format.String(node)
}

// Walk traverses the AST calling the function for each node.
// If the function returns false, children are not visited.
func Walk(node ast.Node, fn func(ast.Node) bool) {
	visitor.WalkFunc(node, fn)
}

// Rewrite traverses the AST allowing node replacement.
// The function is called in post-order (children first, then parent).
// Return the replacement node or the original to keep it.
func Rewrite(node ast.Node, fn func(ast.Node) ast.Node) ast.Node {
	return visitor.Rewrite(node, fn)
}

// Statement is the interface for all SQL statements.
type Statement = ast.Statement

// Expr is the interface for all expressions.
type Expr = ast.Expr

// Node is the base interface for all AST nodes.
type Node = ast.Node

// Common type aliases for convenience.
type (
	SelectStmt       = ast.SelectStmt
	InsertStmt       = ast.InsertStmt
	UpdateStmt       = ast.UpdateStmt
	DeleteStmt       = ast.DeleteStmt
	CreateTableStmt  = ast.CreateTableStmt
	AlterTableStmt   = ast.AlterTableStmt
	DropTableStmt    = ast.DropTableStmt
	CreateIndexStmt  = ast.CreateIndexStmt
	DropIndexStmt    = ast.DropIndexStmt
	TruncateStmt     = ast.TruncateStmt
	ExplainStmt      = ast.ExplainStmt
	ColName          = ast.ColName
	TableName        = ast.TableName
	Literal          = ast.Literal
	BinaryExpr       = ast.BinaryExpr
	UnaryExpr        = ast.UnaryExpr
	FuncExpr         = ast.FuncExpr
	CaseExpr         = ast.CaseExpr
	CastExpr         = ast.CastExpr
	Subquery         = ast.Subquery
	JoinExpr         = ast.JoinExpr
	AliasedExpr      = ast.AliasedExpr
	AliasedTableExpr = ast.AliasedTableExpr
	StarExpr         = ast.StarExpr
	ParenExpr        = ast.ParenExpr
	InExpr           = ast.InExpr
	BetweenExpr      = ast.BetweenExpr
	LikeExpr         = ast.LikeExpr
	IsExpr           = ast.IsExpr
	ExistsExpr       = ast.ExistsExpr
	OrderByExpr      = ast.OrderByExpr
	Limit            = ast.Limit
	WithClause       = ast.WithClause
	CTE              = ast.CTE
)

// Join types
const (
	JoinInner = ast.JoinInner
	JoinLeft  = ast.JoinLeft
	JoinRight = ast.JoinRight
	JoinFull  = ast.JoinFull
	JoinCross = ast.JoinCross
)

// Literal types
const (
	LiteralNull   = ast.LiteralNull
	LiteralInt    = ast.LiteralInt
	LiteralFloat  = ast.LiteralFloat
	LiteralString = ast.LiteralString
	LiteralBool   = ast.LiteralBool
)

// DynamicQueryBuilder combines parsing, the injection pipeline, and
// formatting behind a single facade. See query.DynamicQueryBuilder.
type DynamicQueryBuilder = query.DynamicQueryBuilder

// NewDynamicQueryBuilder constructs a DynamicQueryBuilder. resolver may
// be nil.
func NewDynamicQueryBuilder(resolver collect.TableColumnResolver) *DynamicQueryBuilder {
	return query.NewDynamicQueryBuilder(resolver)
}

// Render formats node per opts, returning the rendered SQL and its
// parameter list.
func Render(node ast.Node, opts format.Options) format.FormatResult {
	return format.Render(node, opts)
}

// CollectCTEs returns every CTE reachable from root.
func CollectCTEs(root ast.Node) []*ast.CTE {
	return collect.CTEs(root)
}

// CollectColumns returns sel's selectable output columns.
func CollectColumns(sel *ast.SelectStmt, resolve collect.TableColumnResolver) ([]collect.Column, error) {
	return collect.Columns(sel, resolve)
}

// CollectParameters returns every distinct parameter reachable from root.
func CollectParameters(root ast.Node) []*ast.Param {
	return collect.Parameters(root)
}

// CollectFilterableItems returns the union of sel's selectable columns
// and parameters.
func CollectFilterableItems(sel *ast.SelectStmt, resolve collect.TableColumnResolver) ([]collect.FilterableItem, error) {
	return collect.FilterableItems(sel, resolve)
}

// AnalyzeCTEDependencies builds the CTE dependency graph of sel's WITH
// clause and detects cycles.
func AnalyzeCTEDependencies(sel *ast.SelectStmt) (*collect.DependencyGraph, error) {
	return collect.AnalyzeCTEDependencies(sel)
}

// DecomposeCTEs splits sel's WITH clause into standalone statements.
func DecomposeCTEs(sel *ast.SelectStmt) ([]*ast.CTE, *ast.SelectStmt, error) {
	return transform.DecomposeCTEs(sel)
}

// ExtractCTE pulls a single named CTE out of sel into its own statement.
func ExtractCTE(sel *ast.SelectStmt, name string) (*ast.SelectStmt, *ast.SelectStmt, error) {
	return transform.ExtractCTE(sel, name)
}

// DisableCTEs inlines every CTE body in sel as a derived table and
// removes the WITH clause.
func DisableCTEs(sel *ast.SelectStmt) (*ast.SelectStmt, error) {
	return transform.DisableCTEs(sel)
}

// GeneralizeDDL strips dialect-specific decoration from a CREATE TABLE
// statement.
func GeneralizeDDL(stmt *ast.CreateTableStmt) *ast.CreateTableStmt {
	return transform.GeneralizeDDL(stmt)
}

// DiffDDL reports the structural column differences between two CREATE
// TABLE statements.
func DiffDDL(from, to *ast.CreateTableStmt) []transform.DDLDiff {
	return transform.DiffDDL(from, to)
}

// ToInsert, ToUpdate, ToDelete, ToMerge convert a SELECT into the named
// mutation statement shape.
func ToInsert(sel *ast.SelectStmt, target *ast.TableName, columns []*ast.ColName) (*ast.InsertStmt, error) {
	return transform.ToInsert(sel, target, columns)
}

func ToUpdate(sel *ast.SelectStmt, set []*ast.UpdateExpr) (*ast.UpdateStmt, error) {
	return transform.ToUpdate(sel, set)
}

func ToDelete(sel *ast.SelectStmt) (*ast.DeleteStmt, error) {
	return transform.ToDelete(sel)
}

func ToMerge(sel *ast.SelectStmt, whens []*ast.MergeWhen) (*ast.MergeStmt, error) {
	return transform.ToMerge(sel, whens)
}

// DetectScope returns the innermost lexical scope enclosing cursor.
func DetectScope(root ast.Node, cursor token.Pos) rename.Scope {
	return rename.DetectScope(root, cursor)
}

// RenameAlias renames the table alias at cursor, and every reference to
// it within its enclosing scope.
func RenameAlias(root ast.Node, cursor token.Pos, newName string) (ast.Node, error) {
	return rename.RenameAlias(root, cursor, newName)
}

// RenameCTE renames oldName to newName throughout root.
func RenameCTE(root ast.Node, oldName, newName string) (ast.Node, error) {
	return rename.RenameCTE(root, oldName, newName)
}

// SmartRename dispatches to RenameCTE or RenameAlias based on what
// cursor points at.
func SmartRename(root ast.Node, cursor token.Pos, newName string) (ast.Node, error) {
	return rename.SmartRename(root, cursor, newName)
}

// IsRenameable reports whether cursor points at a renameable alias or
// CTE name.
func IsRenameable(root ast.Node, cursor token.Pos) bool {
	return rename.IsRenameable(root, cursor)
}

// DetectCTEAtCursor returns the name of the CTE whose body spans cursor,
// or "" outside any CTE body.
func DetectCTEAtCursor(root ast.Node, cursor token.Pos) string {
	return rename.DetectCTEAtCursor(root, cursor)
}

// GetCTERegions returns the byte span of every CTE body in root.
func GetCTERegions(root ast.Node) []rename.CTERegion {
	return rename.GetCTERegions(root)
}

// SplitMultiQuery splits a semicolon-delimited SQL string into its
// individual statement source texts.
func SplitMultiQuery(sql string) []string {
	return rename.SplitMultiQuery(sql)
}
