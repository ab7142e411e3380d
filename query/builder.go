// Package query implements the DynamicQueryBuilder facade: parse ->
// injector pipeline -> format, plus single-step convenience wrappers and
// a validate-only entry point.
package query

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/collect"
	"github.com/relquery/relquery/errs"
	"github.com/relquery/relquery/format"
	"github.com/relquery/relquery/parser"
	"github.com/relquery/relquery/transform"
)

// DynamicQueryBuilder combines a parser, the dynamic-query injector, and
// the formatter behind a single pure-function facade. It is safe for
// concurrent use: each BuildQuery call parses into its own AST and never
// shares mutable state across calls.
type DynamicQueryBuilder struct {
	resolver collect.TableColumnResolver
	options  format.Options
}

// NewDynamicQueryBuilder constructs a builder. resolver may be nil. The
// builder stores resolver but BuildQuery and the single-step wrappers do
// not consult it, so wildcard columns are left unexpanded either way.
func NewDynamicQueryBuilder(resolver collect.TableColumnResolver) *DynamicQueryBuilder {
	return &DynamicQueryBuilder{resolver: resolver, options: format.NewOptions()}
}

// WithFormatOptions returns a copy of b configured to format results with
// opts instead of the default options.
func (b *DynamicQueryBuilder) WithFormatOptions(opts format.Options) *DynamicQueryBuilder {
	cp := *b
	cp.options = opts
	return &cp
}

// BuildQuery parses sql and applies opts's injection pipeline (filter ->
// sort -> paginate -> serialize, in that fixed order), returning the
// rendered SQL and its parameter list.
func (b *DynamicQueryBuilder) BuildQuery(sql string, opts transform.InjectOptions) (format.FormatResult, error) {
	p := parser.Get(sql)
	stmt, err := p.Parse()
	parser.Put(p)
	if err != nil {
		return format.FormatResult{}, err
	}
	sel, ok := stmt.(*ast.SelectStmt)
	if !ok {
		return format.FormatResult{}, errs.ConversionError(nil, "BuildQuery requires a SELECT statement")
	}
	injected, err := transform.Inject(sel, opts)
	if err != nil {
		return format.FormatResult{}, err
	}
	return format.Render(injected, b.options), nil
}

// BuildFilteredQuery applies only the filter step.
func (b *DynamicQueryBuilder) BuildFilteredQuery(sql string, filter *transform.FilterCondition) (format.FormatResult, error) {
	return b.BuildQuery(sql, transform.InjectOptions{Filter: filter})
}

// BuildSortedQuery applies only the sort step.
func (b *DynamicQueryBuilder) BuildSortedQuery(sql string, sort []transform.SortKey) (format.FormatResult, error) {
	return b.BuildQuery(sql, transform.InjectOptions{Sort: sort})
}

// BuildPaginatedQuery applies only the paginate step.
func (b *DynamicQueryBuilder) BuildPaginatedQuery(sql string, paging transform.Paging) (format.FormatResult, error) {
	return b.BuildQuery(sql, transform.InjectOptions{Paging: &paging})
}

// BuildSerializedQuery applies only the serialize step.
func (b *DynamicQueryBuilder) BuildSerializedQuery(sql string, spec *transform.SerializeSpec) (format.FormatResult, error) {
	return b.BuildQuery(sql, transform.InjectOptions{Serialize: spec})
}

// ValidateSql parses sql and reports whether it succeeded, without
// applying any injection options.
func (b *DynamicQueryBuilder) ValidateSql(sql string) bool {
	p := parser.Get(sql)
	_, err := p.ParseAll()
	parser.Put(p)
	return err == nil
}
