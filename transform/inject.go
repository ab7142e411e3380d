// Package transform implements the structural transformers: the dynamic
// query injector (filter/sort/paginate/serialize), the SELECT<->mutation
// converters, CTE decomposition/restoration/disabling, and DDL
// generalization/diffing.
package transform

import (
	"fmt"

	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/collect"
	"github.com/relquery/relquery/errs"
	"github.com/relquery/relquery/token"
)

const (
	minPageSize = 1
	maxPageSize = 1000
)

// FilterOp names one of the injector's supported WHERE predicates.
type FilterOp string

const (
	FilterEq        FilterOp = "eq"
	FilterNeq       FilterOp = "neq"
	FilterLt        FilterOp = "lt"
	FilterLte       FilterOp = "lte"
	FilterGt        FilterOp = "gt"
	FilterGte       FilterOp = "gte"
	FilterLike      FilterOp = "like"
	FilterILike     FilterOp = "ilike"
	FilterIn        FilterOp = "in"
	FilterNotIn     FilterOp = "notIn"
	FilterIsNull    FilterOp = "isNull"
	FilterIsNotNull FilterOp = "isNotNull"
	FilterBetween   FilterOp = "between"
	FilterAnd       FilterOp = "and"
	FilterOr        FilterOp = "or"
)

// FilterCondition is one leaf or combinator node of a filter tree. Column
// is required for every op except And/Or, whose Children hold the
// sub-conditions to combine.
type FilterCondition struct {
	Op       FilterOp
	Column   string
	Value    any   // scalar operand, used by eq/neq/lt/lte/gt/gte/like/ilike
	Values   []any // used by in/notIn/between (exactly 2 values for between)
	Children []FilterCondition
}

// SortKey is one ORDER BY entry, applied in slice order (caller-significant,
// since Go map iteration order is not stable and sort order is part of the
// caller's contract). NullsFirst and NullsLast are mutually exclusive; if
// neither is set, the emitted ORDER BY entry has no explicit NULLS clause.
type SortKey struct {
	Column     string
	Desc       bool
	NullsFirst bool
	NullsLast  bool
}

// Paging is a page-based pagination request: Page is 1-based, PageSize must
// be in [1, 1000]. Inject derives LIMIT/OFFSET from these and emits them as
// named parameters rather than literals.
type Paging struct {
	Page     int
	PageSize int
}

func (p Paging) validate() error {
	if p.Page < 1 {
		return errs.InjectionError(errs.ReasonPageOutOfRange, map[string]any{"page": p.Page},
			"page must be >= 1, got %d", p.Page)
	}
	if p.PageSize < minPageSize || p.PageSize > maxPageSize {
		return errs.InjectionError(errs.ReasonPageOutOfRange, map[string]any{"pageSize": p.PageSize},
			"pageSize must be between %d and %d, got %d", minPageSize, maxPageSize, p.PageSize)
	}
	return nil
}

func (p Paging) offset() int {
	return (p.Page - 1) * p.PageSize
}

// SerializeSpec describes how to reshape a flat column list into nested
// JSON via json_build_object/json_agg.
type SerializeSpec struct {
	Root *Entity
}

// Entity is one level of a serialization tree.
type Entity struct {
	Alias    string
	Columns  map[string]string // output key -> source column
	Children map[string]*Entity
	Many     bool // true: wrap in json_agg (one-to-many), false: json_build_object only
}

// InjectOptions bundles the four optional injection steps, applied in the
// fixed order filter -> sort -> paginate -> serialize regardless of which
// fields are set.
type InjectOptions struct {
	Filter    *FilterCondition
	Sort      []SortKey
	Paging    *Paging
	Serialize *SerializeSpec
}

// Inject applies InjectOptions to sel in the fixed pipeline order,
// returning a new statement (sel itself is not mutated); with no options
// set, the result is an unmodified shallow copy of sel and a nil error.
func Inject(sel *ast.SelectStmt, opts InjectOptions) (*ast.SelectStmt, error) {
	out := cloneSelectShallow(sel)

	if opts.Filter != nil {
		target, err := filterTarget(out, opts.Filter)
		if err != nil {
			return nil, err
		}
		cond, err := buildFilterExpr(*opts.Filter)
		if err != nil {
			return nil, err
		}
		if target.Where == nil {
			target.Where = cond
		} else {
			target.Where = &ast.BinaryExpr{Op: token.AND, Left: target.Where, Right: cond}
		}
	}

	if len(opts.Sort) > 0 {
		for _, key := range opts.Sort {
			ob := &ast.OrderByExpr{
				Expr: colRef(key.Column),
				Desc: key.Desc,
			}
			switch {
			case key.NullsFirst:
				nf := true
				ob.NullsFirst = &nf
			case key.NullsLast:
				nf := false
				ob.NullsFirst = &nf
			}
			out.OrderBy = append(out.OrderBy, ob)
		}
	}

	if opts.Paging != nil {
		if out.Limit != nil {
			return nil, errs.InjectionError(errs.ReasonExistingLimit, nil,
				"query already has a LIMIT/OFFSET clause")
		}
		if err := opts.Paging.validate(); err != nil {
			return nil, err
		}
		out.Limit = &ast.Limit{
			Count:  namedIntParam("paging_limit", opts.Paging.PageSize),
			Offset: namedIntParam("paging_offset", opts.Paging.offset()),
		}
	}

	if opts.Serialize != nil {
		serialized, err := serialize(out, opts.Serialize)
		if err != nil {
			return nil, err
		}
		out = serialized
	}

	return out, nil
}

func cloneSelectShallow(sel *ast.SelectStmt) *ast.SelectStmt {
	cp := *sel
	cp.Columns = append([]ast.SelectExpr(nil), sel.Columns...)
	cp.OrderBy = append([]*ast.OrderByExpr(nil), sel.OrderBy...)
	cp.GroupBy = append([]ast.Expr(nil), sel.GroupBy...)
	return &cp
}

// filterTarget implements the "upstream push-down" rule: the filter is
// attached to the innermost query (a CTE body, or the main query) whose
// own SELECT list still projects the filtered column, walking from the
// outermost (out) inward through its CTEs. If no CTE projects the column,
// the main query itself is the target.
//
// When a CTE is the target, its body (and the enclosing WithClause/CTEs
// slice/CTE struct) is cloned first and spliced into out.With, so the
// caller's original AST is never mutated through the shared With pointer
// that cloneSelectShallow only copies by reference.
func filterTarget(out *ast.SelectStmt, filter *FilterCondition) (*ast.SelectStmt, error) {
	col := firstColumn(*filter)
	if col == "" || out.With == nil {
		return out, nil
	}
	for i, cte := range out.With.CTEs {
		body, ok := cte.Query.(*ast.SelectStmt)
		if !ok {
			continue
		}
		cols, err := collect.Columns(body, nil)
		if err != nil {
			continue
		}
		for _, c := range cols {
			if c.Name != col {
				continue
			}
			clonedBody := cloneSelectShallow(body)

			clonedCTE := *cte
			clonedCTE.Query = clonedBody

			newCTEs := append([]*ast.CTE(nil), out.With.CTEs...)
			newCTEs[i] = &clonedCTE

			newWith := *out.With
			newWith.CTEs = newCTEs
			out.With = &newWith

			return clonedBody, nil
		}
	}
	return out, nil
}

func firstColumn(cond FilterCondition) string {
	if cond.Column != "" {
		return cond.Column
	}
	for _, c := range cond.Children {
		if name := firstColumn(c); name != "" {
			return name
		}
	}
	return ""
}

func buildFilterExpr(cond FilterCondition) (ast.Expr, error) {
	switch cond.Op {
	case FilterAnd, FilterOr:
		if len(cond.Children) == 0 {
			return nil, errs.InjectionError(errs.ReasonUnsupportedOp, nil, "%s requires at least one child condition", cond.Op)
		}
		op := token.AND
		if cond.Op == FilterOr {
			op = token.OR
		}
		var acc ast.Expr
		for _, child := range cond.Children {
			e, err := buildFilterExpr(child)
			if err != nil {
				return nil, err
			}
			if acc == nil {
				acc = e
				continue
			}
			acc = &ast.BinaryExpr{Op: op, Left: acc, Right: e}
		}
		return acc, nil

	case FilterEq, FilterNeq, FilterLt, FilterLte, FilterGt, FilterGte:
		return &ast.BinaryExpr{Op: comparisonToken(cond.Op), Left: colRef(cond.Column), Right: paramFor(cond.Column, cond.Value)}, nil

	case FilterLike, FilterILike:
		return &ast.LikeExpr{Expr: colRef(cond.Column), Pattern: paramFor(cond.Column, cond.Value), ILike: cond.Op == FilterILike}, nil

	case FilterIn, FilterNotIn:
		vals := make([]ast.Expr, len(cond.Values))
		for i, v := range cond.Values {
			vals[i] = paramFor(fmt.Sprintf("%s_%d", cond.Column, i), v)
		}
		return &ast.InExpr{Expr: colRef(cond.Column), Not: cond.Op == FilterNotIn, Values: vals}, nil

	case FilterIsNull, FilterIsNotNull:
		return &ast.IsExpr{Expr: colRef(cond.Column), Not: cond.Op == FilterIsNotNull, What: ast.IsNull}, nil

	case FilterBetween:
		if len(cond.Values) != 2 {
			return nil, errs.InjectionError(errs.ReasonUnsupportedOp, nil, "between requires exactly 2 values, got %d", len(cond.Values))
		}
		return &ast.BetweenExpr{
			Expr: colRef(cond.Column),
			Low:  paramFor(cond.Column+"_low", cond.Values[0]),
			High: paramFor(cond.Column+"_high", cond.Values[1]),
		}, nil

	default:
		return nil, errs.InjectionError(errs.ReasonUnsupportedOp, map[string]any{"op": cond.Op}, "unsupported filter operator %q", cond.Op)
	}
}

func comparisonToken(op FilterOp) token.Token {
	switch op {
	case FilterEq:
		return token.EQ
	case FilterNeq:
		return token.NEQ
	case FilterLt:
		return token.LT
	case FilterLte:
		return token.LTE
	case FilterGt:
		return token.GT
	case FilterGte:
		return token.GTE
	}
	return token.EQ
}

func colRef(name string) *ast.ColName {
	return &ast.ColName{Parts: []string{name}}
}

// paramFor builds a named parameter marker carrying v as its bound value,
// so the injector never inlines caller-supplied operands as literals (a
// synthesized marker is always safe to bind, unlike a literal built from
// untrusted input). name becomes the marker's :name in the rendered SQL
// and the key under which v is surfaced in FormatResult.Params.
func paramFor(name string, v any) ast.Expr {
	return &ast.Param{Type: ast.ParamColon, Name: name, Value: v}
}

func namedIntParam(name string, value int) ast.Expr {
	return &ast.Param{Type: ast.ParamColon, Name: name, Value: value}
}
