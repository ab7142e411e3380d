// Package errs defines the structured error taxonomy shared by the
// tokenizer, parser, collectors, transformers, and rename engine.
//
// Every exported error carries a Kind, a human message, an optional source
// Pos, and an optional free-form Context map for caller-specific detail.
// All of them wrap github.com/pkg/errors so a stack trace is attached at
// the point of construction.
package errs

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/relquery/relquery/token"
)

// Kind identifies which stage of the pipeline produced an error.
type Kind string

const (
	KindTokenizer  Kind = "tokenizer"
	KindParse      Kind = "parse"
	KindSchema     Kind = "schema"
	KindResolve    Kind = "resolve"
	KindConversion Kind = "conversion"
	KindInjection  Kind = "injection"
	KindCycle      Kind = "cycle"
)

// Reason enumerates the sub-kind for errors where callers branch on more
// than just Kind (e.g. ResolveError needs to tell "empty wildcard" apart
// from "unknown table").
type Reason string

const (
	ReasonEmptyWildcard  Reason = "empty-wildcard"
	ReasonUnknownTable   Reason = "unknown-table"
	ReasonExistingLimit  Reason = "existing-limit"
	ReasonUnsupportedOp  Reason = "unsupported-operator"
	ReasonDuplicateName  Reason = "duplicate-name"
	ReasonMissingName    Reason = "missing-name"
	ReasonNotRenameable  Reason = "not-renameable"
	ReasonUnterminated   Reason = "unterminated-lexeme"
	ReasonPageOutOfRange Reason = "page-out-of-range"
)

// e is the concrete type behind every exported error constructor below.
// It is unexported on purpose: callers are expected to branch on Kind/Reason
// via the accessor functions, not on the concrete type.
type e struct {
	kind    Kind
	reason  Reason
	message string
	pos     *token.Pos
	context map[string]any
	cause   error
}

func (err *e) Error() string {
	if err.pos != nil {
		return fmt.Sprintf("%s: %s (at line %d, column %d)", err.kind, err.message, err.pos.Line, err.pos.Column)
	}
	return fmt.Sprintf("%s: %s", err.kind, err.message)
}

func (err *e) Unwrap() error { return err.cause }

// GetKind returns the pipeline stage that produced err, or "" if err is not
// one of this package's error types.
func GetKind(err error) Kind {
	var target *e
	if errors.As(err, &target) {
		return target.kind
	}
	return ""
}

// GetReason returns the sub-kind of err, or "" if unset or not ours.
func GetReason(err error) Reason {
	var target *e
	if errors.As(err, &target) {
		return target.reason
	}
	return ""
}

// Pos returns the source position attached to err, if any.
func Pos(err error) (token.Pos, bool) {
	var target *e
	if errors.As(err, &target) && target.pos != nil {
		return *target.pos, true
	}
	return token.Pos{}, false
}

// Context returns the free-form context map attached to err, if any.
func Context(err error) map[string]any {
	var target *e
	if errors.As(err, &target) {
		return target.context
	}
	return nil
}

func newErr(kind Kind, reason Reason, pos *token.Pos, ctx map[string]any, cause error, format string, args ...any) error {
	return errors.WithStack(&e{
		kind:    kind,
		reason:  reason,
		message: fmt.Sprintf(format, args...),
		pos:     pos,
		context: ctx,
		cause:   cause,
	})
}

// TokenizerError reports a lexical failure at pos.
func TokenizerError(pos token.Pos, format string, args ...any) error {
	return newErr(KindTokenizer, ReasonUnterminated, &pos, nil, nil, format, args...)
}

// ParseError reports a grammar failure at pos.
func ParseError(pos token.Pos, format string, args ...any) error {
	return newErr(KindParse, "", &pos, nil, nil, format, args...)
}

// SchemaError reports a DDL/schema inconsistency, e.g. during DDL diffing.
func SchemaError(ctx map[string]any, format string, args ...any) error {
	return newErr(KindSchema, "", nil, ctx, nil, format, args...)
}

// ResolveError reports a failure resolving a wildcard or table-column
// reference during collection. reason distinguishes the documented
// empty-wildcard case from an ordinary unknown-table lookup failure.
func ResolveError(reason Reason, ctx map[string]any, format string, args ...any) error {
	return newErr(KindResolve, reason, nil, ctx, nil, format, args...)
}

// ConversionError reports a failure converting between statement shapes
// (SELECT<->INSERT/UPDATE/DELETE/MERGE, VALUES<->UNION ALL).
func ConversionError(ctx map[string]any, format string, args ...any) error {
	return newErr(KindConversion, "", nil, ctx, nil, format, args...)
}

// InjectionError reports a failure in the dynamic query injector, e.g.
// attempting to paginate a query that already has a LIMIT.
func InjectionError(reason Reason, ctx map[string]any, format string, args ...any) error {
	return newErr(KindInjection, reason, nil, ctx, nil, format, args...)
}

// CycleError reports a cycle detected among CTE dependencies. members is
// the ordered list of CTE names participating in the cycle.
func CycleError(members []string) error {
	return newErr(KindCycle, "", nil, map[string]any{"members": members}, nil,
		"cyclic CTE dependency: %v", members)
}

// Wrap attaches a stack trace to a foreign error without changing its Kind
// classification (GetKind on the result returns "").
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
