package visitor

import "github.com/relquery/relquery/ast"

// Mode controls how deep a Walker descends: Shallow visits only the node
// passed to Walker.Visit and leaves any recursion to the visitor itself,
// Deep recurses through everything, exactly like Walk.
type Mode int

const (
	Shallow Mode = iota
	Deep
)

// Visitor is a generic, result-typed double-dispatch visitor keyed by
// ast.Kind rather than a dynamic type switch at every call site. Most
// implementers embed Base[T] and only override the kinds they care about.
type Visitor[T any] interface {
	Visit(kind ast.Kind, node ast.Node) T
}

// VisitFunc adapts a plain function into a Visitor[T] that ignores kind.
type VisitFunc[T any] func(node ast.Node) T

func (f VisitFunc[T]) Visit(_ ast.Kind, node ast.Node) T { return f(node) }

// Base is an embeddable Visitor[T] whose Visit method always returns the
// zero value of T; concrete visitors embed Base and only implement the
// kinds they need via a wrapping VisitFunc or a custom struct.
type Base[T any] struct{}

func (Base[T]) Visit(ast.Kind, ast.Node) T {
	var zero T
	return zero
}

// Walker drives a Visitor[T] over a tree, honoring Mode for where to stop.
type Walker[T any] struct {
	v    Visitor[T]
	mode Mode
}

// NewWalker builds a Walker over v with the given traversal Mode.
func NewWalker[T any](v Visitor[T], mode Mode) *Walker[T] {
	return &Walker[T]{v: v, mode: mode}
}

// Visit dispatches node to the walker's visitor, passing its registered
// Kind, then — in Deep mode — continues into its children using the
// untyped Walk machinery; in Shallow mode, children are not visited
// automatically (the visitor itself decides whether to recurse, e.g. a
// collector that wants only the immediate SELECT's own columns).
func (w *Walker[T]) Visit(node ast.Node) T {
	kind := ast.KindOf(node)
	result := w.v.Visit(kind, node)
	if w.mode == Deep {
		Walk(dispatchAdapter[T]{w}, node)
	}
	return result
}

// dispatchAdapter lets a Walker[T] satisfy the untyped Visitor interface
// for the Deep-mode recursive descent, discarding each child's T result
// (Deep mode is for traversal side effects via a closure-capturing
// Visitor[T], not for collecting every child's return value — callers
// needing that use Collect below).
type dispatchAdapter[T any] struct{ w *Walker[T] }

func (d dispatchAdapter[T]) Visit(node ast.Node) Visitor {
	if node == nil {
		return nil
	}
	d.w.v.Visit(ast.KindOf(node), node)
	return d
}

// Collect runs v over every node in node's tree (Deep) and returns every
// non-zero-ish result in visit order, via a user-supplied predicate since
// T has no generic notion of "zero".
func Collect[T any](node ast.Node, v Visitor[T], keep func(T) bool) []T {
	var out []T
	WalkFunc(node, func(n ast.Node) bool {
		result := v.Visit(ast.KindOf(n), n)
		if keep(result) {
			out = append(out, result)
		}
		return true
	})
	return out
}
