package collect

import (
	"sort"

	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/errs"
	"github.com/relquery/relquery/visitor"
)

// MainQueryName is the synthetic dependency-graph node standing in for the
// statement's own main query (the part after the WITH clause).
const MainQueryName = "__MAIN__"

// DependencyGraph is the CTE reference graph of a single WITH clause:
// nodes are CTE names plus the synthetic MainQueryName, edges point from a
// query to the CTEs its FROM/JOIN clauses reference.
type DependencyGraph struct {
	edges map[string][]string
	order []string // insertion order, for deterministic iteration
}

// Edges returns the table names that `from` depends on.
func (g *DependencyGraph) Edges(from string) []string {
	return g.edges[from]
}

// Nodes returns every node name in first-encounter order.
func (g *DependencyGraph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// TopoOrder returns the CTE names (excluding MainQueryName) in an order
// where every CTE appears after the CTEs it depends on. Cycles other than
// a recursive CTE's reference to itself make this undefined; call
// AnalyzeCTEDependencies's returned error check first.
func (g *DependencyGraph) TopoOrder() []string {
	visited := make(map[string]bool)
	var out []string
	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, dep := range g.edges[name] {
			if dep == name {
				continue // self-edge on a recursive CTE
			}
			visit(dep)
		}
		if name != MainQueryName {
			out = append(out, name)
		}
	}
	for _, n := range g.order {
		visit(n)
	}
	return out
}

// AnalyzeCTEDependencies builds the dependency graph of sel's WITH clause
// and detects cycles. Self-edges introduced by a RECURSIVE CTE referencing
// its own name are not considered a cycle; any other cycle among CTE names
// fails with errs.CycleError naming the cycle's members.
func AnalyzeCTEDependencies(sel *ast.SelectStmt) (*DependencyGraph, error) {
	g := &DependencyGraph{edges: make(map[string][]string)}

	cteNames := make(map[string]bool)
	if sel.With != nil {
		for _, cte := range sel.With.CTEs {
			cteNames[cte.Name] = true
		}
	}

	addNode := func(name string) {
		if _, ok := g.edges[name]; !ok {
			g.edges[name] = nil
			g.order = append(g.order, name)
		}
	}

	addEdges := func(name string, body ast.Node) {
		addNode(name)
		for _, tbl := range tableNamesReferenced(body) {
			if cteNames[tbl] {
				g.edges[name] = append(g.edges[name], tbl)
			}
		}
	}

	if sel.With != nil {
		for _, cte := range sel.With.CTEs {
			addEdges(cte.Name, cte.Query)
		}
	}
	addEdges(MainQueryName, sel)
	// addEdges only records edges to names in cteNames, and MainQueryName
	// is never a CTE name, so the main query cannot gain a self-edge here.

	if cycle := findCycle(g); cycle != nil {
		return g, errs.CycleError(cycle)
	}

	return g, nil
}

func tableNamesReferenced(node ast.Node) []string {
	var out []string
	visitor.Inspect(node, func(n ast.Node) bool {
		switch t := n.(type) {
		case *ast.TableName:
			out = append(out, t.Name())
		}
		return true
	})
	return out
}

// findCycle returns the members of the first non-self cycle found, or nil.
func findCycle(g *DependencyGraph) []string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int)
	var stack []string
	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		color[name] = gray
		stack = append(stack, name)
		for _, dep := range g.edges[name] {
			if dep == name {
				continue
			}
			switch color[dep] {
			case white:
				if visit(dep) {
					return true
				}
			case gray:
				// found a cycle; extract the gray segment of the stack
				for i, n := range stack {
					if n == dep {
						cycle = append([]string{}, stack[i:]...)
						break
					}
				}
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
		return false
	}

	for _, n := range g.order {
		if color[n] == white {
			if visit(n) {
				sort.Strings(cycle) // deterministic for error messages/tests
				return cycle
			}
		}
	}
	return nil
}
