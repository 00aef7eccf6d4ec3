// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ilp

import (
	"fmt"
	"log"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Gini is a Solver based on the gini SAT solver. Constraints that are plain
// disjunctions are added as clauses. Any other pseudo-Boolean constraint is
// encoded with a sorting network over its literals, where a literal with
// coefficient k is repeated k times, so this solver is only suitable for small
// coefficients. The objective is minimized by adding a
// bound, as an assumption, on the cost of the best solution found so far until
// the problem becomes unsatisfiable.
type Gini struct{}

// Solve returns an optimal solution for m.
func (s Gini) Solve(m *Model) (Result, error) {
	constrs, ok := normalize(m)
	if !ok {
		return Result{Status: Infeasible}, nil
	}
	c := logic.NewC()
	vars := make([]z.Lit, m.NumVars())
	for k := range vars {
		vars[k] = c.Lit()
	}
	tolit := func(l lit) z.Lit {
		if l.neg {
			return vars[l.v].Not()
		}
		return vars[l.v]
	}
	expand := func(lits []lit, coeffs []int) []z.Lit {
		var ms []z.Lit
		for k, l := range lits {
			for i := 0; i < coeffs[k]; i++ {
				ms = append(ms, tolit(l))
			}
		}
		return ms
	}
	roots := make([]z.Lit, 0, len(constrs))
	var clauses [][]z.Lit
	for _, g := range constrs {
		if g.isClause() {
			cl := make([]z.Lit, len(g.lits))
			for k, l := range g.lits {
				cl[k] = tolit(l)
			}
			clauses = append(clauses, cl)
			continue
		}
		roots = append(roots, c.CardSort(expand(g.lits, g.coeffs)).Geq(g.atLeast))
	}
	olits, ocosts, offset := objective(m)
	var cost *logic.CardSort
	if len(olits) > 0 {
		cost = c.CardSort(expand(olits, ocosts))
	}
	g := gini.New()
	c.ToCnf(g)
	g.Add(c.T)
	g.Add(z.LitNull)
	// the solver only knows the variables that occur in a clause
	for _, v := range vars {
		g.Add(v)
		g.Add(v.Not())
		g.Add(z.LitNull)
	}
	for _, r := range roots {
		g.Add(r)
		g.Add(z.LitNull)
	}
	for _, cl := range clauses {
		for _, l := range cl {
			g.Add(l)
		}
		g.Add(z.LitNull)
	}
	if g.Solve() != 1 {
		return Result{Status: Infeasible}, nil
	}
	values := make(Assignment, m.NumVars())
	for {
		for k := range values {
			values[k] = g.Value(vars[k])
		}
		if cost == nil {
			break
		}
		best := m.Cost(values) - offset
		if _LOGLEVEL > 1 {
			log.Printf("gini: solution with cost %d\n", best+offset)
		}
		if best == 0 {
			break
		}
		g.Assume(cost.Leq(best - 1))
		if g.Solve() != 1 {
			break
		}
	}
	if !m.Satisfies(values) {
		return Result{}, fmt.Errorf("gini returned an assignment violating the model")
	}
	return Result{Status: Feasible, Values: values, Cost: m.Cost(values)}, nil
}
