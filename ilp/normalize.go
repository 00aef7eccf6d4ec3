// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ilp

import "sort"

// lit is a possibly negated variable.
type lit struct {
	v   Var
	neg bool
}

// geq is a pseudo-Boolean constraint sum(coeffs[i] * lits[i]) >= atLeast,
// where all the coefficients are positive.
type geq struct {
	lits    []lit
	coeffs  []int
	atLeast int
}

func (g geq) sum() int {
	sum := 0
	for _, c := range g.coeffs {
		sum += c
	}
	return sum
}

// isClause reports whether g is equivalent to the disjunction of its literals,
// meaning that any one of them is enough to reach atLeast.
func (g geq) isClause() bool {
	if g.atLeast <= 0 {
		return false
	}
	for _, c := range g.coeffs {
		if c < g.atLeast {
			return false
		}
	}
	return true
}

// normalize translates the constraints of m into a list of geq constraints.
// Constraints that are always true are dropped. We return false if one of
// the constraints can never be satisfied.
func normalize(m *Model) ([]geq, bool) {
	if _, ok := m.Infeasible(); ok {
		return nil, false
	}
	var res []geq
	add := func(terms []Term, atLeast int) bool {
		g := togeq(terms, atLeast)
		if g.atLeast <= 0 {
			return true
		}
		if g.sum() < g.atLeast {
			return false
		}
		res = append(res, g)
		return true
	}
	for _, c := range m.Constraints {
		if c.Sense == GreaterEq || c.Sense == Equal {
			if !add(c.Terms, c.RHS) {
				return nil, false
			}
		}
		if c.Sense == LessEq || c.Sense == Equal {
			if !add(negate(c.Terms), -c.RHS) {
				return nil, false
			}
		}
	}
	return res, true
}

func negate(terms []Term) []Term {
	res := make([]Term, len(terms))
	for k, t := range terms {
		res[k] = Term{t.Var, -t.Coeff}
	}
	return res
}

// merge sums the coefficients of each variable and drops null coefficients.
// The result is sorted by variable.
func merge(terms []Term) []Term {
	coeffs := make(map[Var]int)
	for _, t := range terms {
		coeffs[t.Var] += t.Coeff
	}
	res := make([]Term, 0, len(coeffs))
	for v, c := range coeffs {
		if c != 0 {
			res = append(res, Term{v, c})
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Var < res[j].Var })
	return res
}

// togeq uses the identity a.x = a - a.(not x) to get rid of negative
// coefficients.
func togeq(terms []Term, atLeast int) geq {
	var g geq
	for _, t := range merge(terms) {
		if t.Coeff > 0 {
			g.lits = append(g.lits, lit{t.Var, false})
			g.coeffs = append(g.coeffs, t.Coeff)
			continue
		}
		g.lits = append(g.lits, lit{t.Var, true})
		g.coeffs = append(g.coeffs, -t.Coeff)
		atLeast -= t.Coeff
	}
	g.atLeast = atLeast
	return g
}

// objective returns the objective of m as a list of literals with positive
// costs, together with a constant offset.
func objective(m *Model) ([]lit, []int, int) {
	g := togeq(m.Objective, 0)
	// with atLeast = 0, togeq returns minus the sum of negative coefficients
	return g.lits, g.coeffs, -g.atLeast
}
