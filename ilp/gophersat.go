// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ilp

import (
	"fmt"
	"log"

	"github.com/crillab/gophersat/maxsat"
)

// Gophersat is a Solver based on the weighted partial MaxSAT solver of
// gophersat. Constraints are hard pseudo-Boolean constraints and each term of
// the objective is a weighted soft clause.
type Gophersat struct {
	// Verbose makes the underlying solver print its progress on stdout.
	Verbose bool
}

func satname(v Var) string {
	return fmt.Sprintf("x%d", v)
}

func satlit(l lit) maxsat.Lit {
	if l.neg {
		return maxsat.Not(satname(l.v))
	}
	return maxsat.Var(satname(l.v))
}

// Solve returns an optimal solution for m.
func (s Gophersat) Solve(m *Model) (Result, error) {
	constrs, ok := normalize(m)
	if !ok {
		return Result{Status: Infeasible}, nil
	}
	var pbconstrs []maxsat.Constr
	for _, g := range constrs {
		lits := make([]maxsat.Lit, len(g.lits))
		for k, l := range g.lits {
			lits[k] = satlit(l)
		}
		if g.isClause() {
			pbconstrs = append(pbconstrs, maxsat.HardClause(lits...))
			continue
		}
		coeffs := make([]int, len(g.coeffs))
		copy(coeffs, g.coeffs)
		pbconstrs = append(pbconstrs, maxsat.HardPBConstr(lits, coeffs, g.atLeast))
	}
	olits, ocosts, _ := objective(m)
	for k, l := range olits {
		// the soft clause is violated, with cost ocosts[k], when l is true
		pbconstrs = append(pbconstrs, maxsat.WeightedClause([]maxsat.Lit{satlit(l).Negation()}, ocosts[k]))
	}
	values := make(Assignment, m.NumVars())
	if len(pbconstrs) == 0 {
		return Result{Status: Feasible, Values: values, Cost: m.Cost(values)}, nil
	}
	pb := maxsat.New(pbconstrs...)
	pb.SetVerbose(s.Verbose)
	model, _ := pb.Solve()
	if model == nil {
		return Result{Status: Infeasible}, nil
	}
	for v := range values {
		// variables that occur in no constraint are absent from the model
		values[v] = model[satname(Var(v))]
	}
	if !m.Satisfies(values) {
		return Result{}, fmt.Errorf("gophersat returned an assignment violating the model")
	}
	res := Result{Status: Feasible, Values: values, Cost: m.Cost(values)}
	if _LOGLEVEL > 1 {
		log.Printf("gophersat: %d constraints, cost %d\n", len(pbconstrs), res.Cost)
	}
	return res, nil
}
