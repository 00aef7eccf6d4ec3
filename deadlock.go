// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package safenet

import (
	"fmt"
	"log"

	"github.com/dalzilio/safenet/ilp"
	"github.com/dalzilio/safenet/petri"
)

// deadlockModel returns an integer linear program whose solutions, projected
// on the place variables (the first len(Places) variables of the model), are
// exactly the dead markings of net n. We use one binary selector y_t for each
// transition t, with y_t = 0 meaning that some place in the preset of t is
// empty, and y_t = 1 meaning that some place in the postset of t, but not in
// its preset, is marked.
func deadlockModel(n *petri.Net) *ilp.Model {
	m := ilp.NewModel()
	x := make([]ilp.Var, len(n.Places))
	for i, p := range n.Places {
		x[i] = m.NewVar("x_" + p.ID)
	}
	for t, tr := range n.Transitions {
		y := m.NewVar("y_" + tr.ID)
		pre := n.Preset(t)
		out := n.OutputOnly(t)
		if len(pre) == 0 && len(out) == 0 {
			m.SetInfeasible(fmt.Sprintf("transition %s is always enabled", tr.ID))
			continue
		}
		if len(out) == 0 {
			m.Fix(y, false)
		} else {
			terms := []ilp.Term{{Var: y, Coeff: -1}}
			for _, p := range out {
				terms = append(terms, ilp.Term{Var: x[p], Coeff: 1})
			}
			m.Add(ilp.Constraint{Name: "out_" + tr.ID, Terms: terms, Sense: ilp.GreaterEq, RHS: 0})
		}
		if len(pre) == 0 {
			m.Fix(y, true)
			continue
		}
		// big-M constraint with M = |pre|
		terms := []ilp.Term{{Var: y, Coeff: -len(pre)}}
		for _, p := range pre {
			terms = append(terms, ilp.Term{Var: x[p], Coeff: 1})
		}
		m.Add(ilp.Constraint{Name: "pre_" + tr.ID, Terms: terms, Sense: ilp.LessEq, RHS: len(pre) - 1})
	}
	obj := make([]ilp.Term, len(x))
	for i, v := range x {
		obj[i] = ilp.Term{Var: v, Coeff: 1}
	}
	m.Minimize(obj...)
	return m
}

// exclude returns a constraint that is false only for the place variables
// equal to candidate c.
func exclude(c petri.Marking, k int) ilp.Constraint {
	terms := make([]ilp.Term, len(c))
	rhs := 1
	for i, v := range c {
		if v {
			terms[i] = ilp.Term{Var: ilp.Var(i), Coeff: -1}
			rhs--
		} else {
			terms[i] = ilp.Term{Var: ilp.Var(i), Coeff: 1}
		}
	}
	return ilp.Constraint{Name: fmt.Sprintf("cut_%d", k), Terms: terms, Sense: ilp.GreaterEq, RHS: rhs}
}

// FindDeadlock looks for a reachable dead marking, meaning a reachable marking
// where no transition is enabled. We solve an integer linear program whose
// solutions are the dead markings of the net and check each candidate
// against the set of reachable markings in r. A candidate that is not
// reachable is excluded from the program with a new constraint. The boolean
// result is false when the net has no reachable deadlock.
func FindDeadlock(r *Reachability, opts ...DeadlockOption) (petri.Marking, bool, error) {
	c := &deadlockConfig{solver: ilp.Gophersat{}}
	for _, f := range opts {
		f(c)
	}
	n := r.Net
	np := len(n.Places)
	m := deadlockModel(n)
	for i, p := range n.Places {
		v, ok := m.Lookup("x_" + p.ID)
		if !ok || int(v) != i || r.BDD.Level(p.ID) != 2*i {
			return nil, false, fmt.Errorf("%w: place %s has no matching variable", ErrInternal, p.ID)
		}
	}
	bound := c.maxRefinements
	if bound <= 0 {
		bound = powerBound(np)
	}
	for k := 0; ; k++ {
		res, err := c.solver.Solve(m)
		if err != nil {
			return nil, false, fmt.Errorf("deadlock search: %w", err)
		}
		if res.Status == ilp.Infeasible {
			return nil, false, nil
		}
		cand := make(petri.Marking, np)
		copy(cand, res.Values[:np])
		if r.Contains(cand) {
			if !n.Dead(cand) {
				return nil, false, fmt.Errorf("%w: marking %s is not dead", ErrInternal, cand)
			}
			if _LOGLEVEL > 0 {
				log.Printf("deadlock %s found after %d refinements\n", cand, k)
			}
			return cand, true, nil
		}
		if r.BDD.Errored() {
			return nil, false, fmt.Errorf("deadlock search: %w", r.BDD.Err())
		}
		if k >= bound {
			return nil, false, fmt.Errorf("%w: deadlock search did not converge after %d refinements", ErrInternal, bound)
		}
		if _LOGLEVEL > 0 {
			log.Printf("refinement %d: excluding %s\n", k+1, cand)
		}
		m.Add(exclude(cand, k))
	}
}
