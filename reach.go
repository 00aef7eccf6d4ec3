// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package safenet

import (
	"errors"
	"fmt"
	"log"
	"math/big"

	"github.com/dalzilio/safenet/bdd"
	"github.com/dalzilio/safenet/petri"
)

// ErrInternal is returned (wrapped) when an analysis breaks one of its own
// invariants, for instance when a loop exceeds its theoretical bound.
var ErrInternal = errors.New("internal error")

// Reachability is the result of a symbolic state space exploration. Set is a
// BDD over the current variables of the net (levels 2i for place i) denoting
// the set of reachable markings, and Relation is the transition relation over
// current and next variables.
type Reachability struct {
	Net        *petri.Net
	BDD        *bdd.BDD
	Set        bdd.Node
	Relation   bdd.Node
	Count      *big.Int // number of reachable markings
	Iterations int      // number of image computations

	current bdd.Node     // set of current variables
	next    bdd.Node     // set of next variables
	renamer bdd.Replacer // next to current
	enabled []bdd.Node   // enabling condition of each transition
}

// varnames returns the names of the variables associated with the places of
// n, in level order. The current variable of a place is named after its
// identifier and its next variable adds a prime, or more if the name is
// already used by another place.
func varnames(n *petri.Net) []string {
	taken := make(map[string]bool, 2*len(n.Places))
	for _, p := range n.Places {
		taken[p.ID] = true
	}
	res := make([]string, 0, 2*len(n.Places))
	for _, p := range n.Places {
		next := p.ID + "'"
		for taken[next] {
			next += "'"
		}
		taken[next] = true
		res = append(res, p.ID, next)
	}
	return res
}

// ComputeReachable computes the set of markings reachable from the initial
// marking of net n as a least fixpoint. Place i is associated with the
// variable at level 2i, for its current value, and 2i+1, for its value after
// firing a transition.
func ComputeReachable(n *petri.Net, opts ...Option) (*Reachability, error) {
	c := &config{fast: true}
	for _, f := range opts {
		f(c)
	}
	np := len(n.Places)
	currentLevels := make([]int, np)
	nextLevels := make([]int, np)
	for i := range n.Places {
		currentLevels[i] = 2 * i
		nextLevels[i] = 2*i + 1
	}
	// Nodesize and Cachesize ignore values that are too small, such as 0, and
	// a null Maxnodesize means no limit.
	b, err := bdd.New(2*np,
		bdd.Varnames(varnames(n)...),
		bdd.Nodesize(c.nodesize),
		bdd.Maxnodesize(c.maxnodesize),
		bdd.Cachesize(c.cachesize))
	if err != nil {
		return nil, fmt.Errorf("cannot create decision diagram for net: %w", err)
	}
	r := &Reachability{
		Net:     n,
		BDD:     b,
		current: b.Makeset(currentLevels),
		next:    b.Makeset(nextLevels),
		enabled: make([]bdd.Node, len(n.Transitions)),
	}
	r.renamer, err = b.NewReplacer(nextLevels, currentLevels)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInternal, err)
	}

	r.Relation = r.relation()
	s0 := b.True()
	for i, v := range n.Initial() {
		s0 = b.And(s0, r.literal(2*i, v))
	}
	if err := r.fixpoint(s0, c); err != nil {
		return nil, err
	}
	r.Count = b.SatcountSet(r.Set, r.current)
	return r, nil
}

// literal returns the variable at the given level, or its negation.
func (r *Reachability) literal(level int, v bool) bdd.Node {
	if v {
		return r.BDD.Ithvar(level)
	}
	return r.BDD.NIthvar(level)
}

// relation builds the transition relation of the net. A transition is enabled
// when all the places in its preset are marked and all the places in its
// postset, that are not also in its preset, are empty.
func (r *Reachability) relation() bdd.Node {
	b := r.BDD
	n := r.Net
	frames := make([]bdd.Node, len(n.Places))
	for i := range n.Places {
		frames[i] = b.Equiv(b.Ithvar(2*i+1), b.Ithvar(2*i))
	}
	rel := b.False()
	for t := range n.Transitions {
		guard := b.True()
		for _, p := range n.Preset(t) {
			guard = b.And(guard, b.Ithvar(2*p))
		}
		for _, p := range n.OutputOnly(t) {
			guard = b.And(guard, b.NIthvar(2*p))
		}
		r.enabled[t] = guard
		effect := make([]bdd.Node, len(n.Places))
		copy(effect, frames)
		for _, p := range n.Preset(t) {
			effect[p] = b.NIthvar(2*p + 1)
		}
		for _, p := range n.Postset(t) {
			effect[p] = b.Ithvar(2*p + 1)
		}
		rel = b.Or(rel, b.And(guard, b.And(effect...)))
	}
	return rel
}

// image returns the set of markings reachable in one step from s.
func (r *Reachability) image(s bdd.Node, fast bool) bdd.Node {
	b := r.BDD
	var img bdd.Node
	if fast {
		img = b.AndExist(r.current, s, r.Relation)
	} else {
		img = b.Exist(b.And(s, r.Relation), r.current)
	}
	return b.Replace(img, r.renamer)
}

func (r *Reachability) fixpoint(s bdd.Node, c *config) error {
	b := r.BDD
	bound := c.maxIterations
	if bound <= 0 {
		bound = powerBound(len(r.Net.Places)) + 1
	}
	if c.onIteration != nil {
		c.onIteration(0, s)
	}
	for {
		if b.Errored() {
			return fmt.Errorf("reachability after %d iterations: %w", r.Iterations, b.Err())
		}
		if r.Iterations >= bound {
			return fmt.Errorf("%w: reachability did not converge after %d iterations", ErrInternal, bound)
		}
		r.Iterations++
		snext := b.Or(s, r.image(s, c.fast))
		if b.Errored() {
			return fmt.Errorf("reachability after %d iterations: %w", r.Iterations, b.Err())
		}
		if c.onIteration != nil {
			c.onIteration(r.Iterations, snext)
		}
		if _LOGLEVEL > 0 {
			log.Printf("iteration %d: %d nodes\n", r.Iterations, b.Nodecount(snext))
		}
		if snext == s {
			r.Set = s
			return nil
		}
		s = snext
	}
}

// cube returns the conjunction of the current literals of marking m.
func (r *Reachability) cube(m petri.Marking) bdd.Node {
	lits := make([]bdd.Node, len(m))
	for i, v := range m {
		lits[i] = r.literal(2*i, v)
	}
	return r.BDD.And(lits...)
}

// Contains reports whether marking m is reachable.
func (r *Reachability) Contains(m petri.Marking) bool {
	if len(m) != len(r.Net.Places) {
		return false
	}
	cube := r.cube(m)
	if r.BDD.Errored() {
		return false
	}
	return r.BDD.IsOne(r.BDD.Restrict(r.Set, cube))
}

// Markings calls f on every reachable marking. The enumeration stops at the
// first error returned by f, which is returned.
func (r *Reachability) Markings(f func(petri.Marking) error) error {
	np := len(r.Net.Places)
	return r.BDD.Allsat(r.Set, func(prof []int) error {
		m := make(petri.Marking, np)
		var expand func(i int) error
		expand = func(i int) error {
			if i == np {
				return f(m.Clone())
			}
			switch prof[2*i] {
			case 0:
				m[i] = false
				return expand(i + 1)
			case 1:
				m[i] = true
				return expand(i + 1)
			}
			m[i] = false
			if err := expand(i + 1); err != nil {
				return err
			}
			m[i] = true
			return expand(i + 1)
		}
		return expand(0)
	})
}

// Dead returns the set of reachable markings where no transition is enabled.
func (r *Reachability) Dead() bdd.Node {
	return r.BDD.And(r.Set, r.BDD.Not(r.BDD.Or(r.enabled...)))
}
