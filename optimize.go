// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package safenet

import (
	"fmt"

	"github.com/dalzilio/safenet/bdd"
	"github.com/dalzilio/safenet/petri"
)

// optimizer stores the intermediate results of Optimize.
type optimizer struct {
	b       *bdd.BDD
	weights []float64
	prefix  []float64 // prefix[j] is the sum of max(w,0) for places before j
	value   map[bdd.Node]float64
	high    map[bdd.Node]bool // best choice at each node
}

// weight returns the weight of the place at the given level. Next variables
// have a null weight.
func (o *optimizer) weight(level int) float64 {
	if level%2 != 0 {
		return 0
	}
	return o.weights[level/2]
}

// span returns the indices of the places whose current variables are strictly
// between levels from and to.
func span(from, to int) (int, int) {
	lo := 0
	if from >= 0 {
		lo = from/2 + 1
	}
	return lo, (to + 1) / 2
}

// bonus returns the best value of the places skipped between two levels.
func (o *optimizer) bonus(from, to int) float64 {
	lo, hi := span(from, to)
	if hi <= lo {
		return 0
	}
	return o.prefix[hi] - o.prefix[lo]
}

// best returns the best value of a path from n to True. Node n must be
// different from False.
func (o *optimizer) best(n bdd.Node) float64 {
	if o.b.IsOne(n) {
		return 0
	}
	if v, ok := o.value[n]; ok {
		return v
	}
	level := o.b.Label(n)
	low, high := o.b.Low(n), o.b.High(n)
	var res float64
	switch {
	case o.b.IsZero(low):
		res = o.weight(level) + o.bonus(level, o.b.Label(high)) + o.best(high)
		o.high[n] = true
	case o.b.IsZero(high):
		res = o.bonus(level, o.b.Label(low)) + o.best(low)
	default:
		lv := o.bonus(level, o.b.Label(low)) + o.best(low)
		hv := o.weight(level) + o.bonus(level, o.b.Label(high)) + o.best(high)
		res = lv
		if hv > lv {
			res = hv
			o.high[n] = true
		}
	}
	o.value[n] = res
	return res
}

// fill marks the places skipped between two levels that have a positive
// weight.
func (o *optimizer) fill(m petri.Marking, from, to int) {
	lo, hi := span(from, to)
	for j := lo; j < hi; j++ {
		if o.weights[j] > 0 {
			m[j] = true
		}
	}
}

// Optimize returns a reachable marking m maximizing the sum of weights[i] for
// all the places i marked in m, together with this maximal value. The boolean
// result is false when the set of reachable markings is empty. The optimum is
// computed in a single pass over the BDD, without enumerating markings. When
// several markings are optimal, we prefer empty places.
func Optimize(r *Reachability, weights []float64) (petri.Marking, float64, bool, error) {
	np := len(r.Net.Places)
	if len(weights) != np {
		return nil, 0, false, fmt.Errorf("wrong number of weights: expected %d, got %d", np, len(weights))
	}
	b := r.BDD
	if b.IsZero(r.Set) {
		return nil, 0, false, nil
	}
	o := &optimizer{
		b:       b,
		weights: weights,
		prefix:  make([]float64, np+1),
		value:   make(map[bdd.Node]float64),
		high:    make(map[bdd.Node]bool),
	}
	for j, w := range weights {
		o.prefix[j+1] = o.prefix[j]
		if w > 0 {
			o.prefix[j+1] += w
		}
	}
	total := o.bonus(-1, b.Label(r.Set)) + o.best(r.Set)

	m := make(petri.Marking, np)
	o.fill(m, -1, b.Label(r.Set))
	for n := r.Set; !b.IsOne(n); {
		level := b.Label(n)
		child := b.Low(n)
		if o.high[n] {
			child = b.High(n)
			if level%2 == 0 {
				m[level/2] = true
			}
		}
		o.fill(m, level, b.Label(child))
		n = child
	}
	return m, total, true, nil
}
