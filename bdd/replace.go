// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"math"
)

// Replacer is the type of association lists used to replace variables in a BDD
// node.
type Replacer interface {
	// Replace returns the new level of a variable and false if the variable,
	// and all the variables below it, are left unchanged.
	Replace(int32) (int32, bool)
	// Id returns an identifier used for caching intermediate results.
	Id() int
}

type replacer struct {
	id    int     // unique identifier used for caching intermediate results
	image []int32 // map the level of old variables to the level of new variables
	last  int32   // last index in the Replacer, to speed up computations
}

func (r *replacer) String() string {
	res := fmt.Sprintf("replacer(last: %d)[", r.last)
	first := true
	for k, v := range r.image {
		if k != int(v) {
			if !first {
				res += ", "
			}
			first = false
			res += fmt.Sprintf("%d<-%d", k, v)
		}
	}
	return res + "]"
}

func (r *replacer) Replace(level int32) (int32, bool) {
	if level > r.last {
		return level, false
	}
	return r.image[level], true
}

func (r *replacer) Id() int {
	return r.id
}

// NewReplacer returns a Replacer for substituting variable oldvars[k] with
// newvars[k]. We return an error if the two slices do not have the same length
// or if we find the same index twice in either of them. All values must be in
// [0..Varnum).
func (b *BDD) NewReplacer(oldvars []int, newvars []int) (Replacer, error) {
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("unmatched length of slices")
	}
	if b.replaceid == (math.MaxInt32 >> 2) {
		return nil, fmt.Errorf("too many replacers created")
	}
	b.replaceid++
	res := &replacer{id: b.replaceid, last: -1}
	varnum := int(b.varnum)
	support := make([]bool, varnum)
	res.image = make([]int32, varnum)
	for k := range res.image {
		res.image[k] = int32(k)
	}
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, fmt.Errorf("invalid variable in oldvars (%d)", v)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, fmt.Errorf("invalid variable in newvars (%d)", newvars[k])
		}
		if support[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in oldvars", v)
		}
		support[v] = true
		res.image[v] = int32(newvars[k])
		if int32(v) > res.last {
			res.last = int32(v)
		}
	}
	seen := make([]bool, varnum)
	for k, v := range newvars {
		if seen[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in newvars", v)
		}
		seen[v] = true
		if support[v] && oldvars[k] != v {
			return nil, fmt.Errorf("variable in newvars (%d) also occur in oldvars", v)
		}
	}
	return res, nil
}

// NewRenamer is similar to NewReplacer but uses variable names. Each key of
// the map is replaced with the associated value.
func (b *BDD) NewRenamer(mapping map[string]string) (Replacer, error) {
	oldvars := make([]int, 0, len(mapping))
	newvars := make([]int, 0, len(mapping))
	for from, to := range mapping {
		lfrom, ok := b.levels[from]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q in renaming", from)
		}
		lto, ok := b.levels[to]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q in renaming", to)
		}
		oldvars = append(oldvars, int(lfrom))
		newvars = append(newvars, int(lto))
	}
	return b.NewReplacer(oldvars, newvars)
}

// Replace takes a Replacer and computes the result of n after replacing old
// variables with new ones. See type Replacer. The operation panics if the
// renaming maps a variable onto a variable that is also in the support of its
// sub-diagram, since the result would be meaningless.
func (b *BDD) Replace(n Node, r Replacer) Node {
	b.checknode(n, "Replace")
	return b.guard("Replace", func() int { return b.replace(int(n), r) })
}

func (b *BDD) replace(n int, r Replacer) int {
	image, ok := r.Replace(b.level(n))
	if !ok {
		return n
	}
	if res := b.matchreplace(n, r.Id()); res >= 0 {
		return res
	}
	low := b.replace(b.low(n), r)
	high := b.replace(b.high(n), r)
	return b.setreplace(n, r.Id(), b.correctify(image, low, high))
}

// correctify builds the node (level ? high : low) even when level is not
// smaller than the levels of low and high, by pushing the test down.
func (b *BDD) correctify(level int32, low, high int) int {
	if (level < b.level(low)) && (level < b.level(high)) {
		return b.makenode(level, low, high)
	}

	if (level == b.level(low)) || (level == b.level(high)) {
		panic(fmt.Sprintf("bdd: error in replace level (%d) == low (%d:%d) or high (%d:%d)", level, low, b.level(low), high, b.level(high)))
	}

	if b.level(low) == b.level(high) {
		left := b.correctify(level, b.low(low), b.low(high))
		right := b.correctify(level, b.high(low), b.high(high))
		return b.makenode(b.level(low), left, right)
	}

	if b.level(low) < b.level(high) {
		left := b.correctify(level, b.low(low), high)
		right := b.correctify(level, b.high(low), high)
		return b.makenode(b.level(low), left, right)
	}

	left := b.correctify(level, low, b.low(high))
	right := b.correctify(level, low, b.high(high))
	return b.makenode(b.level(high), left, right)
}
