// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"math/big"
)

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n. We return a result using arbitrary-precision
// arithmetic to avoid possible overflows.
func (b *BDD) Satcount(n Node) *big.Int {
	b.checknode(n, "Satcount")
	res := big.NewInt(0)
	// We compute 2^level with a bit shift 1 << level
	res.SetBit(res, int(b.level(int(n))), 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcount(int(n), satc))
}

func (b *BDD) satcount(n int, satc map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	// we use satc to memoize the value of satcount for each nodes
	res, ok := satc[n]
	if ok {
		return res
	}
	level := b.level(n)
	low := b.low(n)
	high := b.high(n)

	res = big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(b.level(low)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(low, satc)))
	two = big.NewInt(0)
	two.SetBit(two, int(b.level(high)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(high, satc)))
	satc[n] = res
	return res
}

// SatcountSet computes the number of satisfying assignments of n when only
// the variables in varset (a node built with Makeset) are taken into account.
// This is useful when n is known not to depend on the other variables, like
// for a set of states over the current variables of a transition system. The
// function panics if n depends on a variable outside of varset.
func (b *BDD) SatcountSet(n, varset Node) *big.Int {
	b.checknode(n, "SatcountSet")
	b.checknode(varset, "SatcountSet")
	// rank gives, for each level, the number of variables in varset that are
	// strictly before this level. The rank of the constants is the size of the
	// set.
	rank := make([]int, b.varnum+1)
	inset := make([]bool, b.varnum)
	if varset > 1 {
		for _, v := range b.Scanset(varset) {
			inset[v] = true
		}
	}
	for k := 0; k < int(b.varnum); k++ {
		rank[k+1] = rank[k]
		if inset[k] {
			rank[k+1]++
		}
	}
	res := big.NewInt(0)
	res.SetBit(res, rank[b.level(int(n))], 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcountset(int(n), rank, inset, satc))
}

func (b *BDD) satcountset(n int, rank []int, inset []bool, satc map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	res, ok := satc[n]
	if ok {
		return res
	}
	level := b.level(n)
	if !inset[level] {
		panic(fmt.Sprintf("bdd: node %d depends on variable %d, outside of the set in call to SatcountSet", n, level))
	}
	res = big.NewInt(0)
	for _, child := range [2]int{b.low(n), b.high(n)} {
		two := big.NewInt(0)
		two.SetBit(two, rank[b.level(child)]-rank[level]-1, 1)
		res.Add(res, two.Mul(two, b.satcountset(child, rank, inset, satc)))
	}
	satc[n] = res
	return res
}

// Allsat Iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either  0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. We stop and return an error if f returns an error at some
// point. The slice is reused between calls to f.
//
// The following is an example of a callback handler that counts the number of
// possible assignments (such that we do not count don't care twice):
//
//	acc := new(int)
//	b.Allsat(n, func(varset []int) error {
//		*acc++
//		return nil
//	})
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	b.checknode(n, "Allsat")
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	// the function does not create new nodes, so we do not need to take care of
	// possible resizing
	return b.allsat(int(n), prof, f)
}

func (b *BDD) allsat(n int, prof []int, f func([]int) error) error {
	if n == 1 {
		return f(prof)
	}
	if n == 0 {
		return nil
	}

	if low := b.low(n); low != 0 {
		prof[b.level(n)] = 0
		for v := b.level(low) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}

	if high := b.high(n); high != 0 {
		prof[b.level(n)] = 1
		for v := b.level(high) - 1; v > b.level(n); v-- {
			prof[v] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., or all the nodes in the table if n is absent. The
// parameters to function f are the id, level, and id's of the low and high
// successors of each node. The two constant nodes (True and False) have always
// the id 1 and 0, respectively, and their level is Varnum().
//
// The order in which nodes are visited is not specified. The behavior is very
// similar to the one of Allsat. In particular, we stop the computation and
// return an error if f returns an error at some point.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	for _, v := range n {
		b.checknode(v, "Allnodes")
	}
	if len(n) == 0 {
		for k := 0; k < b.size(); k++ {
			if err := f(k, int(b.level(k)), b.low(k), b.high(k)); err != nil {
				return err
			}
		}
		return nil
	}
	visited := make(map[int]bool)
	stack := make([]int, 0, len(n))
	for _, v := range n {
		stack = append(stack, int(v))
	}
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[k] {
			continue
		}
		visited[k] = true
		if err := f(k, int(b.level(k)), b.low(k), b.high(k)); err != nil {
			return err
		}
		if k > 1 {
			stack = append(stack, b.low(k), b.high(k))
		}
	}
	return nil
}

// Nodecount returns the number of internal nodes (constants excluded) that are
// reachable from n.
func (b *BDD) Nodecount(n Node) int {
	b.checknode(n, "Nodecount")
	count := 0
	b.Allnodes(func(id, _, _, _ int) error {
		if id > 1 {
			count++
		}
		return nil
	}, n)
	return count
}
