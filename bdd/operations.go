// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"sort"
)

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result follows
// the level order and is nil if n is a constant.
func (b *BDD) Scanset(n Node) []int {
	b.checknode(n, "Scanset")
	if n < 2 {
		return nil
	}
	res := []int{}
	for i := int(n); i > 1; i = b.high(i) {
		res = append(res, int(b.level(i)))
	}
	return res
}

// Makeset returns a node corresponding to the conjunction (the cube) of all the
// variable in varset, in their positive form. It is such that
// Scanset(Makeset(a)) == a, modulo ordering and duplicates. It panics if one
// of the variables is outside the scope of the BDD (see documentation for
// function Ithvar).
func (b *BDD) Makeset(varset []int) Node {
	levels := make([]int, len(varset))
	copy(levels, varset)
	for _, v := range levels {
		b.checklevel(v, "Makeset")
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))
	return b.guard("Makeset", func() int {
		res := bddone
		for k, v := range levels {
			if k > 0 && levels[k-1] == v {
				continue
			}
			res = b.makenode(int32(v), bddzero, res)
		}
		return res
	})
}

// Not returns the negation of the expression corresponding to node n. It
// negates a BDD by exchanging all references to the zero-terminal with
// references to the one-terminal and vice versa.
func (b *BDD) Not(n Node) Node {
	b.checknode(n, "Not")
	return b.guard("Not", func() int { return b.not(int(n)) })
}

func (b *BDD) not(n int) int {
	if n == 0 {
		return 1
	}
	if n == 1 {
		return 0
	}
	// The hash for a not operation is simply n
	if res := b.matchnot(n); res >= 0 {
		return res
	}
	low := b.not(b.low(n))
	high := b.not(b.high(n))
	return b.setnot(n, b.makenode(b.level(n), low, high))
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//	Identifier    Description             Truth table
//
//	OPand         logical and             [0,0,0,1]
//	OPxor         logical xor             [0,1,1,0]
//	OPor          logical or              [0,1,1,1]
//	OPnand        logical not-and         [1,1,1,0]
//	OPnor         logical not-or          [1,0,0,0]
//	OPimp         implication             [1,1,0,1]
//	OPbiimp       equivalence             [1,0,0,1]
//	OPdiff        set difference          [0,0,1,0]
//	OPless        less than               [0,1,0,0]
//	OPinvimp      reverse implication     [1,0,1,1]
func (b *BDD) Apply(left Node, right Node, op Operator) Node {
	b.checknode(left, "Apply")
	b.checknode(right, "Apply")
	if op < OPand || op > OPinvimp {
		panic(fmt.Sprintf("bdd: unauthorized operation (%s) in Apply", op))
	}
	return b.guard("Apply", func() int { return b.apply(int(left), int(right), op) })
}

func (b *BDD) apply(left int, right int, op Operator) int {
	switch op {
	case OPand:
		if left == right {
			return left
		}
		if (left == 0) || (right == 0) {
			return 0
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if (left == 1) || (right == 1) {
			return 1
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPnand:
		if (left == 0) || (right == 0) {
			return 1
		}
	case OPnor:
		if (left == 1) || (right == 1) {
			return 0
		}
	case OPimp:
		if left == 0 {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	case OPbiimp:
		if left == right {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPdiff:
		if left == right {
			return 0
		}
		if right == 1 {
			return 0
		}
		if left == 0 {
			return 0
		}
		if right == 0 {
			return left
		}
	case OPless:
		if (left == right) || (left == 1) {
			return 0
		}
		if left == 0 {
			return right
		}
	case OPinvimp:
		if right == 0 {
			return 1
		}
		if right == 1 {
			return left
		}
		if left == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	}

	// we deal with the other cases where the two operands are constants
	if (left < 2) && (right < 2) {
		return opres[op][left][right]
	}
	if res := b.matchapply(left, right, op); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res int
	switch {
	case leftlvl == rightlvl:
		low := b.apply(b.low(left), b.low(right), op)
		high := b.apply(b.high(left), b.high(right), op)
		res = b.makenode(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := b.apply(b.low(left), right, op)
		high := b.apply(b.high(left), right, op)
		res = b.makenode(leftlvl, low, high)
	default:
		low := b.apply(left, b.low(right), op)
		high := b.apply(left, b.high(right), op)
		res = b.makenode(rightlvl, low, high)
	}
	return b.setapply(left, right, op, res)
}

// Ite, short for if-then-else operator, computes the BDD for the expression [(f
// /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Node) Node {
	b.checknode(f, "Ite")
	b.checknode(g, "Ite")
	b.checknode(h, "Ite")
	return b.guard("Ite", func() int { return b.ite(int(f), int(g), int(h)) })
}

// ite_low returns p if p is strictly higher than q or r, otherwise it returns
// p.low. This is used in function ite to know which node to follow: we always
// follow the smallest(s) nodes.
func (b *BDD) ite_low(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.low(n)
}

func (b *BDD) ite_high(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.high(n)
}

// min3 returns the smallest value between p, q and r. This is used in function
// ite to compute the smallest level.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}

func (b *BDD) ite(f, g, h int) int {
	switch {
	case f == 1:
		return g
	case f == 0:
		return h
	case g == h:
		return g
	case (g == 1) && (h == 0):
		return f
	case (g == 0) && (h == 1):
		return b.not(f)
	}
	if res := b.matchite(f, g, h); res >= 0 {
		return res
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.ite(b.ite_low(p, q, r, f), b.ite_low(q, p, r, g), b.ite_low(r, p, q, h))
	high := b.ite(b.ite_high(p, q, r, f), b.ite_high(q, p, r, g), b.ite_high(r, p, q, h))
	return b.setite(f, g, h, b.makenode(min3(p, q, r), low, high))
}

// Exist returns the existential quantification of n for the variables in
// varset, where varset is a node built with a method such as Makeset.
func (b *BDD) Exist(n, varset Node) Node {
	b.checknode(n, "Exist")
	b.checknode(varset, "Exist")
	if varset < 2 { // we have an empty set or a constant
		return n
	}
	return b.guard("Exist", func() int {
		b.quantset2cache(int(varset))
		return b.quant(int(n), (int(varset)<<3)|cacheid_EXIST)
	})
}

func (b *BDD) quant(n, id int) int {
	if (n < 2) || (b.level(n) > b.quantlast) {
		return n
	}
	if res := b.matchquant(n, id); res >= 0 {
		return res
	}
	low := b.quant(b.low(n), id)
	high := b.quant(b.high(n), id)
	var res int
	if b.quantset[b.level(n)] == b.quantsetID {
		res = b.apply(low, high, OPor)
	} else {
		res = b.makenode(b.level(n), low, high)
	}
	return b.setquant(n, id, res)
}

// AppEx applies the binary operator *op* on the two operands left and right
// then performs an existential quantification over the variables in varset.
// This is done in a bottom up manner such that both the apply and
// quantification is done on the lower nodes before stepping up to the higher
// nodes. This makes AppEx much more efficient than an apply operation followed
// by a quantification. Note that, when *op* is a conjunction, this operation
// returns the relational product of two BDDs.
//
// Only the operators OPand, OPxor, OPor and OPnand can be used.
func (b *BDD) AppEx(left Node, right Node, op Operator, varset Node) Node {
	if op < OPand || op > OPnand {
		panic(fmt.Sprintf("bdd: operator %s not supported in call to AppEx", op))
	}
	b.checknode(left, "AppEx")
	b.checknode(right, "AppEx")
	b.checknode(varset, "AppEx")
	if varset < 2 { // we have an empty set
		return b.Apply(left, right, op)
	}
	return b.guard("AppEx", func() int {
		b.quantset2cache(int(varset))
		id := (int(varset) << 2) | int(op)
		return b.appquant(int(left), int(right), op, id)
	})
}

func (b *BDD) appquant(left, right int, op Operator, id int) int {
	qid := (id << 3) | cacheid_APPEX
	switch op {
	case OPand:
		if left == 0 || right == 0 {
			return 0
		}
		if left == right {
			return b.quant(left, qid)
		}
		if left == 1 {
			return b.quant(right, qid)
		}
		if right == 1 {
			return b.quant(left, qid)
		}
	case OPor:
		if left == 1 || right == 1 {
			return 1
		}
		if left == right {
			return b.quant(left, qid)
		}
		if left == 0 {
			return b.quant(right, qid)
		}
		if right == 0 {
			return b.quant(left, qid)
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return b.quant(right, qid)
		}
		if right == 0 {
			return b.quant(left, qid)
		}
	case OPnand:
		if left == 0 || right == 0 {
			return 1
		}
	}

	// we deal with the other cases when the two operands are constants
	if (left < 2) && (right < 2) {
		return opres[op][left][right]
	}

	// and the case where we have no more variables to quantify
	if (b.level(left) > b.quantlast) && (b.level(right) > b.quantlast) {
		return b.apply(left, right, op)
	}

	// next we check if the operation is already in our cache
	if res := b.matchappex(left, right, id); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var level int32
	var low, high int
	switch {
	case leftlvl == rightlvl:
		level = leftlvl
		low = b.appquant(b.low(left), b.low(right), op, id)
		high = b.appquant(b.high(left), b.high(right), op, id)
	case leftlvl < rightlvl:
		level = leftlvl
		low = b.appquant(b.low(left), right, op, id)
		high = b.appquant(b.high(left), right, op, id)
	default:
		level = rightlvl
		low = b.appquant(left, b.low(right), op, id)
		high = b.appquant(left, b.high(right), op, id)
	}
	var res int
	if b.quantset[level] == b.quantsetID {
		res = b.apply(low, high, OPor)
	} else {
		res = b.makenode(level, low, high)
	}
	return b.setappex(left, right, id, res)
}

// Restrict returns the cofactor of n by cube, where cube is a conjunction of
// literals (positive or negative) such as the ones built with And over the
// results of Ithvar and NIthvar. The result does not depend on the variables of
// the cube. In particular, Restrict(n, cube) is True if and only if every
// assignment compatible with cube satisfies n.
func (b *BDD) Restrict(n, cube Node) Node {
	b.checknode(n, "Restrict")
	b.checknode(cube, "Restrict")
	for i := int(cube); i > 1; i = b.cubenext(i) {
		if (b.low(i) != 0) && (b.high(i) != 0) {
			panic(fmt.Sprintf("bdd: node %d is not a conjunction of literals", cube))
		}
	}
	if cube == bddzero {
		panic("bdd: restriction by False")
	}
	return b.guard("Restrict", func() int { return b.restrict(int(n), int(cube)) })
}

// cubenext returns the successor of node n in a cube, that is its only child
// different from False.
func (b *BDD) cubenext(n int) int {
	if b.low(n) == 0 {
		return b.high(n)
	}
	return b.low(n)
}

func (b *BDD) restrict(n, cube int) int {
	if (n < 2) || (cube < 2) {
		return n
	}
	if res := b.matchrestrict(n, cube); res >= 0 {
		return res
	}
	nlvl := b.level(n)
	clvl := b.level(cube)
	var res int
	switch {
	case clvl < nlvl:
		res = b.restrict(n, b.cubenext(cube))
	case clvl == nlvl:
		if b.low(cube) == 0 {
			res = b.restrict(b.high(n), b.high(cube))
		} else {
			res = b.restrict(b.low(n), b.low(cube))
		}
	default:
		low := b.restrict(b.low(n), cube)
		high := b.restrict(b.high(n), cube)
		res = b.makenode(nlvl, low, high)
	}
	return b.setrestrict(n, cube, res)
}
