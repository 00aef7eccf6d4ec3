// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"strconv"
)

// Node is a reference to an element of a BDD. It is the index of the node in
// the node table of the BDD that created it. Nodes are never reclaimed, so a
// Node stays valid for the lifetime of its BDD. The constants False and True
// are always the nodes 0 and 1.
type Node int

const (
	bddzero = 0
	bddone  = 1
)

// BDD is a hash-consed node table together with the operation caches needed
// to compute over Binary Decision Diagrams. The order of the variables is
// fixed when the BDD is created: variable i is at level i and the constants
// are at level Varnum().
//
// A BDD is not safe for concurrent use.
type BDD struct {
	varnum        int32            // number of BDD variables
	varset        [][2]int         // Nodes for the variables (positive and negative), indexed by level
	names         []string         // Name of each level
	levels        map[string]int32 // Level of each name
	err           error            // Error status, nil if everything is fine
	kernel                         // Node table
	applycache    *cache           // Cache for apply and not results
	itecache      *cache           // Cache for ITE results
	quantcache    *cache           // Cache for exist results
	appexcache    *cache           // Cache for appex results
	replacecache  *cache           // Cache for replace results
	restrictcache *cache           // Cache for restrict results
	quantset      []int32          // Current variable set for quantification
	quantsetID    int32            // Current id used in quantset
	quantlast     int32            // Last level in the current quantification set
	replaceid     int              // Identifier of the last Replacer created
	cacheStat                      // Information about the caches
}

// New returns a new BDD with varnum variables. Options can be used to set the
// size of the node table and of the caches, or to give a name to each
// variable (see Nodesize, Maxnodesize, Cachesize, Cacheratio and Varnames).
// By default the name of variable i is its level written in decimal.
func New(varnum int, options ...func(*configs)) (*BDD, error) {
	if (varnum < 0) || (int32(varnum) > _MAXVAR) {
		return nil, fmt.Errorf("bad number of variable (%d)", varnum)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	if (config.maxnodesize > 0) && (config.maxnodesize < 2*varnum+2) {
		return nil, fmt.Errorf("maxnodesize (%d) too small for %d variables: %w", config.maxnodesize, varnum, ErrMemory)
	}
	b := &BDD{varnum: int32(varnum)}
	if err := b.setnames(config.varnames); err != nil {
		return nil, err
	}
	b.kernel = makekernel(config)
	b.varset = make([][2]int, varnum)
	for k := 0; k < varnum; k++ {
		v0, err := b.kernel.makenode(int32(k), 0, 1)
		if err != nil && err != errResize {
			return nil, err
		}
		v1, err := b.kernel.makenode(int32(k), 1, 0)
		if err != nil && err != errResize {
			return nil, err
		}
		b.varset[k] = [2]int{v0, v1}
	}
	b.cacheinit(config)
	return b, nil
}

func (b *BDD) setnames(names []string) error {
	b.names = make([]string, b.varnum)
	b.levels = make(map[string]int32, b.varnum)
	if names == nil {
		for k := range b.names {
			b.names[k] = strconv.Itoa(k)
			b.levels[b.names[k]] = int32(k)
		}
		return nil
	}
	if len(names) != int(b.varnum) {
		return fmt.Errorf("wrong number of variable names (%d, expected %d)", len(names), b.varnum)
	}
	for k, s := range names {
		if _, ok := b.levels[s]; ok {
			return fmt.Errorf("duplicate variable name %q", s)
		}
		b.names[k] = s
		b.levels[s] = int32(k)
	}
	return nil
}

// makenode is the only way to create a node during an operation. We resize
// the caches when the node table grows and unwind the current operation, with
// a panic recovered in guard, when the table is full.
func (b *BDD) makenode(level int32, low, high int) int {
	res, err := b.kernel.makenode(level, low, high)
	if err == nil {
		return res
	}
	if err == errResize {
		b.cacheresize()
		return res
	}
	panic(outOfMemory{err})
}

// checknode panics if n is not a valid node of b.
func (b *BDD) checknode(n Node, op string) {
	if (n < 0) || (int(n) >= b.size()) {
		panic(fmt.Sprintf("bdd: invalid node (%d) in call to %s", n, op))
	}
}

func (b *BDD) checklevel(level int, op string) {
	if (level < 0) || (level >= int(b.varnum)) {
		panic(fmt.Sprintf("bdd: invalid variable (%d) in call to %s", level, op))
	}
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// True returns the constant true.
func (b *BDD) True() Node {
	return bddone
}

// False returns the constant false.
func (b *BDD) False() Node {
	return bddzero
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return bddone
	}
	return bddzero
}

// Ithvar returns a BDD representing the i'th variable. The requested variable
// must be in the range [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	b.checklevel(i, "Ithvar")
	return Node(b.varset[i][0])
}

// NIthvar returns a BDD representing the negation of the i'th variable.
func (b *BDD) NIthvar(i int) Node {
	b.checklevel(i, "NIthvar")
	return Node(b.varset[i][1])
}

// Var returns the variable with the given name. It panics if there are no
// variable with this name.
func (b *BDD) Var(name string) Node {
	return Node(b.varset[b.Level(name)][0])
}

// NVar returns the negation of the variable with the given name.
func (b *BDD) NVar(name string) Node {
	return Node(b.varset[b.Level(name)][1])
}

// Level returns the level of the variable with the given name.
func (b *BDD) Level(name string) int {
	level, ok := b.levels[name]
	if !ok {
		panic(fmt.Sprintf("bdd: unknown variable %q", name))
	}
	return int(level)
}

// Name returns the name of the variable at the given level.
func (b *BDD) Name(level int) string {
	b.checklevel(level, "Name")
	return b.names[level]
}

// Label returns the level of the variable labelling node n. The level of the
// two constants is Varnum().
func (b *BDD) Label(n Node) int {
	b.checknode(n, "Label")
	return int(b.level(int(n)))
}

// Low returns the false branch of a BDD. The constants are their own
// successors.
func (b *BDD) Low(n Node) Node {
	b.checknode(n, "Low")
	return Node(b.low(int(n)))
}

// High returns the true branch of a BDD.
func (b *BDD) High(n Node) Node {
	b.checknode(n, "High")
	return Node(b.high(int(n)))
}

// IsZero returns true if n is the constant false.
func (b *BDD) IsZero(n Node) bool {
	return n == bddzero
}

// IsOne returns true if n is the constant true.
func (b *BDD) IsOne(n Node) bool {
	return n == bddone
}

// Equal tests equivalence between nodes. Since diagrams are canonical this is
// simply a comparison between handles.
func (b *BDD) Equal(n1, n2 Node) bool {
	return n1 == n2
}

// And returns the logical 'and' of a sequence of nodes.
func (b *BDD) And(n ...Node) Node {
	if len(n) == 0 {
		return bddone
	}
	res := n[0]
	for _, v := range n[1:] {
		res = b.Apply(res, v, OPand)
	}
	return res
}

// Or returns the logical 'or' of a sequence of nodes.
func (b *BDD) Or(n ...Node) Node {
	if len(n) == 0 {
		return bddzero
	}
	res := n[0]
	for _, v := range n[1:] {
		res = b.Apply(res, v, OPor)
	}
	return res
}

// Imp returns the logical 'implication' between two BDDs.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical 'bi-implication' between two BDDs.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// AndExist returns the "relational composition" of two nodes with respect to
// varset, meaning the result of (Exist varset . n1 & n2).
func (b *BDD) AndExist(varset, n1, n2 Node) Node {
	return b.AppEx(n1, n2, OPand, varset)
}
