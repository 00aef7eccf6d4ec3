// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "errors"

// _MAXVAR is the maximal number of levels in the BDD. We use only the first 21
// bits for encoding levels (so also the max number of variables).
const _MAXVAR int32 = 0x1FFFFF

// _DEFAULTCACHESIZE is the number of entries in each operation cache when
// option Cachesize is not used.
const _DEFAULTCACHESIZE int = 10000

// ErrMemory is the error recorded in a BDD when an operation needs more nodes
// than allowed by option Maxnodesize.
var ErrMemory = errors.New("unable to resize BDD node table")

// errResize is returned by a kernel, together with a valid node, when the node
// table was reallocated; in which case the caches may need to be resized.
var errResize = errors.New("should cache resize")

// kernel is the interface shared by the implementations of the node table.
// The constants are always kept at index 0 (False) and 1 (True) with a level
// equal to varnum, so that they are below every variable in the order.
type kernel interface {
	// makenode returns the unique node with the given level and successors,
	// creating it if needed. It returns the low successor when low == high.
	makenode(level int32, low, high int) (int, error)
	level(n int) int32
	low(n int) int
	high(n int) int
	// size returns the number of nodes (constants included) in the table.
	size() int
	stats() string
}
