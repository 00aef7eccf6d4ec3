// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package safenet

import (
	"github.com/dalzilio/safenet/bdd"
	"github.com/dalzilio/safenet/ilp"
)

// config stores the parameters of ComputeReachable.
type config struct {
	fast          bool                       // use the relational product (AndExist)
	maxIterations int                        // bound on the number of iterations, 0 for the default
	onIteration   func(iter int, s bdd.Node) // called on each intermediate set
	nodesize      int                        // initial size of the node table, 0 for the default
	maxnodesize   int                        // bound on the size of the node table, 0 for no limit
	cachesize     int                        // initial size of the caches, 0 for the default
}

// Option is the type of configuration options for ComputeReachable.
type Option func(*config)

// Fast selects how the image of a set is computed. With Fast(true), the
// default, we use the relational product of the BDD (AndExist). Otherwise we
// compute a conjunction followed by an existential quantification.
func Fast(fast bool) Option {
	return func(c *config) {
		c.fast = fast
	}
}

// MaxIterations sets a bound on the number of iterations of the fixpoint
// computation. Since the reachable set grows at each iteration, the default
// bound (2^|P| + 1) is never reached for a correct implementation.
func MaxIterations(k int) Option {
	return func(c *config) {
		c.maxIterations = k
	}
}

// OnIteration registers a function called with the initial set, at iteration
// 0, and then after each iteration with the new set of markings.
func OnIteration(f func(iter int, s bdd.Node)) Option {
	return func(c *config) {
		c.onIteration = f
	}
}

// Nodesize sets the initial size of the node table of the BDD.
func Nodesize(size int) Option {
	return func(c *config) {
		c.nodesize = size
	}
}

// Maxnodesize sets a bound on the number of nodes in the BDD. When the bound
// is reached, ComputeReachable returns an error wrapping bdd.ErrMemory.
func Maxnodesize(size int) Option {
	return func(c *config) {
		c.maxnodesize = size
	}
}

// Cachesize sets the initial size of the operation caches of the BDD.
func Cachesize(size int) Option {
	return func(c *config) {
		c.cachesize = size
	}
}

// deadlockConfig stores the parameters of FindDeadlock.
type deadlockConfig struct {
	solver         ilp.Solver
	maxRefinements int
}

// DeadlockOption is the type of configuration options for FindDeadlock.
type DeadlockOption func(*deadlockConfig)

// WithSolver sets the ILP solver used in FindDeadlock. The default is
// ilp.Gophersat{}.
func WithSolver(s ilp.Solver) DeadlockOption {
	return func(c *deadlockConfig) {
		c.solver = s
	}
}

// MaxRefinements sets a bound on the number of candidates rejected by
// FindDeadlock. The default, 2^|P|, is the number of markings of the net.
func MaxRefinements(k int) DeadlockOption {
	return func(c *deadlockConfig) {
		c.maxRefinements = k
	}
}

// powerBound returns 2^min(k,62).
func powerBound(k int) int {
	if k > 62 {
		k = 62
	}
	return 1 << k
}
