// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// configs is used to store the values of different parameters of the BDD
type configs struct {
	varnum      int      // number of BDD variables
	nodesize    int      // initial number of nodes in the table
	cachesize   int      // initial cache size (general)
	cacheratio  int      // initial ratio (general, 0 if size constant) between cache size and node table
	maxnodesize int      // Maximum total number of nodes (0 if no limit)
	varnames    []string // Optional names for the variables, indexed by level
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	// we build enough nodes to include all the variables in varset
	c.nodesize = 2*varnum + 2
	c.cachesize = _DEFAULTCACHESIZE
	return c
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The size of the BDD can
// increase during computation. By default we create a table large enough to
// include the two constants and the "variables" used in the call to Ithvar and
// NIthvar.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the BDD. An operation trying to
// raise the number of nodes above this limit will set the error status of the
// BDD (wrapping ErrMemory) and return False. The default value (0) means that
// there is no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New it
// sets the initial number of entries in the operation caches. The default value
// is 10 000. See also the Cacheratio config.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Cacheratio is a configuration option (function). Used as a parameter in New
// it sets a "cache ratio" (%) so that caches can grow each time we resize the
// node table. With a cache ratio of r, we have r available entries in the cache
// for every 100 slots in the node table. (A typical value for the cache ratio
// is 25% or 20%). The default value (0) means that the cache size never grows.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// Varnames is a configuration option (function). Used as a parameter in New it
// gives a name to each variable, in level order. Names must be distinct and
// there must be exactly one name per variable.
func Varnames(names ...string) func(*configs) {
	return func(c *configs) {
		c.varnames = names
	}
}
