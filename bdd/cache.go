// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "fmt"

// cache is used for caching apply/exist etc. results. Entries are keyed on
// node handles and are never invalidated, since nodes are never reclaimed;
// a collision simply overwrites the previous entry.
type cache struct {
	ratio int // entries for every 100 nodes, 0 if the size is constant
	table []cacheData
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	opHit  int // entries found in the operator caches
	opMiss int // entries not found in the operator caches
}

// cacheData is a unit of information stored in the caches
type cacheData struct {
	res int
	a   int
	b   int
	c   int
}

// Hash value modifiers to distinguish between entries in the caches
const (
	cacheid_EXIST    int = 0x0
	cacheid_APPEX    int = 0x3
	cacheid_RESTRICT int = 0x1
)

func (bc *cache) cacheinit(size int) {
	size = primeGte(size)
	bc.table = make([]cacheData, size)
	bc.cachereset()
}

// cacheresize adjusts the size of the cache to the new size of the node table,
// or only empties the cache if the ratio is 0.
func (bc *cache) cacheresize(nodesize int) {
	if bc.ratio > 0 {
		bc.cacheinit((nodesize * bc.ratio) / 100)
		return
	}
	bc.cachereset()
}

func (bc *cache) cachereset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// *************************************************************************
// Setup

func (b *BDD) cacheinit(c *configs) {
	b.quantset = make([]int32, b.varnum)
	b.quantlast = -1
	cachesize := c.cachesize
	if c.cacheratio > 0 {
		if size := (c.nodesize * c.cacheratio) / 100; size > cachesize {
			cachesize = size
		}
	}
	b.applycache = b.newcache(cachesize, c.cacheratio)
	b.itecache = b.newcache(cachesize, c.cacheratio)
	b.quantcache = b.newcache(cachesize, c.cacheratio)
	b.appexcache = b.newcache(cachesize, c.cacheratio)
	b.replacecache = b.newcache(cachesize, c.cacheratio)
	b.restrictcache = b.newcache(cachesize, c.cacheratio)
}

func (b *BDD) newcache(size, ratio int) *cache {
	c := &cache{ratio: ratio}
	c.cacheinit(size)
	return c
}

func (b *BDD) cacheresize() {
	nodesize := b.size()
	b.applycache.cacheresize(nodesize)
	b.itecache.cacheresize(nodesize)
	b.quantcache.cacheresize(nodesize)
	b.appexcache.cacheresize(nodesize)
	b.replacecache.cacheresize(nodesize)
	b.restrictcache.cacheresize(nodesize)
}

func (b *BDD) hit(res int) int {
	if _DEBUG {
		b.opHit++
	}
	return res
}

func (b *BDD) miss() int {
	if _DEBUG {
		b.opMiss++
	}
	return -1
}

// ************************************************************
//
// Quantification Cache
//

// quantset2cache takes a variable set, similar to the ones generated with
// Makeset, and marks its variables in quantset. It panics if n is not a
// conjunction of positive literals.
func (b *BDD) quantset2cache(n int) {
	b.quantsetID++
	if b.quantsetID == _MAXVAR {
		b.quantset = make([]int32, b.varnum)
		b.quantsetID = 1
	}
	b.quantlast = -1
	for i := n; i > 1; i = b.high(i) {
		if b.low(i) != 0 {
			panic(fmt.Sprintf("bdd: node %d is not a variable set", n))
		}
		b.quantset[b.level(i)] = b.quantsetID
		b.quantlast = b.level(i)
	}
}

// String prints information about the cache performance. Hit and miss count is
// given for the operator caches.
func (c cacheStat) String() string {
	res := fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d", c.opMiss)
	return res
}
