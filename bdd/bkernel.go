// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build buddy
// +build buddy

package bdd

import (
	"fmt"
	"log"
	"math"
	"unsafe"
)

// buddy implements the node table using the data structures found in the
// BuDDy library: a single array of nodes where the hash and next fields thread
// collision chains through the array. Slot hash of node h is the head of the
// chain for hash value h. Nodes are allocated in sequence and never freed.
type buddy struct {
	nodes        []buddynode // List of all the BDD nodes. Constants are always kept at index 0 and 1
	used         int         // Number of slots in use, constants included
	maxnodesize  int         // Maximum total number of nodes (0 if no limit)
	produced     int         // Total number of new nodes ever produced
	uniqueAccess int         // accesses to the unique node table
	uniqueChain  int         // iterations through the cache chains in the unique node table
	uniqueHit    int         // entries actually found in the the unique node table
	uniqueMiss   int         // entries not found in the the unique node table
	resizes      int         // number of reallocations of the node table
}

type buddynode struct {
	level int32 // Order of the variable in the BDD
	low   int   // Reference to the false branch
	high  int   // Reference to the true branch
	hash  int   // Index where to (possibly) find node with this hash value
	next  int   // Next index to check in case of a collision, 0 if last
}

func makekernel(c *configs) kernel {
	b := &buddy{maxnodesize: c.maxnodesize}
	nodesize := primeGte(c.nodesize)
	if b.maxnodesize > 0 && nodesize > b.maxnodesize {
		nodesize = b.maxnodesize
	}
	b.nodes = make([]buddynode, nodesize)
	b.nodes[0] = buddynode{level: int32(c.varnum), low: 0, high: 0}
	b.nodes[1] = buddynode{level: int32(c.varnum), low: 1, high: 1}
	b.used = 2
	return b
}

func (b *buddy) nodehash(level int32, low, high int) int {
	return _TRIPLE(int(level), low, high, len(b.nodes))
}

func (b *buddy) makenode(level int32, low, high int) (int, error) {
	if _DEBUG {
		b.uniqueAccess++
	}
	// check whether childs are equal
	if low == high {
		return low, nil
	}
	// otherwise try to find an existing node using the hash and next fields
	hash := b.nodehash(level, low, high)
	for res := b.nodes[hash].hash; res != 0; res = b.nodes[res].next {
		if b.nodes[res].level == level && b.nodes[res].low == low && b.nodes[res].high == high {
			if _DEBUG {
				b.uniqueHit++
			}
			return res, nil
		}
		if _DEBUG {
			b.uniqueChain++
		}
	}
	if _DEBUG {
		b.uniqueMiss++
	}
	var err error
	if b.used == len(b.nodes) {
		if err = b.noderesize(); err != errResize {
			return -1, err
		}
		hash = b.nodehash(level, low, high)
	}
	res := b.used
	b.used++
	b.produced++
	b.nodes[res].level = level
	b.nodes[res].low = low
	b.nodes[res].high = high
	b.nodes[res].next = b.nodes[hash].hash
	b.nodes[hash].hash = res
	return res, err
}

// noderesize grows the node array and rebuilds the collision chains, since
// the hash values depend on the size of the array.
func (b *buddy) noderesize() error {
	oldsize := len(b.nodes)
	if (b.maxnodesize > 0) && (oldsize >= b.maxnodesize) {
		return ErrMemory
	}
	nodesize := oldsize << 1
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	}
	if (b.maxnodesize > 0) && (nodesize > b.maxnodesize) {
		nodesize = b.maxnodesize
	}
	nodesize = primeLte(nodesize)
	if nodesize <= oldsize {
		return ErrMemory
	}
	if _LOGLEVEL > 0 {
		log.Printf("start resize: %d\n", oldsize)
	}
	tmp := b.nodes
	b.nodes = make([]buddynode, nodesize)
	for n := 0; n < b.used; n++ {
		b.nodes[n].level = tmp[n].level
		b.nodes[n].low = tmp[n].low
		b.nodes[n].high = tmp[n].high
	}
	for n := b.used - 1; n > 1; n-- {
		hash := b.nodehash(b.nodes[n].level, b.nodes[n].low, b.nodes[n].high)
		b.nodes[n].next = b.nodes[hash].hash
		b.nodes[hash].hash = n
	}
	b.resizes++
	if _LOGLEVEL > 0 {
		log.Printf("end resize: %d\n", len(b.nodes))
	}
	return errResize
}

func (b *buddy) size() int {
	return b.used
}

func (b *buddy) level(n int) int32 {
	return b.nodes[n].level
}

func (b *buddy) low(n int) int {
	return b.nodes[n].low
}

func (b *buddy) high(n int) int {
	return b.nodes[n].high
}

// stats returns information about the implementation
func (b *buddy) stats() string {
	res := fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(len(b.nodes)-b.used) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", len(b.nodes)-b.used, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", b.used, (100.0 - r))
	res += fmt.Sprintf("Size:       %s\n", humanSize(len(b.nodes), unsafe.Sizeof(buddynode{})))
	res += fmt.Sprintf("Resizes:    %d\n", b.resizes)
	if _DEBUG {
		res += "==============\n"
		res += fmt.Sprintf("Unique Access:  %d\n", b.uniqueAccess)
		res += fmt.Sprintf("Unique Chain:   %d\n", b.uniqueChain)
		res += fmt.Sprintf("Unique Hit:     %d\n", b.uniqueHit)
		res += fmt.Sprintf("Unique Miss:    %d\n", b.uniqueMiss)
	}
	return res
}
