// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build !buddy
// +build !buddy

package bdd

import (
	"fmt"
	"log"
	"math"
	"unsafe"
)

// hudd implements the node table using the runtime hashmap. The unique table
// associates each triplet (level, low, high) to a single index in the nodes
// table. We use more space than with the buddy kernel but a benefit is that we
// can easily migrate to a concurrency-safe hashmap if we want to test
// concurrent data structures.
type hudd struct {
	nodes        []huddnode       // List of all the BDD nodes. Constants are always kept at index 0 and 1
	unique       map[huddnode]int // Unicity table, used to associate each triplet to a single node
	maxnodesize  int              // Maximum total number of nodes (0 if no limit)
	produced     int              // Total number of new nodes ever produced
	uniqueAccess int              // accesses to the unique node table
	uniqueHit    int              // entries actually found in the the unique node table
	uniqueMiss   int              // entries not found in the the unique node table
	resizes      int              // number of reallocations of the node table
}

type huddnode struct {
	level int32 // Order of the variable in the BDD
	low   int   // Reference to the false branch
	high  int   // Reference to the true branch
}

func makekernel(c *configs) kernel {
	b := &hudd{maxnodesize: c.maxnodesize}
	nodesize := c.nodesize
	if b.maxnodesize > 0 && nodesize > b.maxnodesize {
		nodesize = b.maxnodesize
	}
	b.nodes = make([]huddnode, 2, nodesize)
	b.unique = make(map[huddnode]int, nodesize)
	// creating bddzero and bddone. We do not add them to the unique table.
	b.nodes[0] = huddnode{level: int32(c.varnum), low: 0, high: 0}
	b.nodes[1] = huddnode{level: int32(c.varnum), low: 1, high: 1}
	return b
}

func (b *hudd) makenode(level int32, low int, high int) (int, error) {
	if _DEBUG {
		b.uniqueAccess++
	}
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low, nil
	}
	key := huddnode{level: level, low: low, high: high}
	if res, ok := b.unique[key]; ok {
		if _DEBUG {
			b.uniqueHit++
		}
		return res, nil
	}
	if _DEBUG {
		b.uniqueMiss++
	}
	var err error
	if len(b.nodes) == cap(b.nodes) {
		if err = b.noderesize(); err != errResize {
			return -1, err
		}
	}
	res := len(b.nodes)
	b.nodes = append(b.nodes, key)
	b.unique[key] = res
	b.produced++
	return res, err
}

// noderesize doubles the capacity of the node table, within the limit set by
// maxnodesize. Nodes never move, so existing indices stay valid.
func (b *hudd) noderesize() error {
	oldsize := cap(b.nodes)
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
	if nodesize <= oldsize {
		return ErrMemory
	}
	if _LOGLEVEL > 0 {
		log.Printf("start resize: %d\n", oldsize)
	}
	tmp := b.nodes
	b.nodes = make([]huddnode, len(tmp), nodesize)
	copy(b.nodes, tmp)
	b.resizes++
	if _LOGLEVEL > 0 {
		log.Printf("end resize: %d\n", nodesize)
	}
	return errResize
}

func (b *hudd) size() int {
	return len(b.nodes)
}

func (b *hudd) level(n int) int32 {
	return b.nodes[n].level
}

func (b *hudd) low(n int) int {
	return b.nodes[n].low
}

func (b *hudd) high(n int) int {
	return b.nodes[n].high
}

// stats returns information about the implementation
func (b *hudd) stats() string {
	res := fmt.Sprintf("Allocated:  %d\n", cap(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(cap(b.nodes)-len(b.nodes)) / float64(cap(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", cap(b.nodes)-len(b.nodes), r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes), (100.0 - r))
	res += fmt.Sprintf("Size:       %s\n", humanSize(cap(b.nodes), unsafe.Sizeof(huddnode{})))
	res += fmt.Sprintf("Resizes:    %d\n", b.resizes)
	if _DEBUG {
		res += "==============\n"
		res += fmt.Sprintf("Unique Access:  %d\n", b.uniqueAccess)
		res += fmt.Sprintf("Unique Hit:     %d\n", b.uniqueHit)
		res += fmt.Sprintf("Unique Miss:    %d\n", b.uniqueMiss)
	}
	return res
}
