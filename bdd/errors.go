// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"log"
)

// Error returns the error status of the BDD. We return an empty string if
// there are no errors.
func (b *BDD) Error() string {
	if b.err == nil {
		return ""
	}
	return b.err.Error()
}

// Errored returns true if there was an error during a computation.
func (b *BDD) Errored() bool {
	return b.err != nil
}

// Err returns the error recorded in the BDD, or nil. The result wraps
// ErrMemory when the node table could not grow.
func (b *BDD) Err() error {
	return b.err
}

func (b *BDD) seterror(format string, a ...interface{}) {
	if b.err != nil {
		b.err = fmt.Errorf(format+"; %w", append(a, b.err)...)
		return
	}
	b.err = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(b.err)
	}
}

// outOfMemory is used to unwind the recursion of an operation when the kernel
// cannot allocate a new node. It is recovered in method guard.
type outOfMemory struct {
	err error
}

// guard runs the internal operation f and converts its result into a Node. If
// the BDD is already in an error state we do not start the computation.
func (b *BDD) guard(op string, f func() int) (res Node) {
	if b.err != nil {
		return bddzero
	}
	defer func() {
		if r := recover(); r != nil {
			oom, ok := r.(outOfMemory)
			if !ok {
				panic(r)
			}
			b.seterror("%s: %w", op, oom.err)
			res = bddzero
		}
	}()
	return Node(f())
}
