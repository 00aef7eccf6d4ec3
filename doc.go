// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package safenet provides symbolic analysis of 1-safe Petri nets using Binary
Decision Diagrams.

The set of reachable markings of a net is computed with ComputeReachable, as a
least fixpoint over a BDD with two variables for each place: one for its
current value and one for its value after firing a transition. Variables are
interleaved, with the current variable of place i at level 2i and its next
variable at level 2i+1. The result can be used to search for a reachable
deadlock, with FindDeadlock, or for a reachable marking maximizing a linear
objective, with Optimize.

FindDeadlock combines an integer linear program, whose solutions are exactly
the dead markings of the net, with the set of reachable markings: each
solution of the program that is not reachable is excluded with a new
constraint and the program is solved again.

Basics

	net, err := petri.LoadPNML("model.pnml")
	if err != nil {
		log.Fatal(err)
	}
	r, err := safenet.ComputeReachable(net)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(r.Count)
	m, found, err := safenet.FindDeadlock(r)

Nets with a few dozens of places can be handled without problems. The explicit
explorations of package petri give the same results on small nets and are used
as a reference in our tests.
*/
package safenet
