// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bdd defines a concrete type for Binary Decision Diagrams (BDD), a data
structure used to efficiently represent Boolean functions over a fixed set of
variables or, equivalently, sets of Boolean vectors with a fixed size.

# Basics

Each BDD has a fixed number of variables, Varnum, declared when it is
initialized (using the function New) and each variable is represented by an
(integer) index in the interval [0..Varnum), called a level. The order of the
variables is the order of the levels and it never changes. Variables can also
be given names, using the option Varnames, in which case they can be retrieved
with method Var.

Most operations over BDD return a Node; that is the index of a "vertex" in the
node table of the BDD that includes a variable level, and the index of the low
and high branch for this node. By convention, 1 (respectively 0) is the index
of the constant function True (respectively False).

# Canonicity

Nodes are hash-consed: the node table never contains two vertices with the
same level and the same successors, and no vertex has equal successors. Hence
two Boolean functions are equal if and only if they are represented by the same
Node, and testing equality (or emptiness) is a comparison between integers. All
the operation caches are keyed on node indices and rely on this property.

Nodes are never reclaimed. A Node stays valid, and means the same function, for
the whole lifetime of its BDD; the caches are therefore never invalidated,
except when they are resized.

# Use of build tags

We provide two possible implementations for the node table that can be
selected using build tags. Our default implementation (without build tag) uses
a standard Go runtime hashmap to encode the "unicity table". When building your
executable with the build tag `buddy`, the table switches to an implementation
that is very close to the one of the BuDDy library; based on a specialized
data-structure that mix a dynamic array with a hash table.

To get access to better statistics about caches, as well as to unlock logging
of some operations, you can also compile your executable with the build tag
`debug`.

# Errors

Using a Node that was not produced by the same BDD, a level outside of
[0..Varnum), an unknown variable name, or an inconsistent renaming of
variables are programming errors and raise a panic. The only recoverable error
is when the node table would grow above the limit set with option Maxnodesize.
In this case the operation returns False, the error is recorded in the BDD (see
methods Error and Errored) and all subsequent operations also return False.
*/
package bdd
