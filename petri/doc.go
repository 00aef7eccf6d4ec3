// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package petri defines 1-safe Place/Transition nets: places, transitions, arcs
and markings, together with the firing rule, a loader for nets in the PNML
format and explicit (enumerative) exploration of the state space.

A marking of a 1-safe net is a vector of Booleans, one for each place, in the
order of the places of the net. A transition t is enabled at marking m when
every place in its preset is marked and no place in its postset, except those
also in its preset, is marked; so that firing t never puts a second token in a
place. Firing t removes the token in every place of its preset and then adds a
token in every place of its postset.

The explicit explorations, BFS and DFS, are used as a reference for the
symbolic algorithms of package safenet. They should only be used on small
nets.
*/
package petri
