// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package ilp defines integer linear programs over binary variables and an
interface for the solvers that can decide them.

A Model has a set of named 0-1 variables, a list of linear constraints with
integer coefficients, and a linear objective to minimize. A Solver returns
either an optimal assignment of the variables or the status Infeasible.

We provide two implementations of the Solver interface. Gophersat translates
the model into a weighted partial MaxSAT problem with pseudo-Boolean
constraints and uses the optimization procedure of the gophersat solver.
Gini encodes each constraint with a sorting network, from package
github.com/go-air/gini/logic, and minimizes the objective by solving a
sequence of decision problems with decreasing cost bounds.
*/
package ilp
