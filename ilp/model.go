// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ilp

import (
	"fmt"
	"strings"
)

// Var is a binary variable of a Model. Variables are numbered in their order
// of creation, starting from 0.
type Var int

// Term is a variable with its coefficient in a linear expression.
type Term struct {
	Var   Var
	Coeff int
}

// Sense is the comparison operator of a constraint.
type Sense int

const (
	GreaterEq Sense = iota // sum >= rhs
	LessEq                 // sum <= rhs
	Equal                  // sum == rhs
)

func (s Sense) String() string {
	switch s {
	case GreaterEq:
		return ">="
	case LessEq:
		return "<="
	case Equal:
		return "="
	}
	return "?"
}

// Constraint is a linear constraint of the form sum(Terms) Sense RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   int
}

// Status is the result of a call to Solve.
type Status int

const (
	Infeasible Status = iota
	Feasible
)

func (s Status) String() string {
	if s == Feasible {
		return "feasible"
	}
	return "infeasible"
}

// Assignment gives a value to each variable of a model, indexed by Var.
type Assignment []bool

// Result is the answer of a Solver. When the status is Feasible, Values is an
// assignment satisfying all the constraints that minimizes the objective and
// Cost is the value of the objective.
type Result struct {
	Status Status
	Values Assignment
	Cost   int
}

// Solver is the interface of ILP oracles.
type Solver interface {
	Solve(m *Model) (Result, error)
}

// Model is an integer linear program over binary variables. The objective is
// always minimized.
type Model struct {
	names       []string
	index       map[string]Var
	Constraints []Constraint
	Objective   []Term
	infeasible  string // reason why the model is trivially infeasible
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{index: make(map[string]Var)}
}

// NewVar adds a new binary variable to the model. It panics if name is
// already used.
func (m *Model) NewVar(name string) Var {
	if _, ok := m.index[name]; ok {
		panic(fmt.Sprintf("ilp: duplicate variable %q", name))
	}
	v := Var(len(m.names))
	m.names = append(m.names, name)
	m.index[name] = v
	return v
}

// Lookup returns the variable with the given name.
func (m *Model) Lookup(name string) (Var, bool) {
	v, ok := m.index[name]
	return v, ok
}

// Name returns the name of variable v.
func (m *Model) Name(v Var) string {
	return m.names[v]
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	return len(m.names)
}

// Add appends constraint c to the model. It panics if c uses a variable that
// is not in the model.
func (m *Model) Add(c Constraint) {
	for _, t := range c.Terms {
		if t.Var < 0 || int(t.Var) >= len(m.names) {
			panic(fmt.Sprintf("ilp: unknown variable %d in constraint %s", t.Var, c.Name))
		}
	}
	m.Constraints = append(m.Constraints, c)
}

// Fix adds a constraint forcing the value of variable v.
func (m *Model) Fix(v Var, value bool) {
	rhs := 0
	if value {
		rhs = 1
	}
	m.Add(Constraint{Name: "fix_" + m.names[v], Terms: []Term{{v, 1}}, Sense: Equal, RHS: rhs})
}

// Minimize sets the objective of the model.
func (m *Model) Minimize(terms ...Term) {
	m.Objective = terms
}

// SetInfeasible marks the model as infeasible, whatever its constraints. This
// is used when a constraint of the problem cannot be expressed with binary
// variables, like 0 <= -1.
func (m *Model) SetInfeasible(reason string) {
	if m.infeasible == "" {
		m.infeasible = reason
	}
}

// Infeasible reports whether the model was marked infeasible and why.
func (m *Model) Infeasible() (string, bool) {
	return m.infeasible, m.infeasible != ""
}

// Satisfies reports whether values satisfies all the constraints of m.
func (m *Model) Satisfies(values Assignment) bool {
	if m.infeasible != "" || len(values) != len(m.names) {
		return false
	}
	for _, c := range m.Constraints {
		sum := eval(c.Terms, values)
		switch {
		case c.Sense == GreaterEq && sum < c.RHS:
			return false
		case c.Sense == LessEq && sum > c.RHS:
			return false
		case c.Sense == Equal && sum != c.RHS:
			return false
		}
	}
	return true
}

// Cost returns the value of the objective for values.
func (m *Model) Cost(values Assignment) int {
	return eval(m.Objective, values)
}

func eval(terms []Term, values Assignment) int {
	sum := 0
	for _, t := range terms {
		if values[t.Var] {
			sum += t.Coeff
		}
	}
	return sum
}

func (m *Model) String() string {
	var sb strings.Builder
	expr := func(terms []Term) {
		if len(terms) == 0 {
			sb.WriteString("0")
		}
		for k, t := range terms {
			if k > 0 {
				sb.WriteString(" + ")
			}
			if t.Coeff != 1 {
				fmt.Fprintf(&sb, "%d ", t.Coeff)
			}
			sb.WriteString(m.names[t.Var])
		}
	}
	sb.WriteString("min: ")
	expr(m.Objective)
	sb.WriteString("\n")
	if m.infeasible != "" {
		fmt.Fprintf(&sb, "infeasible: %s\n", m.infeasible)
	}
	for _, c := range m.Constraints {
		if c.Name != "" {
			fmt.Fprintf(&sb, "%s: ", c.Name)
		}
		expr(c.Terms)
		fmt.Fprintf(&sb, " %s %d\n", c.Sense, c.RHS)
	}
	return sb.String()
}
