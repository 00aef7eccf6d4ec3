// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ilp

import (
	"fmt"
	"math/rand"
	"testing"
)

var solvers = []struct {
	name string
	s    Solver
}{
	{"gophersat", Gophersat{}},
	{"gini", Gini{}},
}

// bruteforce returns the optimal cost of m, and false if m is infeasible.
func bruteforce(m *Model) (int, bool) {
	n := m.NumVars()
	best, found := 0, false
	values := make(Assignment, n)
	for k := 0; k < 1<<n; k++ {
		for v := range values {
			values[v] = (k>>v)&1 == 1
		}
		if !m.Satisfies(values) {
			continue
		}
		if c := m.Cost(values); !found || c < best {
			best, found = c, true
		}
	}
	return best, found
}

func randomModel(rnd *rand.Rand, nvars, nconstrs int) *Model {
	m := NewModel()
	for k := 0; k < nvars; k++ {
		m.NewVar(fmt.Sprintf("v%d", k))
	}
	for k := 0; k < nconstrs; k++ {
		var terms []Term
		for v := 0; v < nvars; v++ {
			if rnd.Intn(2) == 0 {
				terms = append(terms, Term{Var(v), rnd.Intn(5) - 2})
			}
		}
		m.Add(Constraint{
			Name:  fmt.Sprintf("c%d", k),
			Terms: terms,
			Sense: Sense(rnd.Intn(3)),
			RHS:   rnd.Intn(5) - 2,
		})
	}
	var obj []Term
	for v := 0; v < nvars; v++ {
		obj = append(obj, Term{Var(v), rnd.Intn(7) - 3})
	}
	m.Minimize(obj...)
	return m
}

func TestSolversRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for round := 0; round < 100; round++ {
		m := randomModel(rnd, 1+rnd.Intn(6), rnd.Intn(5))
		expected, feasible := bruteforce(m)
		for _, sv := range solvers {
			res, err := sv.s.Solve(m)
			if err != nil {
				t.Fatalf("%s: %s\n%s", sv.name, err, m)
			}
			if (res.Status == Feasible) != feasible {
				t.Fatalf("%s: expected feasible %v, actual %s\n%s", sv.name, feasible, res.Status, m)
			}
			if feasible && res.Cost != expected {
				t.Errorf("%s: expected cost %d, actual %d\n%s", sv.name, expected, res.Cost, m)
			}
		}
	}
}

func TestSolversSpecialCases(t *testing.T) {
	empty := NewModel()
	unused := NewModel()
	unused.NewVar("x")
	marked := NewModel()
	x := marked.NewVar("x")
	marked.SetInfeasible("0 <= -1")
	fixed := NewModel()
	y := fixed.NewVar("y")
	fixed.NewVar("z")
	fixed.Fix(y, true)
	fixed.Minimize(Term{y, 2})
	var specialTests = []struct {
		name   string
		m      *Model
		status Status
		cost   int
	}{
		{"empty", empty, Feasible, 0},
		{"unused variable", unused, Feasible, 0},
		{"marked infeasible", marked, Infeasible, 0},
		{"fixed", fixed, Feasible, 2},
	}
	_ = x
	for _, tt := range specialTests {
		for _, sv := range solvers {
			res, err := sv.s.Solve(tt.m)
			if err != nil {
				t.Fatalf("%s, %s: %s", sv.name, tt.name, err)
			}
			if res.Status != tt.status || (res.Status == Feasible && res.Cost != tt.cost) {
				t.Errorf("%s, %s: expected %s (%d), actual %s (%d)", sv.name, tt.name, tt.status, tt.cost, res.Status, res.Cost)
			}
			if res.Status == Feasible && len(res.Values) != tt.m.NumVars() {
				t.Errorf("%s, %s: wrong number of values", sv.name, tt.name)
			}
		}
	}
}

// TestAtMostOne checks a model with a unique optimum: choose exactly one of
// four items with the lowest weight, with a forbidden pair.
func TestAtMostOne(t *testing.T) {
	m := NewModel()
	var terms []Term
	for k := 0; k < 4; k++ {
		terms = append(terms, Term{m.NewVar(fmt.Sprintf("i%d", k)), 1})
	}
	m.Add(Constraint{Name: "one", Terms: terms, Sense: Equal, RHS: 1})
	m.Add(Constraint{Name: "not2", Terms: []Term{{2, 1}}, Sense: LessEq, RHS: 0})
	m.Minimize(Term{0, 5}, Term{1, 4}, Term{2, 1}, Term{3, 3})
	for _, sv := range solvers {
		res, err := sv.s.Solve(m)
		if err != nil {
			t.Fatal(err)
		}
		if res.Status != Feasible || !res.Values[3] || res.Cost != 3 {
			t.Errorf("%s: unexpected result %v", sv.name, res)
		}
	}
}

// TestExclusionCuts excludes every assignment of six variables but one, with
// one constraint per assignment, so that the only solution is the remaining
// one.
func TestExclusionCuts(t *testing.T) {
	const nvars, kept = 6, 45
	m := NewModel()
	var obj []Term
	for v := 0; v < nvars; v++ {
		obj = append(obj, Term{m.NewVar(fmt.Sprintf("x%d", v)), 1})
	}
	m.Minimize(obj...)
	for k := 0; k < 1<<nvars; k++ {
		if k == kept {
			continue
		}
		terms := make([]Term, nvars)
		rhs := 1
		for v := 0; v < nvars; v++ {
			if (k>>v)&1 == 1 {
				terms[v] = Term{Var(v), -1}
				rhs--
			} else {
				terms[v] = Term{Var(v), 1}
			}
		}
		m.Add(Constraint{Name: fmt.Sprintf("cut%d", k), Terms: terms, Sense: GreaterEq, RHS: rhs})
	}
	for _, sv := range solvers {
		res, err := sv.s.Solve(m)
		if err != nil {
			t.Fatal(err)
		}
		if res.Status != Feasible {
			t.Fatalf("%s: model should be feasible", sv.name)
		}
		for v := 0; v < nvars; v++ {
			if res.Values[v] != ((kept>>v)&1 == 1) {
				t.Errorf("%s: unexpected solution %v", sv.name, res.Values)
				break
			}
		}
	}
	m.Add(Constraint{Name: "last", Terms: obj, Sense: LessEq, RHS: 2})
	for _, sv := range solvers {
		res, err := sv.s.Solve(m)
		if err != nil {
			t.Fatal(err)
		}
		if res.Status != Infeasible {
			t.Errorf("%s: model should be infeasible, got %v", sv.name, res.Values)
		}
	}
}
