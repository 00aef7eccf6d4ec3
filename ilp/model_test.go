// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ilp

import (
	"strings"
	"testing"
)

func TestTogeq(t *testing.T) {
	var togeqTests = []struct {
		terms    []Term
		atLeast  int
		expected string
	}{
		// x0 + x1 >= 1
		{[]Term{{0, 1}, {1, 1}}, 1, "1*x0 + 1*x1 >= 1"},
		// -x0 - x1 >= -1, that is at most one
		{[]Term{{0, -1}, {1, -1}}, -1, "1*~x0 + 1*~x1 >= 1"},
		// 2 x0 - 3 x1 >= 0
		{[]Term{{0, 2}, {1, -3}}, 0, "2*x0 + 3*~x1 >= 3"},
		// duplicated terms are merged
		{[]Term{{1, 1}, {0, 2}, {1, -1}}, 1, "2*x0 >= 1"},
	}
	for _, tt := range togeqTests {
		g := togeq(tt.terms, tt.atLeast)
		var parts []string
		for k, l := range g.lits {
			s := "x"
			if l.neg {
				s = "~x"
			}
			parts = append(parts, string(rune('0'+g.coeffs[k]))+"*"+s+string(rune('0'+int(l.v))))
		}
		actual := strings.Join(parts, " + ") + " >= " + string(rune('0'+g.atLeast))
		if actual != tt.expected {
			t.Errorf("togeq(%v, %d): expected %q, actual %q", tt.terms, tt.atLeast, tt.expected, actual)
		}
	}
}

func TestNormalize(t *testing.T) {
	m := NewModel()
	x := m.NewVar("x")
	y := m.NewVar("y")
	// trivially true
	m.Add(Constraint{Terms: []Term{{x, 1}}, Sense: GreaterEq, RHS: 0})
	m.Add(Constraint{Terms: []Term{{x, 1}, {y, 1}}, Sense: LessEq, RHS: 2})
	if g, ok := normalize(m); !ok || len(g) != 0 {
		t.Errorf("expected no constraints, got %v", g)
	}
	m.Add(Constraint{Terms: []Term{{x, 1}, {y, 1}}, Sense: Equal, RHS: 1})
	if g, ok := normalize(m); !ok || len(g) != 2 {
		t.Errorf("expected two constraints, got %v", g)
	}
	m.Add(Constraint{Terms: []Term{{x, 1}, {y, 1}}, Sense: GreaterEq, RHS: 3})
	if _, ok := normalize(m); ok {
		t.Errorf("expected an infeasible model")
	}
}

func TestModel(t *testing.T) {
	m := NewModel()
	x := m.NewVar("x")
	y := m.NewVar("y")
	if v, ok := m.Lookup("y"); !ok || v != y || m.Name(v) != "y" {
		t.Errorf("unexpected lookup of y")
	}
	m.Add(Constraint{Name: "c", Terms: []Term{{x, 1}, {y, 2}}, Sense: LessEq, RHS: 2})
	m.Fix(x, true)
	m.Minimize(Term{x, 1}, Term{y, -1})
	if !m.Satisfies(Assignment{true, false}) || m.Satisfies(Assignment{true, true}) || m.Satisfies(Assignment{false, false}) {
		t.Errorf("unexpected result of Satisfies")
	}
	if m.Cost(Assignment{true, true}) != 0 {
		t.Errorf("unexpected cost")
	}
	s := m.String()
	if !strings.Contains(s, "min: x + -1 y") || !strings.Contains(s, "c: x + 2 y <= 2") {
		t.Errorf("unexpected model:\n%s", s)
	}
	m.SetInfeasible("0 <= -1")
	if reason, ok := m.Infeasible(); !ok || reason != "0 <= -1" {
		t.Errorf("model should be infeasible")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("NewVar with a duplicate name should panic")
		}
	}()
	m.NewVar("x")
}

func TestIsClause(t *testing.T) {
	var clauseTests = []struct {
		terms    []Term
		atLeast  int
		expected bool
	}{
		{[]Term{{0, 1}, {1, 1}}, 1, true},
		{[]Term{{0, -1}, {1, 1}}, 0, true},
		{[]Term{{0, 2}, {1, 3}}, 2, true},
		{[]Term{{0, 1}, {1, 1}}, 2, false},
		{[]Term{{0, 1}, {1, 2}}, 2, false},
		{[]Term{{0, 1}}, 0, false},
	}
	for _, tt := range clauseTests {
		if actual := togeq(tt.terms, tt.atLeast).isClause(); actual != tt.expected {
			t.Errorf("isClause(%v >= %d): expected %v, actual %v", tt.terms, tt.atLeast, tt.expected, actual)
		}
	}
}
