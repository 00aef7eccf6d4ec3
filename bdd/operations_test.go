// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

//********************************************************************************************

func TestMinus(t *testing.T) {
	var minusTests = []struct {
		p, q, r  int32
		expected int32
	}{
		{3, 2, 3, 2},
		{4, 4, 4, 4},
		{2, 3, 3, 2},
		{3, 2, 2, 2},
		{3, 3, 2, 2},
		{1, 2, 3, 1},
	}
	for _, tt := range minusTests {
		actual := min3(tt.p, tt.q, tt.r)
		if actual != tt.expected {
			t.Errorf("minus3(%d, %d, %d): expected %d, actual %d", tt.p, tt.q, tt.r, tt.expected, actual)
		}
	}
}

//********************************************************************************************

func TestIte_1(t *testing.T) {
	bdd, _ := New(4, Nodesize(5000), Cachesize(50))
	n1 := bdd.Makeset([]int{0, 2, 3})
	n2 := bdd.Makeset([]int{0, 3})
	actual := bdd.Equiv(bdd.Ite(n1, n2, bdd.Not(n2)), bdd.Or(bdd.And(n1, n2), bdd.And(bdd.Not(n1), bdd.Not(n2))))
	if actual != bdd.True() {
		t.Errorf("ite(f,g,h) <=> (f or g) and (-f or h): expected true, actual false")
	}
}

//********************************************************************************************

// TestOperations implements the same tests than the bddtest program in the
// Buddy distribution. It uses function Allsat for checking that all assignments
// are detected.

func TestOperations(t *testing.T) {
	bdd, _ := New(4, Nodesize(1000), Cachesize(1000))
	varnum := 4

	test1_check := func(x Node) {
		allsatBDD := x
		allsatSumBDD := bdd.False()
		// Calculate whole set of asignments and remove all assignments
		// from original set
		bdd.Allsat(x, func(varset []int) error {
			x := bdd.True()
			for k, v := range varset {
				switch v {
				case 0:
					x = bdd.And(x, bdd.NIthvar(k))
				case 1:
					x = bdd.And(x, bdd.Ithvar(k))
				}
			}
			// Sum up all assignments
			allsatSumBDD = bdd.Or(allsatSumBDD, x)
			// Remove assignment from initial set
			allsatBDD = bdd.Apply(allsatBDD, x, OPdiff)
			return nil
		})

		// Now the summed set should be equal to the original set and the
		// subtracted set should be empty
		if !bdd.Equal(allsatSumBDD, x) {
			t.Errorf("AllSat sum is not the initial BDD (%s)", bdd.Print(x))
		}
		if !bdd.Equal(allsatBDD, bdd.False()) {
			t.Errorf("AllSat is not False (%s)", bdd.Print(x))
		}
	}

	a := bdd.Ithvar(0)
	b := bdd.Ithvar(1)
	c := bdd.Ithvar(2)
	d := bdd.Ithvar(3)
	na := bdd.NIthvar(0)
	nb := bdd.NIthvar(1)
	nc := bdd.NIthvar(2)
	nd := bdd.NIthvar(3)

	test1_check(bdd.True())

	test1_check(bdd.False())

	// a & b | !a & !b
	test1_check(bdd.Or(bdd.And(a, b), bdd.And(na, nb)))

	// a & b | c & d
	test1_check(bdd.Or(bdd.And(a, b), bdd.And(c, d)))

	// a & !b | a & !d | a & b & !c
	test1_check(bdd.Or(bdd.And(a, nb), bdd.And(a, nd), bdd.And(a, b, nc)))

	for i := 0; i < varnum; i++ {
		test1_check(bdd.Ithvar(i))
		test1_check(bdd.NIthvar(i))
	}

	rnd := rand.New(rand.NewSource(1))
	set := bdd.True()
	for i := 0; i < 50; i++ {
		v := rnd.Intn(varnum)
		if rnd.Intn(2) == 0 {
			set = bdd.Or(set, bdd.And(bdd.Ithvar(v), bdd.NIthvar(rnd.Intn(varnum))))
		} else {
			set = bdd.And(set, bdd.Or(bdd.NIthvar(v), bdd.Ithvar(rnd.Intn(varnum))))
		}
		test1_check(set)
	}
}

//********************************************************************************************

// eval computes the value of n for the assignment val, by following a path in
// the diagram.
func eval(b *BDD, n Node, val []bool) bool {
	for n > 1 {
		if val[b.Label(n)] {
			n = b.High(n)
		} else {
			n = b.Low(n)
		}
	}
	return n == bddone
}

// TestApplyTruthTables checks every operator against its truth table on all
// the assignments of two random functions.
func TestApplyTruthTables(t *testing.T) {
	varnum := 5
	b, _ := New(varnum)
	rnd := rand.New(rand.NewSource(42))
	random := func() Node {
		res := b.False()
		for k := 0; k < 6; k++ {
			cube := b.True()
			for v := 0; v < varnum; v++ {
				switch rnd.Intn(3) {
				case 0:
					cube = b.And(cube, b.Ithvar(v))
				case 1:
					cube = b.And(cube, b.NIthvar(v))
				}
			}
			res = b.Or(res, cube)
		}
		return res
	}
	for round := 0; round < 20; round++ {
		f, g := random(), random()
		for op := OPand; op <= OPinvimp; op++ {
			res := b.Apply(f, g, op)
			val := make([]bool, varnum)
			for k := 0; k < 1<<varnum; k++ {
				for v := range val {
					val[v] = (k>>v)&1 == 1
				}
				fv, gv := 0, 0
				if eval(b, f, val) {
					fv = 1
				}
				if eval(b, g, val) {
					gv = 1
				}
				if eval(b, res, val) != (opres[op][fv][gv] == 1) {
					t.Fatalf("wrong result for %s(%s, %s) on %v", op, b.Print(f), b.Print(g), val)
				}
			}
		}
	}
}

// TestCanonicity checks that equivalent formulas built in different ways are
// the same node.
func TestCanonicity(t *testing.T) {
	b, _ := New(3)
	x, y, z := b.Ithvar(0), b.Ithvar(1), b.Ithvar(2)
	// De Morgan
	if b.Not(b.And(x, y)) != b.Or(b.Not(x), b.Not(y)) {
		t.Error("not(x & y) != !x | !y")
	}
	// distributivity
	if b.And(x, b.Or(y, z)) != b.Or(b.And(x, y), b.And(x, z)) {
		t.Error("x & (y | z) != (x & y) | (x & z)")
	}
	// contradiction and excluded middle
	if !b.IsZero(b.And(x, b.Not(x))) {
		t.Error("x & !x is not False")
	}
	if !b.IsOne(b.Or(z, b.NIthvar(2))) {
		t.Error("z | !z is not True")
	}
	if b.Not(b.Not(y)) != y {
		t.Error("double negation")
	}
	if b.Imp(x, y) != b.Apply(y, x, OPinvimp) {
		t.Error("x => y != y <= x")
	}
	// no node has equal successors
	b.Allnodes(func(id, level, low, high int) error {
		if id > 1 && low == high {
			t.Errorf("node %d has equal successors", id)
		}
		return nil
	})
}

func TestExist(t *testing.T) {
	b, _ := New(4)
	x := []Node{b.Ithvar(0), b.Ithvar(1), b.Ithvar(2), b.Ithvar(3)}
	f := b.Or(b.And(x[0], x[1]), b.And(x[2], b.Not(x[3])))
	if actual := b.Exist(f, b.Makeset([]int{1})); actual != b.Or(x[0], b.And(x[2], b.Not(x[3]))) {
		t.Errorf("Exist x1: unexpected result %s", b.Print(actual))
	}
	if actual := b.Exist(f, b.Makeset([]int{2, 3})); actual != b.True() {
		t.Errorf("Exist x2, x3: unexpected result %s", b.Print(actual))
	}
	if actual := b.Exist(f, b.True()); actual != f {
		t.Errorf("Exist on empty set should be the identity")
	}
	// AppEx must agree with Apply followed by Exist
	g := b.Or(b.Not(x[1]), x[3])
	varset := b.Makeset([]int{1, 3})
	for op := OPand; op <= OPnand; op++ {
		expected := b.Exist(b.Apply(f, g, op), varset)
		if actual := b.AppEx(f, g, op, varset); actual != expected {
			t.Errorf("AppEx(%s): expected %s, actual %s", op, b.Print(expected), b.Print(actual))
		}
	}
}

func TestMakeset(t *testing.T) {
	b, _ := New(6)
	set := b.Makeset([]int{4, 1, 3, 1})
	if set != b.And(b.Ithvar(1), b.Ithvar(3), b.Ithvar(4)) {
		t.Errorf("Makeset is not the conjunction of its variables")
	}
	actual := fmt.Sprint(b.Scanset(set))
	if actual != "[1 3 4]" {
		t.Errorf("Scanset: expected [1 3 4], actual %s", actual)
	}
	if b.Scanset(b.Makeset(nil)) != nil {
		t.Errorf("Scanset of empty set should be nil")
	}
}

func TestRestrict(t *testing.T) {
	b, _ := New(4)
	x := []Node{b.Ithvar(0), b.Ithvar(1), b.Ithvar(2), b.Ithvar(3)}
	f := b.Or(b.And(x[0], x[1]), b.And(x[2], b.Not(x[3])))
	var restrictTests = []struct {
		cube     Node
		expected Node
	}{
		{b.True(), f},
		{x[0], b.Or(x[1], b.And(x[2], b.Not(x[3])))},
		{b.And(x[0], x[1]), b.True()},
		{b.And(b.NIthvar(0), b.NIthvar(2)), b.False()},
		{b.And(b.NIthvar(0), x[2]), b.Not(x[3])},
		{b.And(x[0], x[1], x[2], x[3]), b.True()},
	}
	for _, tt := range restrictTests {
		if actual := b.Restrict(f, tt.cube); actual != tt.expected {
			t.Errorf("Restrict by %s: expected %s, actual %s", b.Print(tt.cube), b.Print(tt.expected), b.Print(actual))
		}
	}
	defer func() {
		if recover() == nil {
			t.Errorf("Restrict by a non-cube should panic")
		}
	}()
	b.Restrict(f, b.Or(x[0], x[1]))
}

func TestReplace(t *testing.T) {
	b, _ := New(4, Varnames("p", "p'", "q", "q'"))
	// swap current and next for the formula p' & !q'
	r, err := b.NewRenamer(map[string]string{"p'": "p", "q'": "q"})
	if err != nil {
		t.Fatal(err)
	}
	f := b.And(b.Var("p'"), b.NVar("q'"))
	if actual := b.Replace(f, r); actual != b.And(b.Var("p"), b.NVar("q")) {
		t.Errorf("Replace: unexpected result %s", b.Print(actual))
	}
	// moving a variable below another one
	r2, err := b.NewReplacer([]int{0}, []int{3})
	if err != nil {
		t.Fatal(err)
	}
	g := b.And(b.Ithvar(0), b.NIthvar(2))
	if actual := b.Replace(g, r2); actual != b.And(b.NIthvar(2), b.Ithvar(3)) {
		t.Errorf("Replace: unexpected result %s", b.Print(actual))
	}
	if _, err := b.NewReplacer([]int{0, 1}, []int{1}); err == nil {
		t.Errorf("NewReplacer should fail with slices of different length")
	}
	if _, err := b.NewReplacer([]int{0, 0}, []int{1, 2}); err == nil {
		t.Errorf("NewReplacer should fail with duplicate variables")
	}
	if _, err := b.NewRenamer(map[string]string{"r": "p"}); err == nil {
		t.Errorf("NewRenamer should fail with unknown names")
	}
	// renaming a variable onto one in the support of the same node
	defer func() {
		if recover() == nil {
			t.Errorf("conflicting Replace should panic")
		}
	}()
	b.Replace(b.And(b.Ithvar(0), b.Ithvar(3)), r2)
}

func TestSatcount(t *testing.T) {
	b, _ := New(6)
	f := b.Or(b.Ithvar(0), b.Ithvar(2))
	var satcountTests = []struct {
		n        Node
		varset   []int
		expected int64
	}{
		{b.False(), []int{0, 2}, 0},
		{b.True(), []int{0, 2}, 4},
		{b.True(), nil, 1},
		{f, []int{0, 2}, 3},
		{f, []int{0, 1, 2}, 6},
		{f, []int{0, 2, 4, 5}, 12},
		{b.Ithvar(4), []int{4}, 1},
	}
	for _, tt := range satcountTests {
		actual := b.SatcountSet(tt.n, b.Makeset(tt.varset))
		if actual.Cmp(big.NewInt(tt.expected)) != 0 {
			t.Errorf("SatcountSet(%s, %v): expected %d, actual %s", b.Print(tt.n), tt.varset, tt.expected, actual)
		}
	}
	if actual := b.Satcount(f); actual.Cmp(big.NewInt(48)) != 0 {
		t.Errorf("Satcount: expected 48, actual %s", actual)
	}
	if actual := b.Nodecount(f); actual != 2 {
		t.Errorf("Nodecount: expected 2, actual %d", actual)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("SatcountSet with a variable outside the set should panic")
		}
	}()
	b.SatcountSet(f, b.Makeset([]int{0}))
}

func TestAllsatStop(t *testing.T) {
	b, _ := New(3)
	stop := errors.New("stop")
	count := 0
	err := b.Allsat(b.Or(b.Ithvar(0), b.Ithvar(1)), func([]int) error {
		count++
		return stop
	})
	if err != stop || count != 1 {
		t.Errorf("Allsat should stop at the first error, got %v after %d calls", err, count)
	}
}

func TestMaxnodesize(t *testing.T) {
	b, err := New(40, Maxnodesize(200))
	if err != nil {
		t.Fatal(err)
	}
	// each step of the left fold builds a new parity chain
	f := b.False()
	for k := 0; k < 40; k++ {
		f = b.Apply(f, b.Ithvar(k), OPxor)
	}
	g := b.True()
	for k := 0; k < 40; k += 2 {
		g = b.And(g, b.Equiv(b.Ithvar(k), b.Ithvar(k+1)))
	}
	if !b.Errored() {
		t.Fatalf("expected an error, table size is %d", b.size())
	}
	if !errors.Is(b.Err(), ErrMemory) {
		t.Errorf("error should wrap ErrMemory: %s", b.Error())
	}
	if b.Or(b.Ithvar(0), b.Ithvar(1)) != b.False() {
		t.Errorf("operations should return False after an error")
	}
	if _, err := New(40, Maxnodesize(50)); !errors.Is(err, ErrMemory) {
		t.Errorf("New should fail when maxnodesize is too small")
	}
}

func TestPanics(t *testing.T) {
	b, _ := New(2)
	var panicTests = []struct {
		name string
		f    func()
	}{
		{"Ithvar", func() { b.Ithvar(2) }},
		{"NIthvar", func() { b.NIthvar(-1) }},
		{"Var", func() { b.Var("x") }},
		{"Not", func() { b.Not(Node(1000)) }},
		{"Apply", func() { b.Apply(b.True(), Node(-1), OPand) }},
		{"AppEx", func() { b.AppEx(b.True(), b.True(), OPimp, b.Ithvar(0)) }},
		{"Exist", func() { b.Exist(b.Ithvar(0), b.NIthvar(1)) }},
	}
	for _, tt := range panicTests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s should panic", tt.name)
				}
			}()
			tt.f()
		}()
	}
}

func TestNew(t *testing.T) {
	if _, err := New(-1); err == nil {
		t.Errorf("New(-1) should fail")
	}
	if _, err := New(2, Varnames("a")); err == nil {
		t.Errorf("New should fail with a wrong number of names")
	}
	if _, err := New(2, Varnames("a", "a")); err == nil {
		t.Errorf("New should fail with duplicate names")
	}
	b, err := New(0)
	if err != nil {
		t.Fatal(err)
	}
	if b.Satcount(b.True()).Cmp(big.NewInt(1)) != 0 {
		t.Errorf("True with no variables should have exactly one assignment")
	}
	b, _ = New(3)
	if b.Name(1) != "1" || b.Var("2") != b.Ithvar(2) {
		t.Errorf("unexpected default names")
	}
}

func TestPrint(t *testing.T) {
	b, _ := New(2, Varnames("x", "y"))
	f := b.And(b.Var("x"), b.NVar("y"))
	var buf bytes.Buffer
	if err := b.Dot(&buf, f); err != nil {
		t.Fatal(err)
	}
	dot := buf.String()
	if !strings.HasPrefix(dot, "digraph G {") || !strings.Contains(dot, "style=dotted") {
		t.Errorf("unexpected DOT output:\n%s", dot)
	}
	buf.Reset()
	if err := b.Fprint(&buf, f); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 lines, got %d:\n%s", lines, buf.String())
	}
	if b.Print(b.False()) != "False" || b.Print(b.True()) != "True" {
		t.Errorf("unexpected printing of constants")
	}
	if !strings.Contains(b.Stats(), "Varnum:     2") {
		t.Errorf("unexpected stats:\n%s", b.Stats())
	}
}
