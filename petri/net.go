// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package petri

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDanglingArc is returned when an arc refers to an unknown place or
	// transition.
	ErrDanglingArc = errors.New("arc endpoint is not a place or a transition")
	// ErrBadArc is returned when an arc connects two places or two
	// transitions.
	ErrBadArc = errors.New("arc must connect a place and a transition")
	// ErrDuplicateID is returned when two nodes of the net share the same
	// identifier, or when an identifier is empty.
	ErrDuplicateID = errors.New("duplicate identifier")
	// ErrUnsafe is returned when a net is not 1-safe by construction, for
	// instance with an initial marking or an arc weight greater than one.
	ErrUnsafe = errors.New("net is not 1-safe")
)

// Place is a place of a net. Name is an optional display name.
type Place struct {
	ID      string
	Name    string
	Initial bool // true if the place is marked in the initial marking
}

// Transition is a transition of a net.
type Transition struct {
	ID   string
	Name string
}

// Arc is a directed arc between a place and a transition, in either
// direction.
type Arc struct {
	Source string
	Target string
}

// Net is a 1-safe Petri net. The preset and postset of each transition are
// computed once, when the net is built, as sorted lists of place indexes.
type Net struct {
	Places      []Place
	Transitions []Transition
	pre         [][]int
	post        [][]int
	outonly     [][]int // postset places that are not in the preset
	places      map[string]int
	transitions map[string]int
}

// New returns a net with the given places, transitions and arcs, or an error
// if an arc is dangling or does not connect a place with a transition, or if
// two nodes have the same identifier. Duplicated arcs are ignored.
func New(places []Place, transitions []Transition, arcs []Arc) (*Net, error) {
	n := &Net{
		Places:      append([]Place(nil), places...),
		Transitions: append([]Transition(nil), transitions...),
		places:      make(map[string]int, len(places)),
		transitions: make(map[string]int, len(transitions)),
	}
	for k, p := range places {
		if p.ID == "" {
			return nil, fmt.Errorf("place %d has no identifier: %w", k, ErrDuplicateID)
		}
		if _, ok := n.places[p.ID]; ok {
			return nil, fmt.Errorf("place %q: %w", p.ID, ErrDuplicateID)
		}
		n.places[p.ID] = k
	}
	for k, t := range transitions {
		if t.ID == "" {
			return nil, fmt.Errorf("transition %d has no identifier: %w", k, ErrDuplicateID)
		}
		if _, ok := n.places[t.ID]; ok {
			return nil, fmt.Errorf("transition %q: %w", t.ID, ErrDuplicateID)
		}
		if _, ok := n.transitions[t.ID]; ok {
			return nil, fmt.Errorf("transition %q: %w", t.ID, ErrDuplicateID)
		}
		n.transitions[t.ID] = k
	}
	pre := make([]map[int]bool, len(transitions))
	post := make([]map[int]bool, len(transitions))
	for k := range transitions {
		pre[k] = make(map[int]bool)
		post[k] = make(map[int]bool)
	}
	for _, a := range arcs {
		sp, srcPlace := n.places[a.Source]
		st, srcTrans := n.transitions[a.Source]
		tp, tgtPlace := n.places[a.Target]
		tt, tgtTrans := n.transitions[a.Target]
		switch {
		case !srcPlace && !srcTrans:
			return nil, fmt.Errorf("arc %s -> %s: unknown source: %w", a.Source, a.Target, ErrDanglingArc)
		case !tgtPlace && !tgtTrans:
			return nil, fmt.Errorf("arc %s -> %s: unknown target: %w", a.Source, a.Target, ErrDanglingArc)
		case srcPlace && tgtTrans:
			pre[tt][sp] = true
		case srcTrans && tgtPlace:
			post[st][tp] = true
		default:
			return nil, fmt.Errorf("arc %s -> %s: %w", a.Source, a.Target, ErrBadArc)
		}
	}
	n.pre = make([][]int, len(transitions))
	n.post = make([][]int, len(transitions))
	n.outonly = make([][]int, len(transitions))
	for k := range transitions {
		n.pre[k] = sortedKeys(pre[k])
		n.post[k] = sortedKeys(post[k])
		for _, p := range n.post[k] {
			if !pre[k][p] {
				n.outonly[k] = append(n.outonly[k], p)
			}
		}
	}
	return n, nil
}

func sortedKeys(m map[int]bool) []int {
	res := make([]int, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Ints(res)
	return res
}

// Preset returns the sorted indexes of the input places of transition t. The
// result must not be modified.
func (n *Net) Preset(t int) []int {
	return n.pre[t]
}

// Postset returns the sorted indexes of the output places of transition t.
func (n *Net) Postset(t int) []int {
	return n.post[t]
}

// OutputOnly returns the sorted indexes of the places in the postset of t
// that are not in its preset. They must be empty for t to be enabled.
func (n *Net) OutputOnly(t int) []int {
	return n.outonly[t]
}

// PlaceIndex returns the index of the place with identifier id.
func (n *Net) PlaceIndex(id string) (int, bool) {
	k, ok := n.places[id]
	return k, ok
}

// TransitionIndex returns the index of the transition with identifier id.
func (n *Net) TransitionIndex(id string) (int, bool) {
	k, ok := n.transitions[id]
	return k, ok
}

// Initial returns the initial marking of the net.
func (n *Net) Initial() Marking {
	m := make(Marking, len(n.Places))
	for k, p := range n.Places {
		m[k] = p.Initial
	}
	return m
}

// Enabled reports whether transition t can fire at marking m.
func (n *Net) Enabled(m Marking, t int) bool {
	for _, p := range n.pre[t] {
		if !m[p] {
			return false
		}
	}
	for _, p := range n.outonly[t] {
		if m[p] {
			return false
		}
	}
	return true
}

// Fire returns the marking obtained by firing transition t from m, and false
// if t is not enabled at m. Marking m is not modified.
func (n *Net) Fire(m Marking, t int) (Marking, bool) {
	if !n.Enabled(m, t) {
		return nil, false
	}
	res := m.Clone()
	for _, p := range n.pre[t] {
		res[p] = false
	}
	for _, p := range n.post[t] {
		res[p] = true
	}
	return res, true
}

// Dead reports whether no transition is enabled at marking m.
func (n *Net) Dead(m Marking) bool {
	for t := range n.Transitions {
		if n.Enabled(m, t) {
			return false
		}
	}
	return true
}

// Format returns the set of marked places in m, using their display names
// when they exist.
func (n *Net) Format(m Marking) string {
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	for k, v := range m {
		if !v {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(n.Places[k].Label())
	}
	sb.WriteString("}")
	return sb.String()
}

// Label returns the name of the place, or its identifier if it has no name.
func (p Place) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Label returns the name of the transition, or its identifier if it has no
// name.
func (t Transition) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

func (n *Net) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#places %d, #transitions %d\n", len(n.Places), len(n.Transitions))
	for t, tr := range n.Transitions {
		fmt.Fprintf(&sb, "%s: ", tr.Label())
		for k, p := range n.pre[t] {
			if k > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(n.Places[p].Label())
		}
		sb.WriteString(" -> ")
		for k, p := range n.post[t] {
			if k > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(n.Places[p].Label())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
