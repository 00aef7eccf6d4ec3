// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"
)

// Stats returns information about the BDD: number of variables, size of the
// node table and, when compiled with the debug build tag, cache usage.
func (b *BDD) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += b.kernel.stats()
	res += fmt.Sprintf("Cache size: %d\n", len(b.applycache.table))
	if _DEBUG {
		res += "==============\n"
		res += b.cacheStat.String() + "\n"
	}
	if b.err != nil {
		res += fmt.Sprintf("Error:      %s\n", b.err)
	}
	return res
}

// Print returns a one-line description of node n.
func (b *BDD) Print(n Node) string {
	switch {
	case n == bddzero:
		return "False"
	case n == bddone:
		return "True"
	case n < 0 || int(n) >= b.size():
		return fmt.Sprintf("Error (%d not a valid index)", n)
	}
	return fmt.Sprintf("(%d[%s] ? %d : %d)", n, b.names[b.level(int(n))], b.high(int(n)), b.low(int(n)))
}

// Fprint outputs a textual representation of the BDD with root n, one node by
// line in the order of the node table.
func (b *BDD) Fprint(w io.Writer, n Node) error {
	b.checknode(n, "Fprint")
	if n < 2 {
		_, err := fmt.Fprintln(w, b.Print(n))
		return err
	}
	nodes := b.reachable(n)
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	for _, v := range nodes {
		if v > 1 {
			fmt.Fprintf(tw, "%d\t[%s\t] ? \t%d\t : %d\n", v, b.names[b.level(v)], b.high(v), b.low(v))
		}
	}
	return tw.Flush()
}

// reachable returns the sorted list of nodes reachable from n.
func (b *BDD) reachable(n Node) []int {
	nodes := []int{}
	b.Allnodes(func(id, _, _, _ int) error {
		nodes = append(nodes, id)
		return nil
	}, n)
	sort.Ints(nodes)
	return nodes
}

// Dot writes a graph-like description of the BDD with root n using the
// GraphViz DOT format. We do not draw arcs that go to the constant false and
// low arcs are dotted.
func (b *BDD) Dot(w io.Writer, n Node) error {
	b.checknode(n, "Dot")
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	if n == bddzero {
		fmt.Fprintln(bw, "0 [shape=box, label=\"0\", style=filled, height=0.3, width=0.3];")
	} else {
		fmt.Fprintln(bw, "1 [shape=box, label=\"1\", style=filled, height=0.3, width=0.3];")
	}
	for _, v := range b.reachable(n) {
		if v > 1 {
			fmt.Fprintf(bw, "%d %s\n", v, dotlabel(v, b.names[b.level(v)]))
			if b.low(v) != 0 {
				fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", v, b.low(v))
			}
			if b.high(v) != 0 {
				fmt.Fprintf(bw, "%d -> %d [style=filled];\n", v, b.high(v))
			}
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(a int, name string) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%s</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, name, a)
}

// humanSize returns a human readable version of a size in bytes
func humanSize(b int, unit uintptr) string {
	bytes := float64(b) * float64(unit)
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", int(bytes))
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", bytes/1024)
	case bytes < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", bytes/math.Pow(1024, 2))
	}
	return fmt.Sprintf("%.1f GB", bytes/math.Pow(1024, 3))
}
