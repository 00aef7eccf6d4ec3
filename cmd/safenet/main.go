// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command safenet analyses a 1-safe Petri net given in PNML format. It lists
// the reachable markings using an explicit exploration, computes them again
// using a BDD, then looks for a reachable deadlock and for a reachable marking
// maximizing a weighted sum of tokens.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dalzilio/safenet"
	"github.com/dalzilio/safenet/ilp"
	"github.com/dalzilio/safenet/petri"
)

func main() {
	var (
		verbose bool
		slow    bool
		list    bool
		solver  string
		weights string
		dot     string
	)
	flag.BoolVar(&verbose, "v", false, "print statistics about the BDD")
	flag.BoolVar(&slow, "slow", false, "compute images with a conjunction followed by a quantification")
	flag.BoolVar(&list, "list", false, "print the reachable markings")
	flag.StringVar(&solver, "solver", "gophersat", "ILP solver used for deadlock detection (gophersat|gini)")
	flag.StringVar(&weights, "weights", "", "comma separated weights of the places, one for each place (default all 1)")
	flag.StringVar(&dot, "dot", "", "write the BDD of reachable markings in DOT format to `file`")
	flag.Parse()
	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Syntax : %s [options] file.pnml\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	var s ilp.Solver
	switch solver {
	case "gophersat":
		s = ilp.Gophersat{Verbose: verbose}
	case "gini":
		s = ilp.Gini{}
	default:
		fmt.Fprintf(os.Stderr, "unknown solver %q\n", solver)
		os.Exit(1)
	}
	if err := run(flag.Args()[0], s, weights, dot, !slow, list, verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseWeights returns one weight for each of the np places. An empty string
// gives a weight of 1 to every place.
func parseWeights(s string, np int) ([]float64, error) {
	res := make([]float64, np)
	if strings.TrimSpace(s) == "" {
		for i := range res {
			res[i] = 1
		}
		return res, nil
	}
	fields := strings.Split(s, ",")
	if len(fields) != np {
		return nil, fmt.Errorf("expected %d weights, got %d", np, len(fields))
	}
	for i, f := range fields {
		w, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("bad weight %q: %w", f, err)
		}
		res[i] = w
	}
	return res, nil
}

// printMarkings prints a set of markings in lexicographic order of their keys.
func printMarkings(net *petri.Net, set map[string]petri.Marking) {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s %s\n", set[k], net.Format(set[k]))
	}
}

func run(path string, s ilp.Solver, weights, dot string, fast, list, verbose bool) error {
	net, err := petri.LoadPNML(path)
	if err != nil {
		return err
	}
	w, err := parseWeights(weights, len(net.Places))
	if err != nil {
		return err
	}
	fmt.Printf("--- Petri net %s ---\n%s\n", path, net)

	fmt.Println("\n--- BFS reachable markings ---")
	bfs := petri.BFS(net)
	if list {
		printMarkings(net, bfs)
	}
	fmt.Printf("total BFS reachable = %d\n", len(bfs))

	fmt.Println("\n--- DFS reachable markings ---")
	dfs := petri.DFS(net)
	if list {
		printMarkings(net, dfs)
	}
	fmt.Printf("total DFS reachable = %d\n", len(dfs))

	fmt.Println("\n--- BDD reachable markings ---")
	r, err := safenet.ComputeReachable(net, safenet.Fast(fast))
	if err != nil {
		return err
	}
	if list {
		err = r.Markings(func(m petri.Marking) error {
			fmt.Printf("%s %s\n", m, net.Format(m))
			return nil
		})
		if err != nil {
			return err
		}
	}
	fmt.Printf("BDD reachable markings = %s (%d iterations, %d nodes)\n", r.Count, r.Iterations, r.BDD.Nodecount(r.Set))
	if verbose {
		fmt.Print(r.BDD.Stats())
	}
	if dot != "" {
		f, err := os.Create(dot)
		if err != nil {
			return err
		}
		if err := r.BDD.Dot(f, r.Set); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	fmt.Println("\n--- Deadlock reachable marking ---")
	m, found, err := safenet.FindDeadlock(r, safenet.WithSolver(s))
	if err != nil {
		return err
	}
	if found {
		fmt.Printf("deadlock marking: %s %s\n", m, net.Format(m))
	} else {
		fmt.Println("no deadlock reachable")
	}

	fmt.Println("\n--- Optimize c.M ---")
	m, v, ok, err := safenet.Optimize(r, w)
	if err != nil {
		return err
	}
	fmt.Printf("c: %v\n", w)
	if !ok {
		fmt.Println("no reachable marking")
		return nil
	}
	fmt.Printf("max marking: %s %s\n", m, net.Format(m))
	fmt.Printf("max value: %v\n", v)
	return nil
}
