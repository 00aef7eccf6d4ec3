// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package petri

// BFS returns the set of markings reachable from the initial marking of n,
// computed by a breadth-first exploration. The result is indexed by
// Marking.Key.
func BFS(n *Net) map[string]Marking {
	m0 := n.Initial()
	visited := map[string]Marking{m0.Key(): m0}
	queue := []Marking{m0}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		for t := range n.Transitions {
			next, ok := n.Fire(m, t)
			if !ok {
				continue
			}
			key := next.Key()
			if _, found := visited[key]; !found {
				visited[key] = next
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// DFS returns the same set than BFS but explores the state space depth-first,
// using an explicit stack.
func DFS(n *Net) map[string]Marking {
	m0 := n.Initial()
	visited := map[string]Marking{m0.Key(): m0}
	stack := []Marking{m0}
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for t := len(n.Transitions) - 1; t >= 0; t-- {
			next, ok := n.Fire(m, t)
			if !ok {
				continue
			}
			key := next.Key()
			if _, found := visited[key]; !found {
				visited[key] = next
				stack = append(stack, next)
			}
		}
	}
	return visited
}

// Deadlocks returns the reachable markings of n, as computed by BFS, where no
// transition is enabled.
func Deadlocks(n *Net) map[string]Marking {
	res := make(map[string]Marking)
	for k, m := range BFS(n) {
		if n.Dead(m) {
			res[k] = m
		}
	}
	return res
}
