package generics

import (
	"sort"

	"fluent-gen/internal/typeinfo"
)

// OrderedParams returns the parameters of this scope ordered so that every
// parameter comes after the local parameters its constraint or default
// refers to. Independent parameters keep registration order.
func (c *Context) OrderedParams() ([]typeinfo.GenericParam, error) {
	index := make(map[string]int, len(c.order))
	for i, name := range c.order {
		index[name] = i
	}

	deps := func(i int) []int {
		p := c.params[c.order[i]]

		var out []int

		for _, t := range []typeinfo.TypeInfo{p.Constraint, p.Default} {
			for _, name := range typeinfo.ReferencedNames(t) {
				if j, ok := index[name]; ok && j != i {
					out = append(out, j)
				}
			}
		}

		return out
	}

	order, cyclic := topoSort(len(c.order), deps)
	if cyclic != nil {
		chain := make([]string, len(cyclic))
		for i, j := range cyclic {
			chain[i] = c.order[j]
		}

		return nil, &Error{Code: CodeCircularConstraint, Chain: chain, Detail: "constraints or defaults depend on each other"}
	}

	out := make([]typeinfo.GenericParam, len(order))
	for i, j := range order {
		out[i] = c.params[c.order[j]]
	}

	return out, nil
}

// topoSort returns node indices in dependency order. depsFn(i) yields the
// indices that must come before i. When several nodes are ready the smallest
// index wins, so the result is deterministic. On a cycle it returns the
// indices left unsorted instead.
func topoSort(n int, depsFn func(i int) []int) (order, cyclic []int) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		seen := make(map[int]bool)
		for _, d := range depsFn(i) {
			if seen[d] {
				continue
			}

			seen[d] = true
			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		for i := range n {
			if indeg[i] > 0 {
				cyclic = append(cyclic, i)
			}
		}

		return nil, cyclic
	}

	return order, nil
}
