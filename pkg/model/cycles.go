package model

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"
)

// Cycles returns the strongly connected components with more than one node.
// Each component lists node ids in insertion order; components are ordered by
// their first node.
func (g *Graph) Cycles() [][]string {
	var cycles [][]string
	for _, scc := range topo.TarjanSCC(g.index) {
		if len(scc) < 2 {
			continue
		}
		ids := make([]string, 0, len(scc))
		for _, n := range scc {
			ids = append(ids, g.names[n.ID()])
		}
		sort.Slice(ids, func(i, j int) bool {
			return g.seq[ids[i]] < g.seq[ids[j]]
		})
		cycles = append(cycles, ids)
	}

	sort.Slice(cycles, func(i, j int) bool {
		return g.seq[cycles[i][0]] < g.seq[cycles[j][0]]
	})
	return cycles
}
