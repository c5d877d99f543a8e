package molecule

import (
	"slices"
)

// IsIsomorphicSubgraphMatching returns true if G0 is isomorphic to an induced subgraph of G1, where
// nodes correspond only if nodeMatch accepts their labels and edges only if edgeMatch accepts their weights.
//
// The search is VF2-style backtracking over node indices: G0's nodes are visited in breadth-first order so
// that each newly mapped node extends the partial mapping through an already mapped neighbour.
func IsIsomorphicSubgraphMatching[N, E any](G0, G1 *Graph[N, E], nodeMatch func(N, N) bool, edgeMatch func(E, E) bool) bool {
	if G0.NodeCount() > G1.NodeCount() || G0.EdgeCount() > G1.EdgeCount() {
		return false
	}
	m := newMatcher(G0, G1, nodeMatch, edgeMatch)
	return m.match(0)
}

// IsIsomorphicMatching returns true if G0 and G1 are isomorphic under the given label predicates.
func IsIsomorphicMatching[N, E any](G0, G1 *Graph[N, E], nodeMatch func(N, N) bool, edgeMatch func(E, E) bool) bool {
	if G0.NodeCount() != G1.NodeCount() || G0.EdgeCount() != G1.EdgeCount() {
		return false
	}
	return IsIsomorphicSubgraphMatching(G0, G1, nodeMatch, edgeMatch)
}

type matcher[N, E any] struct {
	G0, G1    *Graph[N, E]
	nodeMatch func(N, N) bool
	edgeMatch func(E, E) bool

	order  []NodeIndex // G0 nodes in visitation order
	parent []NodeIndex // for order[i], a G0 neighbour earlier in order (or -1 if order[i] starts a component)
	core0  []NodeIndex // G0 -> G1 mapping, -1 if unmapped
	core1  []NodeIndex // G1 -> G0 mapping, -1 if unmapped
}

func newMatcher[N, E any](G0, G1 *Graph[N, E], nodeMatch func(N, N) bool, edgeMatch func(E, E) bool) *matcher[N, E] {
	m := &matcher[N, E]{
		G0:        G0,
		G1:        G1,
		nodeMatch: nodeMatch,
		edgeMatch: edgeMatch,
		core0:     make([]NodeIndex, G0.NodeCount()),
		core1:     make([]NodeIndex, G1.NodeCount()),
	}
	for i := range m.core0 {
		m.core0[i] = -1
	}
	for i := range m.core1 {
		m.core1[i] = -1
	}
	m.planOrder()
	return m
}

// planOrder lays out G0's nodes breadth-first, starting each component at its highest degree node and
// visiting higher degree neighbours first, so that leaves (e.g. hydrogens) are matched after the skeleton.
func (m *matcher[N, E]) planOrder() {
	Nv := m.G0.NodeCount()
	m.order = make([]NodeIndex, 0, Nv)
	m.parent = make([]NodeIndex, 0, Nv)

	byDegree := func(a, b NodeIndex) int {
		if d := m.G0.Degree(b) - m.G0.Degree(a); d != 0 {
			return d
		}
		return int(a - b)
	}

	roots := slices.Collect(m.G0.Nodes())
	slices.SortStableFunc(roots, byDegree)

	seen := make([]bool, Nv)
	var scrap []NodeIndex

	for _, root := range roots {
		if seen[root] {
			continue
		}
		seen[root] = true
		m.order = append(m.order, root)
		m.parent = append(m.parent, -1)

		for head := len(m.order) - 1; head < len(m.order); head++ {
			n := m.order[head]
			scrap = scrap[:0]
			for _, adj := range m.G0.adj[n] {
				if !seen[adj.to] {
					seen[adj.to] = true
					scrap = append(scrap, adj.to)
				}
			}
			slices.SortStableFunc(scrap, byDegree)
			for _, next := range scrap {
				m.order = append(m.order, next)
				m.parent = append(m.parent, n)
			}
		}
	}
}

func (m *matcher[N, E]) match(depth int) bool {
	if depth == len(m.order) {
		return true
	}

	u := m.order[depth]
	if p := m.parent[depth]; p >= 0 {
		for _, adj := range m.G1.adj[m.core0[p]] {
			if m.tryPair(u, adj.to, depth) {
				return true
			}
		}
	} else {
		for v := range m.G1.nodes {
			if m.tryPair(u, NodeIndex(v), depth) {
				return true
			}
		}
	}
	return false
}

func (m *matcher[N, E]) tryPair(u, v NodeIndex, depth int) bool {
	if m.core1[v] >= 0 || !m.feasible(u, v) {
		return false
	}
	m.core0[u] = v
	m.core1[v] = u
	if m.match(depth + 1) {
		return true
	}
	m.core0[u] = -1
	m.core1[v] = -1
	return false
}

// feasible checks whether mapping u (in G0) to v (in G1) is consistent with the current partial mapping.
func (m *matcher[N, E]) feasible(u, v NodeIndex) bool {
	if !m.nodeMatch(m.G0.nodes[u], m.G1.nodes[v]) {
		return false
	}

	// Every edge from u into the mapped region must have a matching edge from v.
	mapped0, unmapped0 := 0, 0
	for _, adj := range m.G0.adj[u] {
		w := m.core0[adj.to]
		if adj.to == u {
			w = v
		} else if w < 0 {
			unmapped0++
			continue
		}
		mapped0++
		e1, ok := m.G1.FindEdge(v, w)
		if !ok || !m.edgeMatch(m.G0.edges[adj.edge].weight, m.G1.edges[e1].weight) {
			return false
		}
	}

	// Induced: v may have no more edges into the mapped region than u, and must have room for u's
	// remaining neighbours.
	mapped1, unmapped1 := 0, 0
	for _, adj := range m.G1.adj[v] {
		if adj.to == v || m.core1[adj.to] >= 0 {
			mapped1++
		} else {
			unmapped1++
		}
	}

	return mapped0 == mapped1 && unmapped0 <= unmapped1
}
