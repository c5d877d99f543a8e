// Package molecule models small molecules as undirected, labelled graphs and tests them for structural
// equivalence.
package molecule

import (
	"iter"
)

// NodeIndex identifies a node within the Graph that issued it.
type NodeIndex int32

// EdgeIndex identifies an edge within the Graph that issued it.
type EdgeIndex int32

// EdgeSpec describes an edge to be added to a Graph.
type EdgeSpec[E any] struct {
	A, B   NodeIndex
	Weight E
}

type edge[E any] struct {
	a, b   NodeIndex
	weight E
}

// adjacency is one entry of a node's neighbour list.
type adjacency struct {
	to   NodeIndex
	edge EdgeIndex
}

// Graph is an undirected graph stored as an arena: nodes and edges live in slices and refer to each other
// by index only.  N is the node label type and E the edge weight type.
//
// A Graph is not safe for concurrent mutation, but once built it may be read from any number of goroutines.
type Graph[N, E any] struct {
	nodes []N
	edges []edge[E]
	adj   [][]adjacency
}

// AddNode adds a node with the given label and returns its index.
func (X *Graph[N, E]) AddNode(label N) NodeIndex {
	X.nodes = append(X.nodes, label)
	X.adj = append(X.adj, nil)
	return NodeIndex(len(X.nodes) - 1)
}

// AddEdge connects a and b with the given weight and returns the new edge's index.
// Panics if a or b was not issued by this graph.
func (X *Graph[N, E]) AddEdge(a, b NodeIndex, weight E) EdgeIndex {
	if !X.hasNode(a) || !X.hasNode(b) {
		panic("molecule: edge endpoint out of range")
	}
	ei := EdgeIndex(len(X.edges))
	X.edges = append(X.edges, edge[E]{a: a, b: b, weight: weight})
	X.adj[a] = append(X.adj[a], adjacency{to: b, edge: ei})
	if a != b {
		X.adj[b] = append(X.adj[b], adjacency{to: a, edge: ei})
	}
	return ei
}

// ExtendWithEdges adds each of the given edges in order.
func (X *Graph[N, E]) ExtendWithEdges(edges ...EdgeSpec[E]) {
	for _, e := range edges {
		X.AddEdge(e.A, e.B, e.Weight)
	}
}

func (X *Graph[N, E]) hasNode(n NodeIndex) bool {
	return n >= 0 && int(n) < len(X.nodes)
}

func (X *Graph[N, E]) NodeCount() int {
	return len(X.nodes)
}

func (X *Graph[N, E]) EdgeCount() int {
	return len(X.edges)
}

// Node returns the label of the given node.
func (X *Graph[N, E]) Node(n NodeIndex) N {
	return X.nodes[n]
}

// Edge returns the weight of the given edge.
func (X *Graph[N, E]) Edge(e EdgeIndex) E {
	return X.edges[e].weight
}

// EdgeEndpoints returns the two nodes the given edge connects.
func (X *Graph[N, E]) EdgeEndpoints(e EdgeIndex) (a, b NodeIndex) {
	return X.edges[e].a, X.edges[e].b
}

// Degree returns the number of edges incident to n.
func (X *Graph[N, E]) Degree(n NodeIndex) int {
	return len(X.adj[n])
}

// Nodes iterates over all node indices in insertion order.
func (X *Graph[N, E]) Nodes() iter.Seq[NodeIndex] {
	return func(yield func(NodeIndex) bool) {
		for i := range X.nodes {
			if !yield(NodeIndex(i)) {
				return
			}
		}
	}
}

// EdgeIndices iterates over all edge indices in insertion order.
func (X *Graph[N, E]) EdgeIndices() iter.Seq[EdgeIndex] {
	return func(yield func(EdgeIndex) bool) {
		for i := range X.edges {
			if !yield(EdgeIndex(i)) {
				return
			}
		}
	}
}

// Neighbors iterates over the edges incident to n, yielding the node at the other end and the edge weight.
func (X *Graph[N, E]) Neighbors(n NodeIndex) iter.Seq2[NodeIndex, E] {
	return func(yield func(NodeIndex, E) bool) {
		for _, a := range X.adj[n] {
			if !yield(a.to, X.edges[a.edge].weight) {
				return
			}
		}
	}
}

// FindEdge returns the first edge connecting a and b.
func (X *Graph[N, E]) FindEdge(a, b NodeIndex) (EdgeIndex, bool) {
	for _, adj := range X.adj[a] {
		if adj.to == b {
			return adj.edge, true
		}
	}
	return -1, false
}

// NodesWhere iterates over the nodes whose label satisfies the predicate.
// The returned sequence is evaluated lazily and may be ranged over any number of times.
func (X *Graph[N, E]) NodesWhere(match func(N) bool) iter.Seq[NodeIndex] {
	return func(yield func(NodeIndex) bool) {
		for i, label := range X.nodes {
			if match(label) && !yield(NodeIndex(i)) {
				return
			}
		}
	}
}
