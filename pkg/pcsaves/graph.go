package pcsaves

// Node and Edge form the bipartite solution graph used by the minimal-set
// search: a Node is a single fumen (a solve), an Edge is a queue's set of
// candidate solves. Ported from original_source/lib/minimal.py's Node/Edge/
// Graph/FumenStore/fumens_to_graph.
//
// Per spec.md's data-model note, cross-references are plain integer indices
// into a Graph's Nodes/Edges slices rather than owning pointers, so a Graph
// can be copied or handed to multiple goroutines without alias bookkeeping.
// Redundant nodes and edges stay in place (never reindexed, so every
// NodeRef/EdgeRef stays valid for the Graph's lifetime) and are simply
// skipped by later passes via their Redundant flag.
type NodeRef int
type EdgeRef int

// Node is a single candidate fumen solve.
type Node struct {
	Key       string
	Edges     []EdgeRef
	Color     int
	Alter     []NodeRef
	Redundant bool
}

// Edge is one queue's set of candidate solve nodes.
type Edge struct {
	Nodes     []NodeRef
	Color     int
	Redundant bool
}

// Graph is the full bipartite structure built from a collection of queues'
// candidate fumen lists. Use LiveNodes/LiveEdges to iterate non-redundant
// elements.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// LiveEdges returns the refs of edges not marked redundant.
func (g *Graph) LiveEdges() []EdgeRef {
	var out []EdgeRef
	for i := range g.Edges {
		if !g.Edges[i].Redundant {
			out = append(out, EdgeRef(i))
		}
	}
	return out
}

// LiveNodes returns the refs of nodes not marked redundant and with at
// least one surviving edge.
func (g *Graph) LiveNodes() []NodeRef {
	var out []NodeRef
	for i := range g.Nodes {
		if !g.Nodes[i].Redundant && len(g.Nodes[i].Edges) > 0 {
			out = append(out, NodeRef(i))
		}
	}
	return out
}

// nodeIndex maps a fumen string to its NodeRef, deduplicating repeated
// fumens across queues the way FumenStore.fumen_to_node does.
type nodeIndex struct {
	graph *Graph
	byKey map[string]NodeRef
}

func newNodeIndex(g *Graph) *nodeIndex {
	return &nodeIndex{graph: g, byKey: make(map[string]NodeRef)}
}

func (ni *nodeIndex) ref(fumen string) NodeRef {
	if ref, ok := ni.byKey[fumen]; ok {
		return ref
	}
	ref := NodeRef(len(ni.graph.Nodes))
	ni.graph.Nodes = append(ni.graph.Nodes, Node{Key: fumen})
	ni.byKey[fumen] = ref
	return ref
}

// FumensToGraph builds a Graph from fumens, one []string per queue's
// candidate solves, then removes redundant edges (an edge whose node set is
// a superset of another's is implied by it) and redundant nodes (a node
// whose surviving-edge membership exactly matches another's is
// interchangeable with it, recorded as an alternate rather than discarded).
func FumensToGraph(fumens [][]string) Graph {
	var g Graph
	ni := newNodeIndex(&g)

	g.Edges = make([]Edge, len(fumens))
	for i, queueFumens := range fumens {
		seen := make(map[NodeRef]bool, len(queueFumens))
		var nodes []NodeRef
		for _, f := range queueFumens {
			ref := ni.ref(f)
			if !seen[ref] {
				seen[ref] = true
				nodes = append(nodes, ref)
			}
		}
		g.Edges[i] = Edge{Nodes: nodes}
	}

	for i := range g.Edges {
		edgeRef := EdgeRef(i)
		for _, nodeRef := range g.Edges[i].Nodes {
			g.Nodes[nodeRef].Edges = append(g.Nodes[nodeRef].Edges, edgeRef)
		}
	}

	order := make([]EdgeRef, len(g.Edges))
	for i := range order {
		order[i] = EdgeRef(i)
	}
	sortEdgeRefsBySize(&g, order)

	for _, edgeRef := range order {
		edge := &g.Edges[edgeRef]
		if edge.Redundant || len(edge.Nodes) == 0 {
			continue
		}
		anchor := edge.Nodes[0]
		for _, siblingRef := range g.Nodes[anchor].Edges {
			if siblingRef == edgeRef {
				continue
			}
			sibling := &g.Edges[siblingRef]
			if nodeSetSubset(edge.Nodes, sibling.Nodes) {
				sibling.Redundant = true
			}
		}
	}

	for i := range g.Nodes {
		node := &g.Nodes[i]
		kept := node.Edges[:0]
		for _, e := range node.Edges {
			if !g.Edges[e].Redundant {
				kept = append(kept, e)
			}
		}
		node.Edges = kept
	}

	for _, nodeRef := range g.LiveNodes() {
		node := &g.Nodes[nodeRef]
		if node.Redundant || len(node.Edges) == 0 {
			continue
		}
		anchorEdge := node.Edges[0]
		for _, siblingRef := range g.Edges[anchorEdge].Nodes {
			if siblingRef == nodeRef {
				continue
			}
			sibling := &g.Nodes[siblingRef]
			if edgeSetEqual(node.Edges, sibling.Edges) {
				sibling.Redundant = true
				node.Alter = append(node.Alter, siblingRef)
			}
		}
	}

	for i := range g.Edges {
		edge := &g.Edges[i]
		kept := edge.Nodes[:0]
		for _, n := range edge.Nodes {
			if !g.Nodes[n].Redundant {
				kept = append(kept, n)
			}
		}
		edge.Nodes = kept
	}

	return g
}

// GreedyCumulativeCoverage reorders nodes (a chosen covering set) so that
// each prefix covers as many queues as the first k fumens can manage,
// picking at each step the remaining node that adds the most edges not yet
// covered by an earlier pick - the "cumulative" percent breakdown spec.md
// §4.6 describes, distinct from each fumen's raw standalone coverage.
// Returns the reordered nodes alongside the running union size after each
// pick.
func (g *Graph) GreedyCumulativeCoverage(nodes []NodeRef) ([]NodeRef, []int) {
	remaining := make([]NodeRef, len(nodes))
	copy(remaining, nodes)

	covered := make(map[EdgeRef]bool)
	ordered := make([]NodeRef, 0, len(nodes))
	cumulative := make([]int, 0, len(nodes))

	for len(remaining) > 0 {
		bestIdx := -1
		bestNew := -1
		for i, ref := range remaining {
			newCount := 0
			for _, e := range g.Nodes[ref].Edges {
				if !covered[e] {
					newCount++
				}
			}
			if newCount > bestNew {
				bestNew = newCount
				bestIdx = i
			}
		}

		picked := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		for _, e := range g.Nodes[picked].Edges {
			covered[e] = true
		}

		ordered = append(ordered, picked)
		cumulative = append(cumulative, len(covered))
	}

	return ordered, cumulative
}

func sortEdgeRefsBySize(g *Graph, order []EdgeRef) {
	for i := 1; i < len(order); i++ {
		j := i
		for j > 0 && len(g.Edges[order[j-1]].Nodes) > len(g.Edges[order[j]].Nodes) {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
}

func nodeSetSubset(small, large []NodeRef) bool {
	largeSet := make(map[NodeRef]bool, len(large))
	for _, n := range large {
		largeSet[n] = true
	}
	for _, n := range small {
		if !largeSet[n] {
			return false
		}
	}
	return true
}

func edgeSetEqual(a, b []EdgeRef) bool {
	if len(a) != len(b) {
		return false
	}
	aSet := make(map[EdgeRef]bool, len(a))
	for _, e := range a {
		aSet[e] = true
	}
	for _, e := range b {
		if !aSet[e] {
			return false
		}
	}
	return true
}
