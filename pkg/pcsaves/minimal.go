package pcsaves

import (
	"fmt"
	"strings"
)

// MinimalSets is the result of a minimum hitting-set search over a Graph's
// live edges: Count is the size of the smallest node set that touches every
// edge, and Sets holds every minimal node set achieving that size.
type MinimalSets struct {
	Count int
	Sets  [][]NodeRef
}

// FindMinimalNodes performs the branch-and-bound minimum hitting-set search
// ported from find_minimal_nodes: it walks edges in graph order, and for
// each still-uncovered edge tries every one of its nodes in turn, pruning
// a branch once its partial solution is larger than the best complete one
// found so far.
//
// Node.Color counts how many edges on the active recursion path have
// offered that node as a branch; a node keeps its mark while its later
// siblings are explored, so a node already tried at an earlier edge is
// skipped (Color > 1) and each cover is generated only once. Edge.Color
// tracks how many currently-selected nodes cover that edge, so an edge with
// Color > 0 is already satisfied and can be skipped without branching.
func (g *Graph) FindMinimalNodes() MinimalSets {
	edges := g.LiveEdges()

	current := make([]NodeRef, 0, len(edges))
	resultCount := -1
	var resultSets [][]NodeRef

	var digest func(index int)
	digest = func(index int) {
		if resultCount >= 0 && len(current) > resultCount {
			return
		}
		if index >= len(edges) {
			if resultCount < 0 || len(current) < resultCount {
				resultCount = len(current)
				resultSets = nil
			}
			set := make([]NodeRef, len(current))
			copy(set, current)
			resultSets = append(resultSets, set)
			return
		}

		edge := &g.Edges[edges[index]]
		if edge.Color > 0 {
			digest(index + 1)
			return
		}

		for _, nodeRef := range edge.Nodes {
			node := &g.Nodes[nodeRef]
			node.Color++
			if node.Color > 1 {
				continue
			}

			current = append(current, nodeRef)
			for _, siblingEdge := range node.Edges {
				g.Edges[siblingEdge].Color++
			}

			digest(index + 1)

			current = current[:len(current)-1]
			for _, siblingEdge := range node.Edges {
				g.Edges[siblingEdge].Color--
			}
		}
		for _, nodeRef := range edge.Nodes {
			g.Nodes[nodeRef].Color--
		}
	}

	digest(0)

	if resultCount < 0 {
		resultCount = 0
	}
	return MinimalSets{Count: resultCount, Sets: resultSets}
}

// Chooser resolves a tie between two candidate minimal sets down to a
// single winner, replacing the original's blocking input() prompt with an
// interface a caller can satisfy however it likes (stdin, a test stub, a
// UI).
type Chooser interface {
	// Choose is given the keys unique to each option (set-difference
	// already computed) and returns true to keep the first option, false
	// to keep the second.
	Choose(optionA, optionB []string) bool
}

// StdinChooser prompts on stdin/stdout, mirroring find_best_set's prompt
// exactly: any answer other than "2" keeps the first option.
type StdinChooser struct {
	Prompt func(question string) string
}

func (c StdinChooser) Choose(optionA, optionB []string) bool {
	fmt.Printf("Option 1:\n%s\nOption 2:\n%s\n", strings.Join(optionA, "\n"), strings.Join(optionB, "\n"))
	answer := c.Prompt("Which is better? 1 or 2: ")
	return answer != "2"
}

// FindBestSet narrows sets down to one, repeatedly comparing the first two
// remaining sets' unique members and asking chooser which is better,
// mirroring find_best_set's reduction loop.
func (g *Graph) FindBestSet(sets [][]NodeRef, chooser Chooser) []NodeRef {
	remaining := make([][]NodeRef, len(sets))
	copy(remaining, sets)

	for len(remaining) > 1 {
		setA := toNodeRefSet(remaining[0])
		setB := toNodeRefSet(remaining[1])

		diffA := keysOf(g, refSetDifference(setA, setB))
		diffB := keysOf(g, refSetDifference(setB, setA))

		if chooser.Choose(diffA, diffB) {
			remaining = append(remaining[:1], remaining[2:]...)
		} else {
			remaining = append(remaining[:0], remaining[1:]...)
		}
	}

	return remaining[0]
}

func toNodeRefSet(refs []NodeRef) map[NodeRef]bool {
	set := make(map[NodeRef]bool, len(refs))
	for _, r := range refs {
		set[r] = true
	}
	return set
}

func refSetDifference(a, b map[NodeRef]bool) []NodeRef {
	var out []NodeRef
	for r := range a {
		if !b[r] {
			out = append(out, r)
		}
	}
	return out
}

func keysOf(g *Graph, refs []NodeRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = g.Nodes[r].Key
	}
	return out
}

// CoverageLabel formats a coverage annotation (standalone or cumulative) the way the
// original's percent strings are rendered: "12.34% (5/42)".
func CoverageLabel(covered, total int) string {
	var pct float64
	if total > 0 {
		pct = float64(covered) / float64(total) * 100
	}
	return fmt.Sprintf("%.2f%% (%d/%d)", pct, covered, total)
}
