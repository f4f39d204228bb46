package pcsaves_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pcsaves/pkg/pcsaves"
)

// TestMinimalCoverScenario reproduces spec scenario 6: three queues solved
// by fumens q1<-{a,b}, q2<-{b,c}, q3<-{a,c}. The minimum cover size is 2 and
// every 2-element subset of {a,b,c} is a valid cover.
func TestMinimalCoverScenario(t *testing.T) {
	graph := pcsaves.FumensToGraph([][]string{
		{"a", "b"},
		{"b", "c"},
		{"a", "c"},
	})

	result := graph.FindMinimalNodes()
	require.Equal(t, 2, result.Count)
	require.Len(t, result.Sets, 3)

	edges := graph.LiveEdges()
	for _, set := range result.Sets {
		require.Len(t, set, result.Count)
		covered := make(map[pcsaves.EdgeRef]bool)
		for _, node := range set {
			for _, e := range graph.Nodes[node].Edges {
				covered[e] = true
			}
		}
		for _, e := range edges {
			require.True(t, covered[e], "edge %d not covered by set %v", e, set)
		}
	}
}

func TestGreedyCumulativeCoverageMonotone(t *testing.T) {
	graph := pcsaves.FumensToGraph([][]string{
		{"a", "b"},
		{"a"},
		{"b", "c"},
		{"c"},
	})

	result := graph.FindMinimalNodes()
	require.NotEmpty(t, result.Sets)

	ordered, cumulative := graph.GreedyCumulativeCoverage(result.Sets[0])
	require.Len(t, ordered, len(result.Sets[0]))

	prev := 0
	for _, c := range cumulative {
		require.GreaterOrEqual(t, c, prev)
		prev = c
	}
	require.Equal(t, len(graph.LiveEdges()), cumulative[len(cumulative)-1])
}

func TestRedundantEdgeReduction(t *testing.T) {
	// The queue solved by {a} is implied by the queue solved by {a,b}: any
	// hitter of {a} also hits {a,b}, so the larger edge is redundant.
	graph := pcsaves.FumensToGraph([][]string{
		{"a"},
		{"a", "b"},
	})

	live := graph.LiveEdges()
	require.Len(t, live, 1)
}

func TestRedundantNodeMerging(t *testing.T) {
	// {a,b} makes the superset edge {a,b,c} redundant, which strands c with
	// no live edge; a and b then cover the same (single) live edge, so they
	// are interchangeable and one merges into the other as an alternate.
	graph := pcsaves.FumensToGraph([][]string{
		{"a", "b", "c"},
		{"a", "b"},
	})

	liveNodes := graph.LiveNodes()
	require.Len(t, liveNodes, 1)

	kept := graph.Nodes[liveNodes[0]]
	require.Len(t, kept.Alter, 1, "the merged-away node should be recorded as an alternate")
}
