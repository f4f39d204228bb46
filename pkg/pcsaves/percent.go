package pcsaves

import (
	"fmt"
	"sort"
	"strings"

	"pcsaves/pkg/pcsaves/cache"
	"pcsaves/pkg/pcsaves/expr"
)

// PercentNode accumulates a save count, optionally broken down per leading
// queue piece to the requested tree depth, grounded on percent.py's
// PercentNode/_get_nodes.
type PercentNode struct {
	Count    int
	Children map[byte]*PercentNode
}

// getNodes returns node and the chain of descendants along queue's first
// depth characters, creating nodes as needed.
func getNodes(queue string, node *PercentNode, depth int) []*PercentNode {
	nodes := []*PercentNode{node}
	limit := depth
	if limit > len(queue) {
		limit = len(queue)
	}
	for i := 0; i < limit; i++ {
		piece := queue[i]
		if node.Children == nil {
			node.Children = make(map[byte]*PercentNode)
		}
		child, ok := node.Children[piece]
		if !ok {
			child = &PercentNode{}
			node.Children[piece] = child
		}
		node = child
		nodes = append(nodes, node)
	}
	return nodes
}

// PercentOptions configures a Percent run; the zero value matches the
// original's default keyword arguments.
type PercentOptions struct {
	IncludeFails bool
	OverSolves   bool
	AllSaves     bool
	TreeDepth    int

	// RowCache, when set, makes Percent read derived save rows through a
	// SaveRowCache keyed by RowCacheKey instead of always re-deriving them
	// from the path file.
	RowCache    *cache.SaveRowCache
	RowCacheKey cache.Key
}

// PercentResult is what Percent computed, ready for PrintPercent or for a
// caller to render its own way.
type PercentResult struct {
	Labels   []string
	Counters []*PercentNode
	Total    *PercentNode
	Fails    []string
}

// Percent tallies how often each wanted-save expression is satisfiable
// across a path table, grounded on percent.py's percent function.
func Percent(reader *PathReader, wantedSaves, labels []string, opts PercentOptions) (*PercentResult, error) {
	asts := make([]expr.Node, len(wantedSaves))
	for i, ws := range wantedSaves {
		node, err := expr.Parse(ws)
		if err != nil {
			return nil, err
		}
		asts[i] = node
	}

	counters := make([]*PercentNode, len(wantedSaves))
	for i := range counters {
		counters[i] = &PercentNode{}
	}
	total := &PercentNode{}
	var fails []string
	allSavesCounts := make(map[string]int)

	rows, err := reader.ReadCached(opts.RowCache, opts.RowCacheKey)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if opts.OverSolves && !row.Solveable {
			continue
		}

		if opts.AllSaves {
			for _, save := range row.Saves {
				allSavesCounts[save]++
			}
			total.Count++
			continue
		}

		index := -1
		if len(row.Saves) > 0 {
			for i, ast := range asts {
				ok, err := expr.EvaluateAST(ast, row.Saves)
				if err != nil {
					return nil, err
				}
				if ok {
					index = i
					break
				}
			}
		}

		if index >= 0 {
			for _, node := range getNodes(row.Queue, counters[index], opts.TreeDepth) {
				node.Count++
			}
		} else if opts.IncludeFails {
			fails = append(fails, row.Queue)
		}

		for _, node := range getNodes(row.Queue, total, opts.TreeDepth) {
			node.Count++
		}
	}

	if opts.AllSaves {
		type entry struct {
			save  string
			count int
			value int
		}
		entries := make([]entry, 0, len(allSavesCounts))
		for save, count := range allSavesCounts {
			value, err := QueueValue(save)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{save, count, value})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].value < entries[j].value })

		labels = make([]string, len(entries))
		counters = make([]*PercentNode, len(entries))
		for i, e := range entries {
			labels[i] = e.save
			counters[i] = &PercentNode{Count: e.count}
		}
	}

	return &PercentResult{Labels: labels, Counters: counters, Total: total, Fails: fails}, nil
}

// PrintPercent renders a PercentResult the way print_percent does: fails
// block first, then one "label: pct% [n/total]" line per counter, each
// optionally followed by its tree breakdown.
func PrintPercent(result *PercentResult, treeDepth int) string {
	var sb strings.Builder

	if len(result.Fails) > 0 {
		sb.WriteString("Fails:\n")
		sb.WriteString(strings.Join(result.Fails, "\n"))
		sb.WriteString("\n\n")
	}

	for i, label := range result.Labels {
		counter := result.Counters[i]
		pct := percentOf(counter.Count, result.Total.Count)
		fmt.Fprintf(&sb, "%s: %.2f%% [%d/%d]\n", label, pct, counter.Count, result.Total.Count)
		if treeDepth == 0 {
			continue
		}
		sb.WriteString(treeHelper("", counter, result.Total, treeDepth, 0))
	}

	return sb.String()
}

func treeHelper(pieces string, node, totalNode *PercentNode, treeDepth, depth int) string {
	var sb strings.Builder
	pct := percentOf(node.Count, totalNode.Count)

	if depth > 0 {
		fmt.Fprintf(&sb, "%s∟ %s -> %.2f%% [%d/%d]\n", strings.Repeat("  ", depth-1), pieces, pct, node.Count, totalNode.Count)
	}

	if depth < treeDepth && node.Children != nil && totalNode.Children != nil {
		var keys []byte
		for piece := range node.Children {
			keys = append(keys, piece)
		}
		sortBagBytes(keys)
		for _, piece := range keys {
			childTotal, ok := totalNode.Children[piece]
			if !ok {
				continue
			}
			sb.WriteString(treeHelper(pieces+string(piece), node.Children[piece], childTotal, treeDepth, depth+1))
		}
	}

	return sb.String()
}

func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func sortBagBytes(b []byte) {
	sort.Slice(b, func(i, j int) bool { return pieceRank[b[i]] < pieceRank[b[j]] })
}
