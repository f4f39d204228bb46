package pcsaves

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"pcsaves/pkg/pcsaves/expr"
	"pcsaves/pkg/pcsaves/fumen"
)

// FilterOutputMode selects what Filter produces, grounded on filter.py's
// output_type parameter.
type FilterOutputMode int

const (
	// FilterOutputMinimal runs the minimal-set search over the filtered
	// fumens and reports the smallest covering set.
	FilterOutputMinimal FilterOutputMode = iota
	// FilterOutputUnique combines every distinct filtered fumen into one
	// fumen, with no minimal-set reduction.
	FilterOutputUnique
	// FilterOutputFile just writes the filtered path CSV.
	FilterOutputFile
)

// FilterOptions configures a Filter run.
type FilterOptions struct {
	OutputMode        FilterOutputMode
	CumulativePercent bool
	Shortener         URLShortener
	Chooser           Chooser
}

// FilterResult is what Filter produced beyond the filtered CSV file
// written to outputPath.
type FilterResult struct {
	UniqueFumen string
	MinimalLine string
}

// Filter streams a path table, keeps only the fumens each row contributes
// toward satisfying one of wantedSaves (first match wins, matching
// filter.py), writes the filtered rows to outputPath (in every mode except
// FilterOutputUnique, which writes no file), and then reduces the result
// according to opts.OutputMode.
func Filter(reader *PathReader, outputPath string, wantedSaves, labels []string, opts FilterOptions) (*FilterResult, error) {
	asts := make([]expr.Node, len(wantedSaves))
	for i, ws := range wantedSaves {
		node, err := expr.Parse(ws)
		if err != nil {
			return nil, err
		}
		asts[i] = node
	}

	rows, err := reader.Read(true, true)
	if err != nil {
		return nil, err
	}

	uniqueFumens := make(map[string]bool)
	var filteredFumenLists [][]string

	var writer *csv.Writer
	var outFile *os.File
	if opts.OutputMode != FilterOutputUnique {
		outFile, err = os.Create(outputPath)
		if err != nil {
			return nil, validationErrorf("creating filtered path file %s: %v", outputPath, err)
		}
		defer outFile.Close()
		writer = csv.NewWriter(outFile)
		defer writer.Flush()
		if err := writer.Write([]string{ColumnQueue, ColumnFumenCount, ColumnUsedPieces, ColumnUnusedPieces, ColumnFumens}); err != nil {
			return nil, validationErrorf("writing filtered path header: %v", err)
		}
	}

	for _, row := range rows {
		if !row.Solveable {
			continue
		}

		var indices []int
		for _, ast := range asts {
			matched, err := expr.EvaluateASTAll(ast, row.Saves)
			if err != nil {
				return nil, err
			}
			if len(matched) > 0 {
				indices = matched
				break
			}
		}
		if len(indices) == 0 {
			continue
		}

		var newFumens []string
		for _, i := range indices {
			newFumens = append(newFumens, row.Fumens[i]...)
		}

		if opts.OutputMode == FilterOutputUnique {
			for _, f := range newFumens {
				uniqueFumens[f] = true
			}
			continue
		}

		filteredFumenLists = append(filteredFumenLists, newFumens)

		unusedPieces := splitNonEmpty(row.Line[ColumnUnusedPieces], unusedPiecesDelim)
		var keptUnused []string
		for _, i := range indices {
			if i < len(unusedPieces) {
				keptUnused = append(keptUnused, unusedPieces[i])
			}
		}

		record := []string{
			row.Line[ColumnQueue],
			strconv.Itoa(len(newFumens)),
			"",
			strings.Join(keptUnused, unusedPiecesDelim),
			strings.Join(newFumens, fumensDelim),
		}
		if err := writer.Write(record); err != nil {
			return nil, validationErrorf("writing filtered path row: %v", err)
		}
	}

	result := &FilterResult{}

	switch opts.OutputMode {
	case FilterOutputUnique:
		unique := make([]string, 0, len(uniqueFumens))
		for f := range uniqueFumens {
			unique = append(unique, f)
		}
		combined, err := fumen.Combine(unique)
		if err != nil {
			return nil, err
		}
		result.UniqueFumen = combined

	case FilterOutputMinimal:
		graph := FumensToGraph(filteredFumenLists)
		minimalSets := graph.FindMinimalNodes()

		var best []NodeRef
		if len(minimalSets.Sets) == 1 || opts.Chooser == nil {
			if len(minimalSets.Sets) > 0 {
				best = minimalSets.Sets[0]
			}
		} else {
			best = graph.FindBestSet(minimalSets.Sets, opts.Chooser)
		}

		if opts.CumulativePercent {
			best, _ = graph.GreedyCumulativeCoverage(best)
		}

		fumenQueues := make(map[string]map[int]bool)
		for q, fl := range filteredFumenLists {
			for _, f := range fl {
				if fumenQueues[f] == nil {
					fumenQueues[f] = make(map[int]bool)
				}
				fumenQueues[f][q] = true
			}
		}

		fumens := make([]string, len(best))
		percents := make([]string, len(best))
		covered := make(map[int]bool)
		for i, ref := range best {
			fumens[i] = graph.Nodes[ref].Key
			if opts.CumulativePercent {
				for q := range fumenQueues[fumens[i]] {
					covered[q] = true
				}
				percents[i] = CoverageLabel(len(covered), len(rows))
			} else {
				percents[i] = CoverageLabel(len(fumenQueues[fumens[i]]), len(rows))
			}
		}

		combined, err := fumen.CombineComments(fumens, percents)
		if err != nil {
			return nil, err
		}

		line := combined
		if opts.Shortener != nil {
			line = ShortenFumenURL(opts.Shortener, combined)
		}
		result.MinimalLine = "True minimal for " + strings.Join(labels, ",") + ":\n" + line
	}

	return result, nil
}
