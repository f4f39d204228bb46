package pcsaves

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"pcsaves/pkg/pcsaves/cache"
	"pcsaves/pkg/pcsaves/fumen"
)

// Column headers in a path CSV, matching the Japanese names
// original_source/lib/saves_reader.py reads.
const (
	ColumnQueue         = "ツモ"
	ColumnFumenCount    = "対応地形数"
	ColumnUsedPieces    = "使用ミノ"
	ColumnUnusedPieces  = "未使用ミノ"
	ColumnFumens        = "テト譜"
	unusedPiecesDelim   = ";"
	fumensDelim         = ";"
)

var requiredColumns = []string{ColumnQueue, ColumnUnusedPieces, ColumnFumens}

// SaveRow is one path-table row expanded into its individual save
// candidates, mirroring SavesRow.
type SaveRow struct {
	Saves     []string
	Solveable bool
	Queue     string
	Fumens    [][]string
	Line      map[string]string
}

// PathReader streams a path CSV, deriving each row's save candidates from
// its unused-piece and fumen columns, grounded on SavesReader.
type PathReader struct {
	file           *os.File
	csv            *csv.Reader
	header         []string
	build          string
	leftover       string
	width, height  int
	hold           int
	unusedLastBag  PieceSet
	leadingSize    int
	bagComp        []int
	unusedLeftover Counter
}

// NewPathReader opens filepath and prepares a PathReader for the given PC
// geometry, build, and leftover.
func NewPathReader(filepath, build, leftover string, width, height, hold int) (*PathReader, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, validationErrorf("opening path file %s: %v", filepath, err)
	}

	text, err := decodePathFile(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, validationErrorf("reading path file header: %v", err)
	}
	if err := requireColumns(header); err != nil {
		f.Close()
		return nil, err
	}

	numPieces, err := NumPieces(width, height, hold)
	if err != nil {
		f.Close()
		return nil, err
	}
	bagComp, err := BagComposition(len(leftover), numPieces)
	if err != nil {
		f.Close()
		return nil, err
	}

	unusedLastBag := FinalBagUnused(build, leftover, bagComp)
	leadingSize := LeadingSize(bagComp)
	if len(build) > leadingSize {
		leadingSize = len(build)
	}
	unusedLeftover := NewCounter(leftover).Sub(NewCounter(build))

	return &PathReader{
		file:           f,
		csv:            r,
		header:         header,
		build:          build,
		leftover:       leftover,
		width:          width,
		height:         height,
		hold:           hold,
		unusedLastBag:  unusedLastBag,
		leadingSize:    leadingSize,
		bagComp:        bagComp,
		unusedLeftover: unusedLeftover,
	}, nil
}

// Close releases the underlying file.
func (pr *PathReader) Close() error {
	return pr.file.Close()
}

func decodePathFile(f *os.File) ([]byte, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, validationErrorf("reading path file: %v", err)
	}
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		data = data[3:]
	}
	if utf8.Valid(data) {
		return data, nil
	}
	reader := transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, validationErrorf("decoding path file as Shift-JIS: %v", err)
	}
	if !utf8.Valid(decoded) {
		return nil, validationErrorf("path file is neither valid UTF-8 nor Shift-JIS")
	}
	return decoded, nil
}

func requireColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		msg := missing[0]
		for _, m := range missing[1:] {
			msg += ", " + m
		}
		return validationErrorf("missing required columns: %s", msg)
	}
	return nil
}

// Read streams every row, expanding it to its save candidates. assignFumens
// populates Fumens (the fumen subset matching each save); assignLine
// populates Line with the raw CSV record keyed by header.
func (pr *PathReader) Read(assignFumens, assignLine bool) ([]SaveRow, error) {
	var rows []SaveRow
	numPieces, err := NumPieces(pr.width, pr.height, 0)
	if err != nil {
		return nil, err
	}

	for {
		record, err := pr.csv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, validationErrorf("reading path file row: %v", err)
		}
		line := make(map[string]string, len(pr.header))
		for i, col := range pr.header {
			if i < len(record) {
				line[col] = record[i]
			}
		}

		queue := line[ColumnQueue]
		fumensField := line[ColumnFumens]
		solveable := fumensField != ""
		if !solveable {
			row := SaveRow{Solveable: false, Queue: queue}
			if assignFumens {
				row.Fumens = [][]string{}
			}
			if assignLine {
				row.Line = line
			}
			rows = append(rows, row)
			continue
		}

		fullQueue := pr.build + queue
		if numPieces > len(fullQueue) {
			return nil, consistencyErrorf(queue, "full queue could not produce a %dx%d PC; build %q is likely too short", pr.width, pr.height, pr.build)
		}

		if n := pr.unusedLeftover.Total(); n > 0 {
			if n > len(queue) || NewCounter(queue[:n]) != pr.unusedLeftover {
				return nil, consistencyErrorf(queue, "queue does not begin with the unused leftover %s", pr.unusedLeftover.Elements())
			}
		}

		if len(pr.bagComp) >= 3 {
			bagEnd := len(pr.leftover) + 7
			if bagEnd > len(fullQueue) {
				return nil, consistencyErrorf(queue, "full queue too short to verify the bag following leftover")
			}
			if HasDuplicate(fullQueue[len(pr.leftover):bagEnd]) {
				return nil, consistencyErrorf(queue, "bag pieces [%d:%d) of the full queue repeat a piece", len(pr.leftover), bagEnd)
			}
		}

		var seenTail PieceSet
		if pr.leadingSize < len(fullQueue) {
			seenTail = NewPieceSet(fullQueue[pr.leadingSize:])
		}
		unseenLastBag := pr.unusedLastBag.Sub(seenTail)

		unusedPieces := splitNonEmpty(line[ColumnUnusedPieces], unusedPiecesDelim)
		fumenCodes := splitNonEmpty(fumensField, fumensDelim)

		var saves []string
		var saveFumens [][]string
		for _, unusedPiece := range unusedPieces {
			save := SortQueue(unseenLastBag.String() + unusedPiece)
			saves = append(saves, save)

			if assignFumens {
				matching, err := matchingFumens(fumenCodes, queue, unusedPiece)
				if err != nil {
					return nil, err
				}
				saveFumens = append(saveFumens, matching)
			}
		}

		row := SaveRow{Saves: saves, Solveable: true, Queue: queue}
		if assignFumens {
			row.Fumens = saveFumens
		}
		if assignLine {
			row.Line = line
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ReadCached is the fumen-less, line-less form of Read (what Percent needs)
// with a SaveRowCache read-through in front of it: a hit skips re-deriving
// every row's saves from the path file entirely, the way a resumed
// cmd/graph run in the teacher repo skips positions it already solved.
// A cache miss derives the rows normally and writes them back for next time.
func (pr *PathReader) ReadCached(rowCache *cache.SaveRowCache, key cache.Key) ([]SaveRow, error) {
	if rowCache == nil {
		return pr.Read(false, false)
	}
	if rowCache.Has(key) {
		records, err := rowCache.Read(key)
		if err != nil {
			return nil, err
		}
		rows := make([]SaveRow, len(records))
		for i, rec := range records {
			rows[i] = SaveRow{Queue: rec.Queue, Solveable: rec.Solveable, Saves: rec.Saves}
		}
		return rows, nil
	}

	rows, err := pr.Read(false, false)
	if err != nil {
		return nil, err
	}
	records := make([]cache.SaveRowRecord, len(rows))
	for i, row := range rows {
		records[i] = cache.SaveRowRecord{
			Queue:      row.Queue,
			Solveable:  row.Solveable,
			Saves:      row.Saves,
			FumenCount: int32(len(row.Saves)),
		}
	}
	if err := rowCache.Write(key, records); err != nil {
		return nil, err
	}
	return rows, nil
}

// matchingFumens finds which of a row's candidate fumens left unusedPiece
// unused, by comparing the queue's piece multiset against the multiset used
// in each fumen's first-page comment - the Counter-difference approach
// spec.md describes directly, used here instead of the original's
// ASCII-sum single-character trick since it stays type-safe and explicit
// while remaining exactly as correct for the single-piece-difference case
// the format guarantees.
func matchingFumens(fumenCodes []string, queue, unusedPiece string) ([]string, error) {
	queueCount := NewCounter(queue)

	var matching []string
	for _, code := range fumenCodes {
		comments, err := fumen.Comments(code)
		if err != nil {
			return nil, consistencyErrorf(queue, "reading fumen %s comment: %v", code, err)
		}
		if len(comments) == 0 {
			return nil, consistencyErrorf(queue, "fumen %s has no pages", code)
		}
		if comments[0] == "" {
			return nil, consistencyErrorf(queue, "fumen %s has an empty first-page comment", code)
		}
		usedCount := NewCounter(comments[0])
		diff := queueCount.Sub(usedCount)
		if diff.Total() == 1 && diff.Elements() == unusedPiece {
			matching = append(matching, code)
		}
	}
	return matching, nil
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i+len(sep) <= len(s); i++ {
		if s[i:i+len(sep)] == sep {
			out = append(out, s[start:i])
			start = i + len(sep)
		}
	}
	out = append(out, s[start:])
	return out
}
