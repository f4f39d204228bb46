package pcsaves

import (
	"encoding/json"
	"os"
	"strings"
)

const (
	wantedSaveCommentDelimiter = "#"
	wantedSaveDelimiter        = ","
)

// ResolveWantedSaves expands CLI-supplied preset keys and raw wanted-save
// expressions into parallel (expression, label) slices, grounded on
// argument_parser.py's parse_wanted_saves. A raw entry may carry its own
// "#label" suffix; an entry without one is its own label.
func ResolveWantedSaves(keys []string, rawWantedSaves []string, savesPath string) ([]string, []string, error) {
	var data []string

	if len(keys) > 0 {
		presets, err := LoadPresets(savesPath)
		if err != nil {
			return nil, nil, err
		}
		for _, key := range keys {
			entries, ok := presets[key]
			if !ok {
				return nil, nil, validationErrorf("key %s not found in %s", key, savesPath)
			}
			data = append(data, entries...)
		}
	}
	for _, raw := range rawWantedSaves {
		data = append(data, strings.Split(raw, wantedSaveDelimiter)...)
	}

	wantedSaves := make([]string, 0, len(data))
	labels := make([]string, 0, len(data))
	for _, entry := range data {
		parts := strings.SplitN(entry, wantedSaveCommentDelimiter, 3)
		if len(parts) > 2 {
			return nil, nil, validationErrorf("too many %s in %s", wantedSaveCommentDelimiter, entry)
		}
		wantedSave := parts[0]
		label := parts[0]
		if len(parts) == 2 {
			label = parts[1]
		}
		wantedSaves = append(wantedSaves, wantedSave)
		labels = append(labels, label)
	}

	return wantedSaves, labels, nil
}

// LoadPresets reads a saves.json preset file: a map from a short key to a
// list of wanted-save expressions (each possibly carrying its own
// "#label" suffix).
func LoadPresets(path string) (map[string][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, validationErrorf("reading saves preset file %s: %v", path, err)
	}
	var presets map[string][]string
	if err := json.Unmarshal(raw, &presets); err != nil {
		return nil, validationErrorf("parsing saves preset file %s: %v", path, err)
	}
	return presets, nil
}
