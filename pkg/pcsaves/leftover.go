package pcsaves

import "strings"

// ParseLeftoverBuild validates and normalizes the -b/-l/-pc/-ll/-ho CLI
// inputs into a concrete (leftover, build) pair, reproducing
// original_source/lib/argument_parser.py's parse_leftover_build validation
// ladder. leftoverLength and pcNum are nil when their corresponding flag
// was not supplied. build is nil when -b was not supplied.
//
// leftover supports the "T-IO" form: pieces before the '-' are still held,
// pieces after it were already used from the following bag. In that form
// the returned build and leftover are both prefixed with the same number of
// 'X' placeholders (leftoverLength minus the held pieces), so the returned
// leftover has length leftoverLength, matching the original's behavior.
func ParseLeftoverBuild(leftover string, leftoverLength *int, build *string, pcNum *int, hold int) (string, string, error) {
	if build != nil && !IsQueue(*build) {
		return "", "", validationErrorf("build expected to contain only %s pieces", BAG)
	}
	if build != nil {
		for i := 1; i < len(*build); i++ {
			if pieceRank[(*build)[i-1]] >= pieceRank[(*build)[i]] {
				return "", "", validationErrorf("build expected to be a subsequence of %s", BAG)
			}
		}
	}
	if leftover == "" && build != nil {
		return "", "", validationErrorf("-l must be set")
	}

	parts := strings.SplitN(leftover, "-", 3)
	if len(parts) > 2 {
		return "", "", validationErrorf("leftover should contain at most one '-'")
	}
	for _, part := range parts {
		if !IsQueue(part) {
			return "", "", validationErrorf("leftover expected to contain only %s pieces aside from '-'", BAG)
		}
	}

	if pcNum != nil {
		loNum, err := PCNUM2LONUM(*pcNum)
		if err != nil {
			return "", "", err
		}
		if leftoverLength != nil && *leftoverLength != loNum {
			return "", "", validationErrorf("leftover length and PC number are inconsistent")
		}
		leftoverLength = &loNum
	}

	if len(parts) == 1 && build != nil {
		if pcNum != nil && *leftoverLength != len(parts[0]) {
			return "", "", validationErrorf("PC number doesn't match the actual length of leftover")
		}
		if leftoverLength != nil && *leftoverLength != len(parts[0]) {
			return "", "", validationErrorf("leftover length doesn't match the actual length of leftover")
		}
	}

	if leftoverLength == nil {
		return "", "", validationErrorf("either -pc or -ll must be set")
	}
	if *leftoverLength < 1 || *leftoverLength > 7 {
		return "", "", validationErrorf("leftover length out of valid 1-7 range")
	}

	if len(parts) == 1 && len(parts[0]) < *leftoverLength {
		parts = append(parts, "")
	}
	if len(parts) == 2 && len(parts[0]) > hold && len(parts[1]) > 0 {
		return "", "", validationErrorf("more leftover pieces unused than possible to hold")
	}

	var resolvedLeftover, resolvedBuild string
	if len(parts) == 1 && build != nil {
		resolvedLeftover = parts[0]
		resolvedBuild = *build
	} else if len(parts) == 2 {
		usedLeftoverLength := *leftoverLength - len(parts[0])
		resolvedBuild = strings.Repeat("X", usedLeftoverLength) + parts[1]
		resolvedLeftover = strings.Repeat("X", usedLeftoverLength) + parts[0]
	} else {
		resolvedLeftover = parts[0]
		if build != nil {
			resolvedBuild = *build
		}
	}

	leftoverCount := genericCount(resolvedLeftover)
	buildCount := genericCount(resolvedBuild)
	onlyLeftoverBuild := genericLE(buildCount, leftoverCount)
	unusedLeftover := genericSub(leftoverCount, buildCount)

	if !onlyLeftoverBuild && genericTotal(unusedLeftover) > hold {
		return "", "", validationErrorf("not possible to build %s with given leftover %s with hold %d", resolvedBuild, resolvedLeftover, hold)
	}

	return resolvedLeftover, resolvedBuild, nil
}

// genericCount, unlike Counter, counts arbitrary bytes (including the 'X'
// unknown-piece placeholder), matching Python's untyped collections.Counter
// usage in the original's hold-feasibility check.
func genericCount(s string) map[byte]int {
	counts := make(map[byte]int, len(s))
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}
	return counts
}

func genericSub(a, b map[byte]int) map[byte]int {
	out := make(map[byte]int, len(a))
	for k, n := range a {
		diff := n - b[k]
		if diff > 0 {
			out[k] = diff
		}
	}
	return out
}

func genericLE(a, b map[byte]int) bool {
	for k, n := range a {
		if n > b[k] {
			return false
		}
	}
	return true
}

func genericTotal(m map[byte]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}
