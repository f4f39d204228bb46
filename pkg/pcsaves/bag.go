package pcsaves

// DefaultHold is the number of pieces that can be held; historically a constant 1
// in the original implementation (see DESIGN.md's "hold semantics
// ambiguity" note), generalized here to a variable per spec.md §9.
const DefaultHold = 1

// NumPieces computes the number of pieces consumed by a width x height PC,
// equivalent to the original's WIDTHHEIGHT2NUMPIECES: (width*height)/4 + hold.
func NumPieces(width, height, hold int) (int, error) {
	area := width * height
	if area%4 != 0 {
		return 0, validationErrorf("width and height do not produce an area divisible by 4, necessary for a PC")
	}
	return area/4 + hold, nil
}

// PCNUM2LONUM returns the leftover length implied by a 4-line PC index,
// k in [1,9]: a 1-indexed modulus of (4k+2) over 7, i.e. ((4k+1) mod 7) + 1
// so the result always lands in [1,7] (a plain 0-indexed "(4k+2) mod 7"
// would occasionally yield 0, which is not a valid leftover length).
func PCNUM2LONUM(k int) (int, error) {
	if k < 1 || k > 9 {
		return 0, validationErrorf("pc number %d out of valid 1-9 range", k)
	}
	return ((4*k+1)%7 + 1), nil
}

// BagComposition yields the prefix of the full queue accounted for by each
// bag: [leftoverLen, 7, 7, ..., r], summing to numPieces, with the final
// entry r <= 7. Equivalent to the original's LONUM2BAGCOMP.
func BagComposition(leftoverLen, numPieces int) ([]int, error) {
	if leftoverLen < 1 || leftoverLen > 7 {
		return nil, validationErrorf("leftover length %d out of valid 1-7 range", leftoverLen)
	}
	comp := []int{leftoverLen}
	sum := leftoverLen
	for sum < numPieces {
		next := numPieces - sum
		if next > 7 {
			next = 7
		}
		comp = append(comp, next)
		sum += next
	}
	return comp, nil
}

// LeadingSize is the sum of every bag in comp but the last - the index in
// the full queue at which the final bag's pieces begin.
func LeadingSize(comp []int) int {
	total := 0
	for i := 0; i < len(comp)-1; i++ {
		total += comp[i]
	}
	return total
}

// FinalBagUnused computes the set of bag pieces the build could not have
// consumed from the final bag: BAG minus (pieces the build used that
// weren't already accounted for by the leftover and any full interior
// bags). A bag property bounds usage to at most one of each piece, so the
// complement against the full bag gives the candidate final-bag saves
// before the queue itself is examined.
func FinalBagUnused(build, leftover string, bagComp []int) PieceSet {
	var consumedBeforeFinal Counter
	if len(bagComp) < 3 {
		consumedBeforeFinal = NewCounter(leftover)
	} else {
		consumedBeforeFinal = NewCounter(leftover + BAG)
	}

	buildCounter := NewCounter(build)
	lastBagUsed := buildCounter.Sub(consumedBeforeFinal)

	var lastBagUsedSet PieceSet
	for i, n := range lastBagUsed {
		if n > 0 {
			lastBagUsedSet[i] = true
		}
	}

	return FullBagSet().Sub(lastBagUsedSet)
}
