package gf2

import "math/bits"

// Reduce takes a set of linear functions (FunctionMasks) and returns a
// linearly independent subset of the original masks that spans the
// same row-space as the input. Functions are processed in the order
// given; a function is kept as soon as it cannot be expressed as the
// XOR of previously-kept functions, using its own highest set bit
// (after reduction) as its pivot. This keeps the result a subset of
// the original masks - a "canonical" independent set - rather than an
// arbitrary linear combination of them.
func Reduce(functions []uint64) []uint64 {
	type pivotEntry struct {
		orig    uint64
		reduced uint64
	}

	pivots := make(map[int]pivotEntry)
	var kept []uint64

	for _, f := range functions {
		reduced := f
		for reduced != 0 {
			pivotBit := bits.Len64(reduced) - 1
			entry, ok := pivots[pivotBit]
			if !ok {
				break
			}
			reduced ^= entry.reduced
		}

		if reduced == 0 {
			continue
		}

		pivotBit := bits.Len64(reduced) - 1
		pivots[pivotBit] = pivotEntry{orig: f, reduced: reduced}
		kept = append(kept, f)
	}

	return kept
}
