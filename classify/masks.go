package classify

import "github.com/scale-snu/sudoku/gf2"

// UncoveredMask returns the physical-address bits in
// [cachelineOffset, maxBits) that no addressing function touches.
// These are candidate row/column bits that never participate in bank
// selection.
func UncoveredMask(addressing []uint64, maxBits, cachelineOffset int) uint64 {
	var covered uint64
	for _, f := range addressing {
		covered |= f
	}

	all := uint64(1)<<maxBits - 1
	below := uint64(1)<<cachelineOffset - 1

	return all &^ covered &^ below
}

// UsedBitCandidates partitions addressing's bits into disjoint
// connected components (functions sharing a bit join the same
// component), then, for each component, enumerates every nonzero
// subset of the component's bit-mask with popcount under 4 whose
// XOR-parity is zero across every addressing function overlapping the
// component. Those subsets are exactly the flips that move within a
// bank without crossing it - candidates for row/column bits among
// bits the addressing functions do use.
func UsedBitCandidates(addressing []uint64) [][]uint64 {
	components := disjointBitSets(addressing)

	out := make([][]uint64, 0, len(components))
	for _, comp := range components {
		var overlapping []uint64
		for _, f := range addressing {
			if f&comp != 0 {
				overlapping = append(overlapping, f)
			}
		}

		out = append(out, candidatesWithinComponent(comp, overlapping))
	}

	return out
}

// disjointBitSets unions masks that share at least one bit into
// connected components, returning one combined bit-mask per
// component.
func disjointBitSets(masks []uint64) []uint64 {
	var components []uint64

	for _, m := range masks {
		merged := m
		remaining := components[:0]

		for _, c := range components {
			if c&merged != 0 {
				merged |= c
			} else {
				remaining = append(remaining, c)
			}
		}

		components = append(remaining, merged)
	}

	return components
}

func candidatesWithinComponent(componentMask uint64, overlapping []uint64) []uint64 {
	var out []uint64
	for _, subset := range gf2.AllCombinations(componentMask) {
		if popcount(subset) >= 4 {
			continue
		}
		if constantParityAcross(subset, overlapping) {
			out = append(out, subset)
		}
	}
	return out
}

func constantParityAcross(mask uint64, functions []uint64) bool {
	for _, f := range functions {
		if gf2.XorReduce(mask, f) != 0 {
			return false
		}
	}
	return true
}

func popcount(x uint64) int {
	n := 0
	for x != 0 {
		n += int(x & 1)
		x >>= 1
	}
	return n
}
