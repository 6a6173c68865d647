package validate

import "math/bits"

// CheckInjectivity implements spec.md §4.9's rank-nullity check: for
// every disjoint set S, the number of addressing functions touching S
// plus the row and column bits claimed within S must equal dim(S) =
// popcount(S). Equality for every set means every physical-address
// bit in the addressing-function space is spent exactly once across
// functions, row bits, and column bits.
func CheckInjectivity(sets [][]uint64, addressingFns []uint64, rowBits, colBits uint64) bool {
	for _, set := range sets {
		s := mask(set)
		dim := bits.OnesCount64(s)

		contributors := 0
		for _, f := range addressingFns {
			if f&s != 0 {
				contributors++
			}
		}
		contributors += bits.OnesCount64(rowBits & s)
		contributors += bits.OnesCount64(colBits & s)

		if contributors != dim {
			return false
		}
	}

	return true
}
