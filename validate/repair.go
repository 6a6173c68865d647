package validate

import "math/bits"

// Repair greedily assigns unclaimed physical-address bits in
// incomplete disjoint sets to column_bits (scanning low to high) and
// row_bits (scanning high to low), until their popcounts reach
// wantColBits and wantRowBits respectively, then re-checks
// injectivity. ok is false if injectivity still fails afterward - an
// irreparable mismatch the caller must report, not retry
// automatically.
func Repair(sets [][]uint64, rowBits, colBits uint64, wantRowBits, wantColBits int) (newRowBits, newColBits uint64, ok bool) {
	newRowBits, newColBits = rowBits, colBits

	var addressingFns []uint64
	for _, set := range sets {
		addressingFns = append(addressingFns, set...)
	}

	for _, set := range sets {
		s := mask(set)
		dim := bits.OnesCount64(s)
		contributors := len(set) + bits.OnesCount64(newRowBits&s) + bits.OnesCount64(newColBits&s)
		if contributors >= dim {
			continue
		}

		for bit := 0; bit < 64 && bits.OnesCount64(newColBits) < wantColBits; bit++ {
			m := uint64(1) << bit
			if s&m != 0 && newColBits&m == 0 {
				newColBits |= m
			}
		}

		for bit := 63; bit >= 0 && bits.OnesCount64(newRowBits) < wantRowBits; bit-- {
			m := uint64(1) << bit
			if s&m != 0 && newRowBits&m == 0 {
				newRowBits |= m
			}
		}
	}

	ok = CheckInjectivity(sets, addressingFns, newRowBits, newColBits)
	return newRowBits, newColBits, ok
}
