package classify

import (
	"math/bits"

	"github.com/scale-snu/sudoku/gf2"
)

// ReduceRowColumn reduces rowFns and colFns over GF(2), then extracts
// canonical single-bit row/column masks: the highest set bit of each
// reduced row function, and the lowest set bit of each reduced column
// function, deduplicated and OR'd together.
//
// Row functions are reduced toward their MSB because a row-buffer
// conflict is driven by the most significant differing address bit in
// the row-indexing sub-space; column functions toward their LSB for
// the symmetric reason on the cacheline-adjacent side.
func ReduceRowColumn(rowFns, colFns []uint64) (rowBits, colBits uint64) {
	reducedRow := gf2.Reduce(rowFns)
	reducedCol := gf2.Reduce(colFns)

	seen := make(map[int]struct{})
	for _, f := range reducedRow {
		if f == 0 {
			continue
		}
		bit := 63 - bits.LeadingZeros64(f)
		if _, ok := seen[bit]; ok {
			continue
		}
		seen[bit] = struct{}{}
		rowBits |= uint64(1) << bit
	}

	seen = make(map[int]struct{})
	for _, f := range reducedCol {
		if f == 0 {
			continue
		}
		bit := bits.TrailingZeros64(f)
		if _, ok := seen[bit]; ok {
			continue
		}
		seen[bit] = struct{}{}
		colBits |= uint64(1) << bit
	}

	return rowBits, colBits
}
