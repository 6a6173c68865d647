package solve

import "github.com/scale-snu/sudoku/gf2"

// Constraints describes the functions a solved address must agree
// with (Same) or disagree with (Diff) relative to a base address.
type Constraints struct {
	Same []gf2.FunctionMask
	Diff []gf2.FunctionMask
}
