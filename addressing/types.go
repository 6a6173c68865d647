package addressing

import (
	"github.com/scale-snu/sudoku/gf2"
	"github.com/scale-snu/sudoku/pool"
)

// AddressTuple aliases pool.AddressTuple so every package downstream
// of pool can speak in addressing.AddressTuple without importing pool
// directly, and without creating an import cycle back into pool (pool
// is the lowest-level package and must not depend on addressing).
type AddressTuple = pool.AddressTuple

// FunctionMask aliases gf2.FunctionMask for the same reason.
type FunctionMask = gf2.FunctionMask

// FunctionSet aliases gf2.FunctionSet, giving callers Add/Slice/etc.
// without a second implementation.
type FunctionSet = gf2.FunctionSet

// NewFunctionSet returns an empty FunctionSet.
func NewFunctionSet() *FunctionSet {
	return gf2.NewFunctionSet()
}
