package solve

import (
	"fmt"
	"math/rand"

	"github.com/scale-snu/sudoku/gf2"
	"github.com/scale-snu/sudoku/pool"
)

// SolveOrExit calls Solve, passing any error to DefaultExitFn. The
// boolean result (infeasible / no matching virtual address) is
// returned unchanged - that is an ordinary outcome callers must
// handle, not a fatal condition.
func SolveOrExit(p *pool.Pool, base pool.AddressTuple, c Constraints, pciOffset uint64, maxBits int) (pool.AddressTuple, bool) {
	tuple, ok, err := Solve(p, base, c, pciOffset, maxBits)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to solve address constraints - %w", err))
	}
	return tuple, ok
}

// Solve builds a GF(2) linear system from c relative to base, solves
// it for a particular solution, randomizes within the resulting
// affine solution space, and maps the result back to a pool-resident
// virtual address.
//
// It returns (tuple, true, nil) on success and (AddressTuple{}, false,
// nil) when the constraints are infeasible or no pool address maps to
// the solved physical address - both are ordinary outcomes the spec
// expects callers to retry against, never errors.
func Solve(p *pool.Pool, base pool.AddressTuple, c Constraints, pciOffset uint64, maxBits int) (pool.AddressTuple, bool, error) {
	if p == nil {
		return pool.AddressTuple{}, false, fmt.Errorf("pool must not be nil")
	}
	if maxBits <= CachelineOffsetBits {
		return pool.AddressTuple{}, false, fmt.Errorf("maxBits (%d) must exceed the cacheline offset (%d)", maxBits, CachelineOffsetBits)
	}

	a0 := base.PAddr - pciOffset

	sys := gf2.NewSystem(CachelineOffsetBits, maxBits)

	for _, s := range c.Same {
		target := gf2.Parity(uint64(s) & a0)
		if !sys.AddRow(uint64(s), target) {
			return pool.AddressTuple{}, false, nil
		}
	}

	for _, d := range c.Diff {
		target := 1 ^ gf2.Parity(uint64(d)&a0)
		if !sys.AddRow(uint64(d), target) {
			return pool.AddressTuple{}, false, nil
		}
	}

	x0 := sys.ParticularSolution()

	for _, v := range sys.NullspaceBasis() {
		if rand.Intn(2) == 1 {
			x0 ^= v
		}
	}

	pS := x0 + pciOffset

	vS, ok := p.PhysToVirt(pS)
	if !ok {
		return pool.AddressTuple{}, false, nil
	}

	return pool.AddressTuple{VAddr: vS, PAddr: pS}, true, nil
}
