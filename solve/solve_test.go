package solve

import (
	"testing"
	"unsafe"

	"github.com/scale-snu/sudoku/gf2"
	"github.com/scale-snu/sudoku/pool"
)

func testPool(t *testing.T) *pool.Pool {
	t.Helper()

	raw := make([]byte, 1<<20)
	return pool.NewFromMappings(pool.Config{PageSizeBytes: len(raw), NumPages: 1}, []pool.Mapping{
		{VAddr: unsafe.Pointer(&raw[0]), PAddrBase: 0x12000, SizeBytes: len(raw)},
	})
}

// TestSolveSatisfiesConstraints covers the S5 scenario from spec.md:
// base a0 = 0x12340, same = [0x40], diff = [0x80]. Any returned
// solution must agree with the base on bit 6 and disagree on bit 7.
func TestSolveSatisfiesConstraints(t *testing.T) {
	p := testPool(t)
	base := pool.AddressTuple{VAddr: unsafe.Pointer(uintptr(0x1000)), PAddr: 0x12340}

	c := Constraints{
		Same: []gf2.FunctionMask{0x40},
		Diff: []gf2.FunctionMask{0x80},
	}

	for i := 0; i < 20; i++ {
		tuple, ok, err := Solve(p, base, c, 0, 20)
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if !ok {
			continue
		}

		a0 := tuple.PAddr
		if gf2.Parity(0x40&a0) != gf2.Parity(0x40&base.PAddr) {
			t.Fatalf("solution 0x%x disagrees with base on the same-function bit", a0)
		}
		if gf2.Parity(0x80&a0) == gf2.Parity(0x80&base.PAddr) {
			t.Fatalf("solution 0x%x agrees with base on the diff-function bit", a0)
		}
		return
	}

	t.Fatalf("Solve never succeeded across 20 attempts against a single-page pool")
}

func TestSolveInfeasibleReturnsFalse(t *testing.T) {
	p := testPool(t)
	base := pool.AddressTuple{PAddr: 0x100}

	c := Constraints{
		Same: []gf2.FunctionMask{0x80},
		Diff: []gf2.FunctionMask{0x80},
	}

	tuple, ok, err := Solve(p, base, c, 0, 20)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if ok {
		t.Fatalf("expected infeasible constraints to fail, got %+v", tuple)
	}
}

func TestSolveRejectsNilPool(t *testing.T) {
	_, _, err := Solve(nil, pool.AddressTuple{}, Constraints{}, 0, 20)
	if err == nil {
		t.Fatalf("expected an error for a nil pool")
	}
}
