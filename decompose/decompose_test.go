package decompose

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/scale-snu/sudoku/oracle"
	"github.com/scale-snu/sudoku/pool"
	"github.com/scale-snu/sudoku/solve"
	"github.com/scale-snu/sudoku/timing"
)

// stubSolver always succeeds, returning base with target's bit
// (derived from the Diff constraint) flipped into a synthetic
// physical address. It lets decompose tests exercise the pairing
// logic without a real pool or GF(2) solve.
func stubSolver(raw []byte) Solver {
	return func(base pool.AddressTuple, c solve.Constraints) (pool.AddressTuple, bool) {
		paddr := base.PAddr
		for _, d := range c.Diff {
			paddr ^= uint64(d)
		}
		if int(paddr) >= len(raw) {
			paddr = paddr % uint64(len(raw))
		}
		return pool.AddressTuple{VAddr: unsafe.Pointer(&raw[paddr]), PAddr: paddr}, true
	}
}

type fakeRefreshOracle struct {
	// Measure returns regular when the pair's physical addresses
	// differ by a mask listed in regularFns, and rest otherwise.
	regular []uint64
	rest    []uint64
	regularFns map[uint64]bool
}

func (f fakeRefreshOracle) Measure(a, b pool.AddressTuple) []uint64 {
	if a.PAddr^b.PAddr != 0 && f.regularFns[a.PAddr^b.PAddr] {
		return f.regular
	}
	return f.rest
}

func TestDecomposeByRefreshSeparatesRankFunctions(t *testing.T) {
	raw := make([]byte, 256)
	base := pool.AddressTuple{VAddr: unsafe.Pointer(&raw[0]), PAddr: 0}

	const rankFn = 0x10
	const otherFn = 0x20

	refresh := fakeRefreshOracle{
		regular:    []uint64{1500, 1600, 1700},
		rest:       []uint64{9000, 9500},
		regularFns: map[uint64]bool{rankFn: true},
	}

	d := &Decomposer{
		Platform: IntelDDR4,
		Refresh:  refresh,
		Solver:   stubSolver(raw),
	}

	rankFns, rest, err := d.DecomposeByRefresh([]uint64{rankFn, otherFn}, base, RefreshConfig{MaxBits: 8, RefreshCycleLowerBound: 1000, RegularRefreshIntervalThreshold: 2})
	if err != nil {
		t.Fatalf("DecomposeByRefresh: %v", err)
	}

	if len(rankFns) != 1 || rankFns[0] != rankFn {
		t.Fatalf("rankFns = %v, want [0x%x]", rankFns, rankFn)
	}
	if len(rest) != 1 || rest[0] != otherFn {
		t.Fatalf("rest = %v, want [0x%x]", rest, otherFn)
	}
}

func TestDecomposeByConsecutiveSplitsByLatency(t *testing.T) {
	raw := make([]byte, 256)
	base := pool.AddressTuple{VAddr: unsafe.Pointer(&raw[0]), PAddr: 0}

	p := pool.NewFromMappings(pool.Config{}, []pool.Mapping{
		{VAddr: unsafe.Pointer(&raw[0]), PAddrBase: 0, SizeBytes: len(raw)},
	})

	clock := timing.NewAddressLatencyClock(func(flushed []unsafe.Pointer) uint64 {
		// Higher total flush count (more lines touched by the burst)
		// stands in for "higher RDRD latency" in this synthetic
		// oracle, which is monotonic in burst size regardless of
		// which function produced it - enough to exercise sorting.
		return uint64(len(flushed))
	})
	o, err := oracle.NewOracle(clock, oracle.Config{ConsecutiveIters: 1})
	if err != nil {
		t.Fatalf("NewOracle: %v", err)
	}

	d := &Decomposer{
		Pool:   p,
		Oracle: o,
		Solver: stubSolver(raw),
		rng:    rand.New(rand.NewSource(1)),
	}

	fns := []uint64{0x10, 0x20, 0x40}
	cfg := ConsecutiveConfig{MaxBits: 8, ColumnBits: 0xff, ConsecutiveLength: 4, ConsecutiveIters: 1}
	bankAddr, bankGroup, err := d.DecomposeByConsecutive(fns, fns, base, 1, cfg)
	if err != nil {
		t.Fatalf("DecomposeByConsecutive: %v", err)
	}

	if len(bankAddr) != 1 {
		t.Fatalf("len(bankAddr) = %d, want 1", len(bankAddr))
	}
	if len(bankGroup) != 2 {
		t.Fatalf("len(bankGroup) = %d, want 2", len(bankGroup))
	}
}
