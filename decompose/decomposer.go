package decompose

import (
	"math/rand"
	"sort"
	"unsafe"

	"github.com/scale-snu/sudoku/gf2"
	"github.com/scale-snu/sudoku/oracle"
	"github.com/scale-snu/sudoku/pool"
	"github.com/scale-snu/sudoku/solve"
)

// Solver is solve.Solve with the pool, PCI offset and bit width bound
// in and the error result dropped; a caller adapts solve.Solve to it
// with a closure, while tests substitute a deterministic stand-in
// instead of driving the real GF(2) solver against a pool.
type Solver func(base pool.AddressTuple, c solve.Constraints) (pool.AddressTuple, bool)

// Decomposer splits a reduced set of bank-indexing functions into
// rank, bank-group, and bank-address components, per spec.md §4.10.
// Platform only changes which RefreshOracle is selected and how the
// rank component is labeled - never the underlying bit arithmetic
// (spec.md §9).
type Decomposer struct {
	Platform Platform
	Pool     *pool.Pool
	Oracle   *oracle.Oracle
	Refresh  RefreshOracle
	Solver   Solver

	rng *rand.Rand
}

// NewDecomposer wires a Decomposer's RefreshOracle from platform per
// spec.md §9: DDR4 uses the fine-grained paired refresh oracle (it
// can attribute a spike to whichever address caused it), DDR5 and
// AMDZen use the coarse one.
func NewDecomposer(platform Platform, p *pool.Pool, o *oracle.Oracle, solver Solver, iters int, threshold uint64) *Decomposer {
	var refresh RefreshOracle
	if platform == IntelDDR4 {
		refresh = FineRefreshOracle{Oracle: o, Iters: iters, Threshold: threshold}
	} else {
		refresh = CoarseRefreshOracle{Oracle: o, Iters: iters, Threshold: threshold}
	}

	return &Decomposer{
		Platform: platform,
		Pool:     p,
		Oracle:   o,
		Refresh:  refresh,
		Solver:   solver,
		rng:      rand.New(rand.NewSource(1)),
	}
}

// pairsDifferingOnly asks d.Solver for up to want address pairs that
// agree with base on every function in fns except target, which must
// differ.
func (d *Decomposer) pairsDifferingOnly(fns []uint64, target uint64, base pool.AddressTuple, want int) []pool.AddressTuple {
	c := solve.Constraints{Diff: []gf2.FunctionMask{gf2.FunctionMask(target)}}
	for _, f := range fns {
		if f == target {
			continue
		}
		c.Same = append(c.Same, gf2.FunctionMask(f))
	}

	var out []pool.AddressTuple
	for attempt := 0; attempt < want*10 && len(out) < want; attempt++ {
		tuple, ok := d.Solver(base, c)
		if ok {
			out = append(out, tuple)
		}
	}
	return out
}

// DecomposeByRefresh classifies each function in fns as a rank
// function (regular refresh interval below
// cfg.RegularRefreshIntervalThreshold multiples of
// cfg.RefreshCycleLowerBound, which also guards degenerate spike
// counts) or leaves it in rest for DecomposeByConsecutive to further
// split.
func (d *Decomposer) DecomposeByRefresh(fns []uint64, base pool.AddressTuple, cfg RefreshConfig) (rankFns []uint64, rest []uint64, err error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	for _, f := range fns {
		pairs := d.pairsDifferingOnly(fns, f, base, cfg.MinPairsPerFunction)
		if len(pairs) == 0 {
			rest = append(rest, f)
			continue
		}

		regular, total := 0, 0
		for _, p := range pairs {
			for _, iv := range d.Refresh.Measure(base, p) {
				if iv < cfg.RefreshCycleLowerBound {
					continue
				}
				total++
				if iv < cfg.RegularRefreshIntervalThreshold*cfg.RefreshCycleLowerBound {
					regular++
				}
			}
		}

		if total > 0 && regular*2 > total {
			rankFns = append(rankFns, f)
		} else {
			rest = append(rest, f)
		}
	}

	return rankFns, rest, nil
}

// DecomposeByConsecutive splits fns into bank-address and bank-group
// functions by average read-read latency: the numBankAddrBits
// functions with the highest average latency become bankAddrFns, the
// remainder bankGroupFns.
//
// addressingFns is the full recovered addressing function set (not
// just fns) and columnBits is the column-bit mask IdentifyBits
// produced; both feed rowBufferHitAddrs, which needs to know which
// column bits are still free to vary without crossing into a
// different row.
func (d *Decomposer) DecomposeByConsecutive(fns []uint64, addressingFns []uint64, base pool.AddressTuple, numBankAddrBits int, cfg ConsecutiveConfig) (bankAddrFns, bankGroupFns []uint64, err error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	var usedBits uint64
	for _, f := range addressingFns {
		usedBits |= f
	}

	type scored struct {
		fn  uint64
		avg float64
	}

	var scores []scored
	for _, f := range fns {
		pairs := d.pairsDifferingOnly(fns, f, base, cfg.MinPairsPerFunction)
		if len(pairs) == 0 {
			scores = append(scores, scored{fn: f, avg: 0})
			continue
		}

		var sum float64
		var trials int
		for _, p := range pairs {
			first, ok := d.rowBufferHitAddrs(base, cfg.ColumnBits, usedBits, cfg.ConsecutiveLength, cfg.PCIOffset)
			if !ok {
				continue
			}
			second, ok := d.rowBufferHitAddrs(p, cfg.ColumnBits, usedBits, cfg.ConsecutiveLength, cfg.PCIOffset)
			if !ok {
				continue
			}

			avg, _, _, _ := d.Oracle.ReadReadLatencySummary(first, second, cfg.ConsecutiveLength, cfg.ConsecutiveIters)
			sum += avg
			trials++
		}

		if trials == 0 {
			scores = append(scores, scored{fn: f, avg: 0})
			continue
		}
		scores = append(scores, scored{fn: f, avg: sum / float64(trials)})
	}

	sort.Slice(scores, func(i, j int) bool { return scores[i].avg > scores[j].avg })

	for i, s := range scores {
		if i < numBankAddrBits {
			bankAddrFns = append(bankAddrFns, s.fn)
		} else {
			bankGroupFns = append(bankGroupFns, s.fn)
		}
	}

	return bankAddrFns, bankGroupFns, nil
}

// rowBufferHitOffsets picks length XOR offsets that vary only column
// bits neither claimed by any addressing function nor already fixed
// by the caller (usedBits), so every offset stays within the row base
// addresses. It shuffles the candidate set with d.rng before
// truncating, matching how the original sudoku generator randomizes
// its row-buffer-hit sequences rather than always picking the same
// low-bit combinations. The offsets are distinct only when there are
// at least length combinations; with fewer, the shuffled combinations
// repeat in order, and with none every offset is 0.
func (d *Decomposer) rowBufferHitOffsets(columnBits, usedBits uint64, length int) []uint64 {
	unusedColumnBits := columnBits &^ usedBits

	combos := gf2.AllCombinations(unusedColumnBits)
	d.rng.Shuffle(len(combos), func(i, j int) { combos[i], combos[j] = combos[j], combos[i] })

	offsets := make([]uint64, length)
	for i := range offsets {
		if len(combos) == 0 {
			offsets[i] = 0
			continue
		}
		offsets[i] = combos[i%len(combos)]
	}
	return offsets
}

// rowBufferHitAddrs resolves length same-row virtual addresses
// (distinct exactly when rowBufferHitOffsets' offsets are) around base by XORing rowBufferHitOffsets' offsets into
// base's PCI-relative physical address and mapping each back through
// the pool. It reports ok=false if any offset fails to resolve to a
// pool-resident address, so the caller can discard the trial instead
// of measuring a bogus burst.
func (d *Decomposer) rowBufferHitAddrs(base pool.AddressTuple, columnBits, usedBits uint64, length int, pciOffset uint64) (addrs []unsafe.Pointer, ok bool) {
	a0 := base.PAddr - pciOffset

	offsets := d.rowBufferHitOffsets(columnBits, usedBits, length)

	addrs = make([]unsafe.Pointer, length)
	for i, offset := range offsets {
		v, ok := d.Pool.PhysToVirt((a0 ^ offset) + pciOffset)
		if !ok {
			return nil, false
		}
		addrs[i] = v
	}
	return addrs, true
}
