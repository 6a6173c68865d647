package decompose

import (
	"github.com/scale-snu/sudoku/oracle"
	"github.com/scale-snu/sudoku/pool"
)

// RefreshOracle abstracts over the platform-dependent refresh
// measurement spec.md §4.5/§9 calls for: DDR4 needs to attribute a
// refresh to whichever of two addresses caused it (fine), DDR5 only
// needs to know whether the pair straddled a refresh boundary at all
// (coarse). Measure returns the sequence of refresh-to-refresh
// intervals observed for the pair, in whatever units the underlying
// oracle's spike filter works in.
type RefreshOracle interface {
	Measure(a, b pool.AddressTuple) []uint64
}

// CoarseRefreshOracle wraps Oracle.RefreshPairedAccessCoarse for DDR5,
// where only the combined pair's refresh boundary matters.
type CoarseRefreshOracle struct {
	Oracle    *oracle.Oracle
	Iters     int
	Threshold uint64
}

func (o CoarseRefreshOracle) Measure(a, b pool.AddressTuple) []uint64 {
	h := o.Oracle.RefreshPairedAccessCoarse(a.VAddr, b.VAddr, o.Iters)
	spikes := oracle.FilterRefreshTiming(h, o.Threshold)
	return oracle.ComputeRefreshIntervals(spikes)
}

// FineRefreshOracle wraps Oracle.RefreshPairedAccessFine for DDR4,
// which records each load's latency separately so a refresh can be
// attributed to whichever address triggered it. Measure merges both
// columns' spikes, since DecomposeByRefresh only needs interval
// periodicity, not attribution.
type FineRefreshOracle struct {
	Oracle    *oracle.Oracle
	Iters     int
	Threshold uint64
}

func (o FineRefreshOracle) Measure(a, b pool.AddressTuple) []uint64 {
	h := o.Oracle.RefreshPairedAccessFine(a.VAddr, b.VAddr, o.Iters)

	var spikes []int
	for row := 0; row < h.Rows(); row++ {
		if h.Get(row, 1) > o.Threshold || h.Get(row, 2) > o.Threshold {
			spikes = append(spikes, row)
		}
	}

	return oracle.ComputeRefreshIntervals(spikes)
}
