package oracle

import (
	"unsafe"

	"github.com/scale-snu/sudoku/stats"
)

// RefreshSingleAccess repeatedly times single accesses to a over a
// long window. Column 0 of the returned histogram holds the start
// timestamp of each trial (so that spike indices can later be
// translated into elapsed-cycle intervals); column stats.LatencyColumn
// holds the trial's latency. Refreshes appear as periodic latency
// spikes in that column.
func (o *Oracle) RefreshSingleAccess(a unsafe.Pointer, iters int) *stats.Histogram {
	if iters == 0 {
		iters = o.cfg.RefreshIters
	}

	h := stats.NewHistogram(iters, 2)

	for i := 0; i < iters; i++ {
		var start uint64
		latency := o.timedRegion([]unsafe.Pointer{a}, func() {
			start = o.clock.Now()
			readByte(a)
		})

		h.Set(i, 0, start)
		h.Set(i, stats.LatencyColumn, latency)
	}

	return h
}

// RefreshPairedAccessCoarse times iters trials of a paired access to
// (a, b) over a long window, without distinguishing which of the two
// addresses a refresh landed on. On DDR5 this is the signal of
// interest: whether the pair straddles a refresh boundary at all.
func (o *Oracle) RefreshPairedAccessCoarse(a, b unsafe.Pointer, iters int) *stats.Histogram {
	if iters == 0 {
		iters = o.cfg.RefreshIters
	}

	h := stats.NewHistogram(iters, 2)

	for i := 0; i < iters; i++ {
		var start uint64
		latency := o.timedRegion([]unsafe.Pointer{a, b}, func() {
			start = o.clock.Now()
			readByte(a)
			readByte(b)
		})

		h.Set(i, 0, start)
		h.Set(i, stats.LatencyColumn, latency)
	}

	return h
}

// RefreshPairedAccessFine times iters trials of a paired access to
// (a, b), recording the latency of each load separately so that, on
// DDR4, the refresh can be attributed to whichever of the two
// addresses actually caused it. Column 0 holds the trial's start
// timestamp, column 1 the latency of loading a, column 2 the latency
// of loading b.
func (o *Oracle) RefreshPairedAccessFine(a, b unsafe.Pointer, iters int) *stats.Histogram {
	if iters == 0 {
		iters = o.cfg.RefreshIters
	}

	h := stats.NewHistogram(iters, 3)

	for i := 0; i < iters; i++ {
		o.clock.Flush(a)
		o.clock.Flush(b)
		o.clock.MFence()

		start := o.clock.Now()
		readByte(a)
		tMid := o.clock.Now()
		readByte(b)
		o.clock.LFence()
		tEnd := o.clock.Now()

		h.Set(i, 0, start)
		h.Set(i, 1, tMid-start)
		h.Set(i, 2, tEnd-tMid)
	}

	return h
}

// FilterRefreshTiming returns the row indices whose latency column
// exceeds threshold: the samples that look like a refresh spike.
func FilterRefreshTiming(h *stats.Histogram, threshold uint64) []int {
	var spikes []int
	for row := 0; row < h.Rows(); row++ {
		if h.Get(row, stats.LatencyColumn) > threshold {
			spikes = append(spikes, row)
		}
	}
	return spikes
}

// ComputeRefreshIntervals returns the sequence of deltas between
// consecutive spike row indices. With spikeIdx sorted ascending (as
// FilterRefreshTiming returns them), this is the periodicity of the
// refresh signal in sample counts.
func ComputeRefreshIntervals(spikeIdx []int) []uint64 {
	if len(spikeIdx) < 2 {
		return nil
	}

	intervals := make([]uint64, 0, len(spikeIdx)-1)
	for i := 1; i < len(spikeIdx); i++ {
		intervals = append(intervals, uint64(spikeIdx[i]-spikeIdx[i-1]))
	}
	return intervals
}
