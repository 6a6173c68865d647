package oracle

import (
	"unsafe"

	"github.com/scale-snu/sudoku/stats"
)

// SingleAccess times iters repeated trials of flushing and reloading
// a. If iters is 0, Config.ConflictIters is used. Column 0 of the
// returned histogram holds the address under test (the same value on
// every row); column stats.LatencyColumn holds the measured latency.
func (o *Oracle) SingleAccess(a unsafe.Pointer, iters int) *stats.Histogram {
	if iters == 0 {
		iters = o.cfg.ConflictIters
	}

	h := stats.NewHistogram(iters, 2)

	for i := 0; i < iters; i++ {
		latency := o.timedRegion([]unsafe.Pointer{a}, func() {
			readByte(a)
		})

		h.Set(i, 0, uint64(uintptr(a)))
		h.Set(i, stats.LatencyColumn, latency)
	}

	return h
}

// SingleAccessSummary is SingleAccess followed by Statistics over the
// latency column.
func (o *Oracle) SingleAccessSummary(a unsafe.Pointer, iters int) (avg, median float64, min, max uint64) {
	h := o.SingleAccess(a, iters)
	return h.Statistics(stats.LatencyColumn)
}
