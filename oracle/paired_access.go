package oracle

import (
	"unsafe"

	"github.com/scale-snu/sudoku/stats"
)

// PairedAccess times iters repeated trials of flushing both a and b,
// then loading a followed by b, recording the total latency. A
// row-buffer conflict between a and b manifests as an elevated
// latency; interpreting that latency against the SBDR band is the
// caller's job (see package sbdr), not this oracle's.
func (o *Oracle) PairedAccess(a, b unsafe.Pointer, iters int) *stats.Histogram {
	if iters == 0 {
		iters = o.cfg.ConflictIters
	}

	h := stats.NewHistogram(iters, 2)

	for i := 0; i < iters; i++ {
		latency := o.timedRegion([]unsafe.Pointer{a, b}, func() {
			readByte(a)
			readByte(b)
		})

		h.Set(i, 0, uint64(uintptr(a)))
		h.Set(i, stats.LatencyColumn, latency)
	}

	return h
}

// PairedAccessSummary is PairedAccess followed by Statistics over the
// latency column.
func (o *Oracle) PairedAccessSummary(a, b unsafe.Pointer, iters int) (avg, median float64, min, max uint64) {
	h := o.PairedAccess(a, b, iters)
	return h.Statistics(stats.LatencyColumn)
}
