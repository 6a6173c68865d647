package oracle

import (
	"unsafe"

	"github.com/scale-snu/sudoku/stats"
)

// ReadReadLatency flushes the first length lines of first and of
// second (2*length lines in all), then
// inside a single timed region interleaves reads first[0], second[0],
// first[1], second[1], ... up to length pairs, letting the memory
// controller schedule the stream freely. It records the total latency
// of the whole interleaved burst over iters trials. Higher latency
// indicates the two streams collide on bank-address bits within the
// same bank group; this is the consecutive-read-read signal the
// decomposer uses to separate bank-address functions from bank-group
// functions.
//
// first and second must each have at least length elements.
func (o *Oracle) ReadReadLatency(first, second []unsafe.Pointer, length int, iters int) *stats.Histogram {
	if iters == 0 {
		iters = o.cfg.ConsecutiveIters
	}

	flushes := make([]unsafe.Pointer, 0, 2*length)
	flushes = append(flushes, first[:length]...)
	flushes = append(flushes, second[:length]...)

	h := stats.NewHistogram(iters, 2)

	for i := 0; i < iters; i++ {
		latency := o.timedRegion(flushes, func() {
			for j := 0; j < length; j++ {
				readByte(first[j])
				readByte(second[j])
			}
		})

		h.Set(i, 0, uint64(uintptr(first[0])))
		h.Set(i, stats.LatencyColumn, latency)
	}

	return h
}

// ReadReadLatencySummary is ReadReadLatency followed by Statistics
// over the latency column.
func (o *Oracle) ReadReadLatencySummary(first, second []unsafe.Pointer, length int, iters int) (avg, median float64, min, max uint64) {
	h := o.ReadReadLatency(first, second, length, iters)
	return h.Statistics(stats.LatencyColumn)
}
