package oracle

import (
	"testing"
	"unsafe"

	"github.com/scale-snu/sudoku/stats"
	"github.com/scale-snu/sudoku/timing"
)

func TestSingleAccessRecordsQueuedLatency(t *testing.T) {
	clock := timing.NewFakeClock(0, 1)
	clock.QueueLatency(0)
	clock.QueueLatency(42)

	o, err := NewOracle(clock, Config{ConflictIters: 1})
	if err != nil {
		t.Fatalf("NewOracle: %v", err)
	}

	var b byte
	a := unsafe.Pointer(&b)

	h := o.SingleAccess(a, 0)
	if h.Rows() != 1 {
		t.Fatalf("Rows() = %d, want 1", h.Rows())
	}

	if got := h.Get(0, stats.LatencyColumn); got != 42 {
		t.Fatalf("latency = %d, want 42", got)
	}
}

func TestPairedAccessFlushesBothAddresses(t *testing.T) {
	clock := timing.NewFakeClock(0, 1)

	o, err := NewOracle(clock, Config{})
	if err != nil {
		t.Fatalf("NewOracle: %v", err)
	}

	var x, y byte
	a, b := unsafe.Pointer(&x), unsafe.Pointer(&y)

	o.PairedAccess(a, b, 1)

	if len(clock.Flushes) != 2 {
		t.Fatalf("Flushes = %v, want 2 entries", clock.Flushes)
	}
	if clock.Flushes[0] != a || clock.Flushes[1] != b {
		t.Fatalf("Flushes = %v, want [%p %p]", clock.Flushes, a, b)
	}
}

func TestFilterRefreshTimingFindsSpikes(t *testing.T) {
	h := stats.NewHistogram(5, 2)
	latencies := []uint64{10, 10, 500, 10, 500}
	for i, l := range latencies {
		h.Set(i, stats.LatencyColumn, l)
	}

	got := FilterRefreshTiming(h, 100)
	want := []int{2, 4}

	if len(got) != len(want) {
		t.Fatalf("FilterRefreshTiming = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FilterRefreshTiming = %v, want %v", got, want)
		}
	}
}

func TestComputeRefreshIntervals(t *testing.T) {
	got := ComputeRefreshIntervals([]int{2, 10, 25})
	want := []uint64{8, 15}

	if len(got) != len(want) {
		t.Fatalf("ComputeRefreshIntervals = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ComputeRefreshIntervals = %v, want %v", got, want)
		}
	}
}

func TestComputeRefreshIntervalsNeedsTwoSpikes(t *testing.T) {
	if got := ComputeRefreshIntervals([]int{3}); got != nil {
		t.Fatalf("ComputeRefreshIntervals([3]) = %v, want nil", got)
	}
}

func TestRefreshPairedAccessFineSeparatesLatencies(t *testing.T) {
	clock := timing.NewFakeClock(0, 10)

	o, err := NewOracle(clock, Config{})
	if err != nil {
		t.Fatalf("NewOracle: %v", err)
	}

	var x, y byte
	a, b := unsafe.Pointer(&x), unsafe.Pointer(&y)

	h := o.RefreshPairedAccessFine(a, b, 1)

	if got := h.Get(0, 1); got != 10 {
		t.Fatalf("first-load latency = %d, want 10", got)
	}
	if got := h.Get(0, 2); got != 10 {
		t.Fatalf("second-load latency = %d, want 10", got)
	}
}

func TestReadReadLatencyFlushesBothStreams(t *testing.T) {
	clock := timing.NewFakeClock(0, 1)

	o, err := NewOracle(clock, Config{})
	if err != nil {
		t.Fatalf("NewOracle: %v", err)
	}

	var buf [4]byte
	first := []unsafe.Pointer{unsafe.Pointer(&buf[0]), unsafe.Pointer(&buf[1])}
	second := []unsafe.Pointer{unsafe.Pointer(&buf[2]), unsafe.Pointer(&buf[3])}

	h := o.ReadReadLatency(first, second, 2, 3)

	if h.Rows() != 3 {
		t.Fatalf("Rows() = %d, want 3", h.Rows())
	}
	if len(clock.Flushes) != 4*3 {
		t.Fatalf("Flushes = %d entries, want %d", len(clock.Flushes), 4*3)
	}
}
