package stats

import "testing"

func TestHistogramStatisticsOrdering(t *testing.T) {
	h := NewHistogram(5, 2)
	latencies := []uint64{300, 100, 250, 400, 150}
	for row, v := range latencies {
		h.Set(row, LatencyColumn, v)
	}

	avg, median, min, max := h.Statistics(LatencyColumn)

	if !(float64(min) <= median && median <= float64(max)) {
		t.Fatalf("expected min <= median <= max, got min=%d median=%v max=%d", min, median, max)
	}
	if !(float64(min) <= avg && avg <= float64(max)) {
		t.Fatalf("expected min <= avg <= max, got min=%d avg=%v max=%d", min, avg, max)
	}
	if min != 100 || max != 400 {
		t.Fatalf("expected min=100 max=400, got min=%d max=%d", min, max)
	}
	if median != 250 {
		t.Fatalf("expected median=250, got %v", median)
	}
}

func TestHistogramEvenRowsAveragesMiddle(t *testing.T) {
	h := NewHistogram(4, 1)
	for row, v := range []uint64{10, 20, 30, 40} {
		h.Set(row, 0, v)
	}

	median := h.Median(0)
	if median != 25 {
		t.Fatalf("expected median 25, got %v", median)
	}
}

func TestHistogramEmptyReturnsZeroes(t *testing.T) {
	h := NewHistogram(0, 3)

	avg, median, min, max := h.Statistics(LatencyColumn)
	if avg != 0 || median != 0 || min != 0 || max != 0 {
		t.Fatalf("expected all zeroes for empty histogram, got avg=%v median=%v min=%d max=%d",
			avg, median, min, max)
	}
}
