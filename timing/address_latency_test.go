package timing

import (
	"testing"
	"unsafe"
)

func TestAddressLatencyClockUsesFlushedAddresses(t *testing.T) {
	var a, b byte
	pa, pb := unsafe.Pointer(&a), unsafe.Pointer(&b)

	clock := NewAddressLatencyClock(func(flushed []unsafe.Pointer) uint64 {
		if len(flushed) == 2 && flushed[0] == pa && flushed[1] == pb {
			return 500
		}
		return 10
	})

	clock.Flush(pa)
	clock.Flush(pb)
	clock.MFence()
	t0 := clock.Now()
	clock.LFence()
	t1 := clock.Now()

	if t1-t0 != 500 {
		t.Fatalf("latency = %d, want 500", t1-t0)
	}
}

func TestAddressLatencyClockResetsPendingBetweenMeasurements(t *testing.T) {
	var a byte
	pa := unsafe.Pointer(&a)

	clock := NewAddressLatencyClock(func(flushed []unsafe.Pointer) uint64 {
		return uint64(len(flushed))
	})

	clock.Flush(pa)
	t0 := clock.Now()
	t1 := clock.Now()
	if t1-t0 != 1 {
		t.Fatalf("first measurement latency = %d, want 1", t1-t0)
	}

	t0 = clock.Now()
	t1 = clock.Now()
	if t1-t0 != 0 {
		t.Fatalf("second measurement latency = %d, want 0 (no flush queued)", t1-t0)
	}
}
