package classify

import "testing"

func TestUncoveredMaskExcludesAddressingAndCacheline(t *testing.T) {
	addressing := []uint64{0x40, 0x2000}
	got := UncoveredMask(addressing, 16, 6)

	want := uint64(1)<<16 - 1
	want &^= 0x40
	want &^= 0x2000
	want &^= uint64(1)<<6 - 1

	if got != want {
		t.Fatalf("UncoveredMask = 0x%x, want 0x%x", got, want)
	}
}

func TestUncoveredMaskZeroWhenFullyCovered(t *testing.T) {
	maxBits := 8
	full := uint64(1)<<maxBits - 1
	got := UncoveredMask([]uint64{full}, maxBits, 0)
	if got != 0 {
		t.Fatalf("UncoveredMask = 0x%x, want 0", got)
	}
}

func TestUsedBitCandidatesSeparatesDisjointComponents(t *testing.T) {
	// 0xC0 and 0x300 share no bits, so they must land in separate
	// components.
	addressing := []uint64{0xC0, 0x300}
	got := UsedBitCandidates(addressing)
	if len(got) != 2 {
		t.Fatalf("len(components) = %d, want 2", len(got))
	}
}

func TestUsedBitCandidatesMergesSharedBits(t *testing.T) {
	addressing := []uint64{0xC0, 0x180}
	got := UsedBitCandidates(addressing)
	if len(got) != 1 {
		t.Fatalf("len(components) = %d, want 1 (0xC0 and 0x180 share bit 7)", len(got))
	}
}

func TestUsedBitCandidatesFindsZeroParitySubset(t *testing.T) {
	// 0x30 alone as the addressing function: subset 0x30 itself has
	// parity(0x30 & 0x30) = parity(2 bits) = 0, so it must appear as
	// a candidate (popcount 2 < 4).
	got := UsedBitCandidates([]uint64{0x30})
	if len(got) != 1 {
		t.Fatalf("len(components) = %d, want 1", len(got))
	}

	found := false
	for _, c := range got[0] {
		if c == 0x30 {
			found = true
		}
	}
	if !found {
		t.Fatalf("candidates %v do not include 0x30", got[0])
	}
}
