package pool

import (
	"math/rand"
	"testing"
	"unsafe"
)

// newTestPool builds a Pool around ordinary heap memory instead of real
// hugepages, so the sampling and translation logic can be exercised
// without mmap/pagemap privileges.
func newTestPool(t *testing.T, numPages int, pageSizeBytes int) *Pool {
	t.Helper()

	p := &Pool{
		cfg: Config{
			PageSizeBytes:    pageSizeBytes,
			NumPages:         numPages,
			GranularityBytes: DefaultGranularityBytes,
		},
		rng: rand.New(rand.NewSource(7)),
	}

	for i := 0; i < numPages; i++ {
		raw := make([]byte, pageSizeBytes)
		p.pages = append(p.pages, page{
			virtBase:  unsafe.Pointer(&raw[0]),
			physBase:  uint64(i+1) * uint64(pageSizeBytes) * 16, // fabricated, non-overlapping
			sizeBytes: pageSizeBytes,
			raw:       raw,
		})
	}

	return p
}

func TestSampleAddressIsCacheLineAligned(t *testing.T) {
	p := newTestPool(t, 4, 4096)

	for i := 0; i < 200; i++ {
		tuple, err := p.SampleAddress()
		if err != nil {
			t.Fatalf("SampleAddress: %v", err)
		}

		if tuple.PAddr%DefaultGranularityBytes != 0 {
			t.Fatalf("sampled physical address 0x%x is not %d-byte aligned",
				tuple.PAddr, DefaultGranularityBytes)
		}

		if uintptr(tuple.VAddr)%DefaultGranularityBytes != 0 {
			t.Fatalf("sampled virtual address %p is not %d-byte aligned",
				tuple.VAddr, DefaultGranularityBytes)
		}
	}
}

func TestSampleAddressOnEmptyPoolErrors(t *testing.T) {
	p := &Pool{cfg: Config{GranularityBytes: DefaultGranularityBytes}, rng: rand.New(rand.NewSource(1))}

	_, err := p.SampleAddress()
	if err == nil {
		t.Fatalf("expected an error sampling from a pool with no pages")
	}
}

func TestPhysToVirtRoundTripsWithSampleAddress(t *testing.T) {
	p := newTestPool(t, 4, 4096)

	for i := 0; i < 50; i++ {
		tuple, err := p.SampleAddress()
		if err != nil {
			t.Fatalf("SampleAddress: %v", err)
		}

		v, ok := p.PhysToVirt(tuple.PAddr)
		if !ok {
			t.Fatalf("PhysToVirt(0x%x) reported not found for an address this pool produced", tuple.PAddr)
		}

		if v != tuple.VAddr {
			t.Fatalf("PhysToVirt(0x%x) = %p, want %p", tuple.PAddr, v, tuple.VAddr)
		}
	}
}

func TestPhysToVirtUnknownAddressNotFound(t *testing.T) {
	p := newTestPool(t, 2, 4096)

	_, ok := p.PhysToVirt(0xdeadbeef)
	if ok {
		t.Fatalf("expected PhysToVirt to reject a physical address outside every owned page")
	}
}

func TestConfigValidateRejectsZeroFields(t *testing.T) {
	cases := []Config{
		{PageSizeBytes: 0, NumPages: 1, GranularityBytes: 64},
		{PageSizeBytes: OneGiB, NumPages: 0, GranularityBytes: 64},
		{PageSizeBytes: OneGiB, NumPages: 1, GranularityBytes: 0},
		{PageSizeBytes: 100, NumPages: 1, GranularityBytes: 64},
	}

	for _, c := range cases {
		if err := c.validate(); err == nil {
			t.Fatalf("validate() on %+v: want error, got nil", c)
		}
	}
}

func TestConfigWithDefaultsFillsGranularity(t *testing.T) {
	c := Config{PageSizeBytes: OneGiB, NumPages: 1}.withDefaults()

	if c.GranularityBytes != DefaultGranularityBytes {
		t.Fatalf("GranularityBytes = %d, want %d", c.GranularityBytes, DefaultGranularityBytes)
	}
}

func TestAddressTupleHexString(t *testing.T) {
	tuple := AddressTuple{PAddr: 0x1234}

	got := tuple.HexString()
	want := "0x1234"
	if got != want {
		t.Fatalf("HexString() = %q, want %q", got, want)
	}
}
