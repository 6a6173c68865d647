package pool

import (
	"encoding/hex"
	"fmt"
	"math/rand"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/scale-snu/sudoku/os/linuxkit"
)

// mapHuge1GB requests a 1 GiB hugepage from mmap(2). The kernel encodes
// the desired page order in bits 26-31 of the mmap flags
// (MAP_HUGE_SHIFT == 26); log2(1 GiB) == 30.
const mapHuge1GB = 30 << 26

// OpenOrExit calls Open and passes any error to DefaultExitFn.
func OpenOrExit(cfg Config) *Pool {
	p, err := Open(cfg)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to open memory pool - %w", err))
	}
	return p
}

// Open acquires cfg.NumPages hugepages and returns a Pool that owns
// them. Any failure to mmap a page, or to resolve its physical
// address, is an EnvironmentError - this is a diagnostic tool, and a
// hostile environment (no hugepages reserved, not running privileged)
// is not something the rest of the pipeline can work around.
func Open(cfg Config) (*Pool, error) {
	cfg = cfg.withDefaults()

	err := cfg.validate()
	if err != nil {
		return nil, err
	}

	pagemap, err := openPagemap()
	if err != nil {
		return nil, newEnvironmentError("open pagemap", err)
	}

	p := &Pool{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(1)),
		pagemap: pagemap,
	}

	for i := 0; i < cfg.NumPages; i++ {
		pg, err := p.mapOnePage()
		if err != nil {
			p.closePages()
			pagemap.Close()
			return nil, newEnvironmentError(fmt.Sprintf("map page %d", i), err)
		}

		if cfg.Logger != nil {
			cfg.Logger.Printf("pool: mapped page %d at virt=%p phys=0x%x",
				i, pg.virtBase, pg.physBase)
		}

		p.pages = append(p.pages, pg)
	}

	return p, nil
}

// Pool owns a set of hugepage mappings and is the exclusive source of
// AddressTuples and virt<->phys translation for them.
type Pool struct {
	cfg     Config
	pages   []page
	rng     *rand.Rand
	pagemap *os.File
}

type page struct {
	virtBase  unsafe.Pointer
	physBase  uint64
	sizeBytes int
	raw       []byte
}

func (o *Pool) mapOnePage() (page, error) {
	raw, err := unix.Mmap(
		-1, 0,
		o.cfg.PageSizeBytes,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_POPULATE|unix.MAP_HUGETLB|mapHuge1GB)
	if err != nil {
		return page{}, fmt.Errorf("mmap failed - %w", err)
	}

	virtBase := unsafe.Pointer(&raw[0])

	physBase, err := o.virtToPhys(virtBase)
	if err != nil {
		unix.Munmap(raw)
		return page{}, fmt.Errorf("failed to resolve physical base of new mapping - %w", err)
	}

	return page{
		virtBase:  virtBase,
		physBase:  physBase,
		sizeBytes: o.cfg.PageSizeBytes,
		raw:       raw,
	}, nil
}

func (o *Pool) closePages() {
	for _, pg := range o.pages {
		unix.Munmap(pg.raw)
	}
	o.pages = nil
}

// CloseOrExit calls Close and passes any error to DefaultExitFn.
func (o *Pool) CloseOrExit() {
	err := o.Close()
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to close memory pool - %w", err))
	}
}

// Close unmaps every page owned by the pool. The pool must not be used
// afterward.
func (o *Pool) Close() error {
	o.closePages()

	if o.pagemap != nil {
		err := o.pagemap.Close()
		o.pagemap = nil
		if err != nil {
			return fmt.Errorf("failed to close pagemap - %w", err)
		}
	}

	return nil
}

// NumPages returns the number of hugepages this pool owns.
func (o *Pool) NumPages() int {
	return len(o.pages)
}

// SampleAddressOrExit calls SampleAddress and passes any error to
// DefaultExitFn.
func (o *Pool) SampleAddressOrExit() AddressTuple {
	t, err := o.SampleAddress()
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to sample address - %w", err))
	}
	return t
}

// SampleAddress draws a uniformly random page and a uniformly random
// intra-page offset, floors the offset to a cache-line multiple, and
// returns the resulting AddressTuple.
func (o *Pool) SampleAddress() (AddressTuple, error) {
	if len(o.pages) == 0 {
		return AddressTuple{}, fmt.Errorf("pool has no pages")
	}

	pg := o.pages[o.rng.Intn(len(o.pages))]

	numLines := pg.sizeBytes / o.cfg.GranularityBytes
	lineOffset := o.rng.Intn(numLines) * o.cfg.GranularityBytes

	return AddressTuple{
		VAddr: unsafe.Pointer(uintptr(pg.virtBase) + uintptr(lineOffset)),
		PAddr: pg.physBase + uint64(lineOffset),
	}, nil
}

// VirtToPhysOrExit calls VirtToPhys and passes any error to
// DefaultExitFn.
func (o *Pool) VirtToPhysOrExit(v unsafe.Pointer) uint64 {
	p, err := o.VirtToPhys(v)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to translate virtual address %p - %w", v, err))
	}
	return p
}

// VirtToPhys resolves a virtual address owned by this pool to its
// physical address via /proc/self/pagemap.
func (o *Pool) VirtToPhys(v unsafe.Pointer) (uint64, error) {
	return o.virtToPhys(v)
}

func (o *Pool) virtToPhys(v unsafe.Pointer) (uint64, error) {
	pageSize := os.Getpagesize()
	vAddr := uintptr(v)

	vpn := int64(vAddr) / int64(pageSize)
	offsetInPage := uint64(vAddr) % uint64(pageSize)

	var raw [linuxkit.PagemapEntrySizeBytes]byte
	n, err := o.pagemap.ReadAt(raw[:], vpn*linuxkit.PagemapEntrySizeBytes)
	if err != nil || n != len(raw) {
		return 0, fmt.Errorf("failed to read pagemap entry for vpn %d - %w", vpn, err)
	}

	if o.cfg.Logger != nil {
		o.cfg.Logger.Printf("pool: pagemap entry for vpn %d:\n%s", vpn, hex.Dump(raw[:]))
	}

	entry := linuxkit.ParsePagemapEntry(raw)
	if !entry.Present() {
		return 0, fmt.Errorf("page at %p is not present according to pagemap", v)
	}

	return entry.PFN()*uint64(pageSize) + offsetInPage, nil
}

// PhysToVirt scans the pool's owned pages for one whose physically
// contiguous range contains p, returning the corresponding virtual
// address. It returns ok=false if p does not fall within any page
// this pool owns.
func (o *Pool) PhysToVirt(p uint64) (v unsafe.Pointer, ok bool) {
	for _, pg := range o.pages {
		start := pg.physBase
		end := pg.physBase + uint64(pg.sizeBytes)

		if p >= start && p < end {
			offset := p - start
			return unsafe.Pointer(uintptr(pg.virtBase) + uintptr(offset)), true
		}
	}

	return nil, false
}

// KnownPhysAddr returns the physical address the pool already knows
// for virtual address v, scanning owned pages by contiguous virtual
// range. Unlike VirtToPhys it never touches /proc/self/pagemap - it
// only works for addresses this pool itself produced, but it works
// without pagemap/CAP_SYS_ADMIN, which is what lets synthetic oracle
// pipelines (no real hardware, see sbdr's S6 scenario) translate a
// flushed pointer back to the physical address they reasoned about
// when sampling it.
func (o *Pool) KnownPhysAddr(v unsafe.Pointer) (p uint64, ok bool) {
	target := uintptr(v)

	for _, pg := range o.pages {
		start := uintptr(pg.virtBase)
		end := start + uintptr(pg.sizeBytes)

		if target >= start && target < end {
			return pg.physBase + uint64(target-start), true
		}
	}

	return 0, false
}

func openPagemap() (*os.File, error) {
	f, err := os.Open("/proc/self/pagemap")
	if err != nil {
		return nil, fmt.Errorf("failed to open /proc/self/pagemap - %w", err)
	}
	return f, nil
}
