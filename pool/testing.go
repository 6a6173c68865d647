package pool

import (
	"math/rand"
	"unsafe"
)

// Mapping is a pre-resolved virtual/physical page mapping, used to
// build a Pool without privileged mmap/pagemap access.
type Mapping struct {
	VAddr     unsafe.Pointer
	PAddrBase uint64
	SizeBytes int
}

// NewFromMappings builds a Pool directly from already-resolved
// mappings, bypassing mmap and pagemap entirely. It exists so that
// packages downstream of pool can exercise sampling, translation, and
// solver/classifier logic in tests without the hugepage privileges
// the real Open requires.
func NewFromMappings(cfg Config, mappings []Mapping) *Pool {
	cfg = cfg.withDefaults()

	p := &Pool{
		cfg: cfg,
		rng: rand.New(rand.NewSource(1)),
	}

	for _, m := range mappings {
		p.pages = append(p.pages, page{
			virtBase:  m.VAddr,
			physBase:  m.PAddrBase,
			sizeBytes: m.SizeBytes,
		})
	}

	return p
}
