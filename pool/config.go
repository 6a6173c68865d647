package pool

import (
	"fmt"
	"log"
)

const (
	// OneGiB is the hugepage size this module is written against.
	// spec.md calls for 1 GiB hugepages specifically, since it makes
	// physical contiguity - and therefore PhysToVirt - trivial to
	// reason about.
	OneGiB = 1 << 30

	// DefaultGranularityBytes is the cache-line size that every
	// sampled address is floored to.
	DefaultGranularityBytes = 64
)

// Config describes the hugepages a Pool should acquire.
type Config struct {
	// PageSizeBytes is the size of each hugepage. Only OneGiB is
	// exercised by the rest of this module, but the pool itself does
	// not assume a specific size beyond requiring it to be a power
	// of two multiple of GranularityBytes.
	PageSizeBytes int

	// NumPages is how many hugepages to map.
	NumPages int

	// GranularityBytes is the alignment every sampled address is
	// floored to (a cache line: 64 bytes).
	GranularityBytes int

	// Logger, if non-nil, receives diagnostic messages about mmap
	// and pagemap activity.
	Logger *log.Logger
}

func (o Config) validate() error {
	if o.PageSizeBytes <= 0 {
		return fmt.Errorf("page size in bytes must be greater than 0")
	}

	if o.NumPages <= 0 {
		return fmt.Errorf("number of pages must be greater than 0")
	}

	if o.GranularityBytes <= 0 {
		return fmt.Errorf("granularity in bytes must be greater than 0")
	}

	if o.PageSizeBytes%o.GranularityBytes != 0 {
		return fmt.Errorf("page size (%d) is not a multiple of granularity (%d)",
			o.PageSizeBytes, o.GranularityBytes)
	}

	return nil
}

func (o Config) withDefaults() Config {
	if o.GranularityBytes == 0 {
		o.GranularityBytes = DefaultGranularityBytes
	}
	return o
}
