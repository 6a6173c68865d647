package sbdr

import "fmt"

// Config carries the platform-specific thresholds the DRAMA
// discovery and filtering pipeline is tuned against.
type Config struct {
	// SBDRLowerBound and SBDRUpperBound bound the paired-access
	// latency, in cycles, that indicates a row-buffer conflict
	// (same bank, different row).
	SBDRLowerBound uint64
	SBDRUpperBound uint64

	// MinimumSetSize is DRAMA_MINIMUM_SET_SIZE: clusters smaller
	// than this are discarded before filtering.
	MinimumSetSize int

	// FilterScore is SUDOKU_FILTER_SCORE: an element is dropped from
	// its cluster if more than this many peers are "too fast" to be
	// in-bank.
	FilterScore int

	// TargetClusters is the number of well-populated clusters
	// Discover tries to reach (typically num_banks / 2).
	TargetClusters int

	// MaxAttempts is SUDOKU_MAX_NUM_TRIALS: the outer bound on
	// Discover's sampling loop.
	MaxAttempts int

	// ConflictIters is the number of trials each of Discover's
	// paired-access latency measurements averages over.
	ConflictIters int
}

func (o Config) validate() error {
	if o.SBDRUpperBound < o.SBDRLowerBound {
		return fmt.Errorf("SBDRUpperBound (%d) must be >= SBDRLowerBound (%d)", o.SBDRUpperBound, o.SBDRLowerBound)
	}
	if o.TargetClusters <= 0 {
		return fmt.Errorf("TargetClusters must be greater than 0")
	}
	if o.MaxAttempts <= 0 {
		return fmt.Errorf("MaxAttempts must be greater than 0")
	}
	return nil
}

func (o Config) withDefaults() Config {
	if o.MinimumSetSize == 0 {
		o.MinimumSetSize = 1
	}
	if o.ConflictIters == 0 {
		o.ConflictIters = 1000
	}
	return o
}
