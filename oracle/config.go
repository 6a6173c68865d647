package oracle

import (
	"fmt"
	"log"
)

const (
	// DefaultConflictIters is how many trials SingleAccess and
	// PairedAccess run by default.
	DefaultConflictIters = 10000

	// DefaultRefreshIters is how many samples the refresh oracles
	// collect by default when scanning for periodic latency spikes.
	DefaultRefreshIters = 100000

	// DefaultConsecutiveIters is how many trials ReadReadLatency
	// averages over by default.
	DefaultConsecutiveIters = 1000
)

// Config configures an Oracle's default trial counts. Individual
// methods also accept an explicit iteration count, which always wins
// over these defaults.
type Config struct {
	ConflictIters    int
	RefreshIters     int
	ConsecutiveIters int

	// Logger, if non-nil, receives diagnostic messages.
	Logger *log.Logger
}

func (o Config) validate() error {
	if o.ConflictIters < 0 || o.RefreshIters < 0 || o.ConsecutiveIters < 0 {
		return fmt.Errorf("iteration counts must not be negative")
	}
	return nil
}

func (o Config) withDefaults() Config {
	if o.ConflictIters == 0 {
		o.ConflictIters = DefaultConflictIters
	}
	if o.RefreshIters == 0 {
		o.RefreshIters = DefaultRefreshIters
	}
	if o.ConsecutiveIters == 0 {
		o.ConsecutiveIters = DefaultConsecutiveIters
	}
	return o
}
