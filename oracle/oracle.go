package oracle

import (
	"fmt"
	"unsafe"

	"github.com/scale-snu/sudoku/timing"
)

// NewOracleOrExit calls NewOracle, passing any error to DefaultExitFn.
func NewOracleOrExit(clock timing.Clock, cfg Config) *Oracle {
	o, err := NewOracle(clock, cfg)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to build oracle - %w", err))
	}
	return o
}

// NewOracle returns an Oracle that measures access latency through
// clock, which is almost always the one timing.NewHardwareClock
// returns - tests and
// synthetic pipelines (see the SBDR derivation scenario) substitute a
// timing.FakeClock instead.
func NewOracle(clock timing.Clock, cfg Config) (*Oracle, error) {
	cfg = cfg.withDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Oracle{clock: clock, cfg: cfg}, nil
}

// Oracle times memory accesses through a Clock and packages the
// results as histograms. Every method enforces the fixed ordering
// flush(all) -> mfence -> t0 -> access(es) -> lfence -> t1, via
// timedRegion except in RefreshPairedAccessFine, which writes the
// sequence out inline to take a timestamp between its two loads.
type Oracle struct {
	clock timing.Clock
	cfg   Config
}

// timedRegion flushes every address in flushes, fences, takes a
// timestamp, runs body, fences again, takes a second timestamp, and
// returns the elapsed cycle count. No logging or allocation may
// happen inside body - doing so would pollute the measurement.
func (o *Oracle) timedRegion(flushes []unsafe.Pointer, body func()) uint64 {
	for _, addr := range flushes {
		o.clock.Flush(addr)
	}
	o.clock.MFence()

	t0 := o.clock.Now()
	body()
	o.clock.LFence()
	t1 := o.clock.Now()

	return t1 - t0
}

func readByte(p unsafe.Pointer) byte {
	return *(*byte)(p)
}
