package classify

import (
	"github.com/scale-snu/sudoku/oracle"
	"github.com/scale-snu/sudoku/pool"
)

// Vote is the outcome of Classify for a single candidate bit-mask:
// exactly one of Row or Column is 1, or both are 0 if the mask was an
// outlier (neither verdict cleared TrialSuccessScore).
type Vote struct {
	Row    int
	Column int
}

// Classify decides whether flipping mask into a sampled physical
// address moves it to a different row of the same bank (row bit: the
// paired latency lands in the SBDR band) or keeps it in the same row
// (column bit: the latency stays outside the band), by voting across
// repeated trials.
//
// Each trial samples a base address from p (the first trial reuses
// base, to let a caller iterating over several candidate masks share
// one reference point), flips mask into its physical address, and
// looks up the result in p. Trials where the flipped address is not
// pool-resident do not count as effective and are retried, up to
// cfg.MaxNumTrials total attempts; voting stops early once
// cfg.NumEffectiveTrial effective trials have been collected.
//
// Classify returns ok=false if no trial was effective, or if neither
// verdict's score clears cfg.TrialSuccessScore (an outlier mask).
func Classify(mask uint64, base pool.AddressTuple, p *pool.Pool, o *oracle.Oracle, cfg VotingConfig) (Vote, bool) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Vote{}, false
	}

	var rowVotes, columnVotes, effective int

	for trial := 0; trial < cfg.MaxNumTrials && effective < cfg.NumEffectiveTrial; trial++ {
		b := base
		if trial > 0 {
			sampled, err := p.SampleAddress()
			if err != nil {
				continue
			}
			b = sampled
		}

		candidatePAddr := b.PAddr ^ mask
		vAddr, ok := p.PhysToVirt(candidatePAddr)
		if !ok {
			continue
		}

		effective++

		avg, _, _, _ := o.PairedAccessSummary(b.VAddr, vAddr, cfg.ConflictIters)

		if uint64(avg) >= cfg.SBDRLowerBound && uint64(avg) <= cfg.SBDRUpperBound {
			rowVotes++
		} else {
			columnVotes++
		}
	}

	if effective == 0 {
		return Vote{}, false
	}

	rowScore := float64(rowVotes) / float64(effective)
	columnScore := float64(columnVotes) / float64(effective)

	switch {
	case rowScore > cfg.TrialSuccessScore:
		return Vote{Row: 1}, true
	case columnScore > cfg.TrialSuccessScore:
		return Vote{Column: 1}, true
	default:
		return Vote{}, false
	}
}
