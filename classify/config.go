package classify

import "fmt"

// VotingConfig parameterizes Classify's flip-and-measure voting loop.
type VotingConfig struct {
	// SBDRLowerBound and SBDRUpperBound bound the paired-access
	// latency a same-bank (row-buffer-conflicting) pair is expected
	// to land in.
	SBDRLowerBound uint64
	SBDRUpperBound uint64

	// MaxNumTrials bounds the number of flipped candidate addresses
	// Classify will attempt to resolve and measure.
	MaxNumTrials int

	// NumEffectiveTrial is the number of trials with a pool-resident
	// flipped address at which Classify stops early.
	NumEffectiveTrial int

	// TrialSuccessScore is the fraction of effective trials a verdict
	// must achieve to be reported as row or column, rather than an
	// outlier.
	TrialSuccessScore float64

	// PCIOffset is not read by Classify; MaxBits is only checked to
	// be positive.
	PCIOffset uint64
	MaxBits   int

	// ConflictIters is forwarded to Oracle.PairedAccess; zero uses
	// the oracle's own default.
	ConflictIters int
}

func (c VotingConfig) validate() error {
	if c.SBDRLowerBound == 0 && c.SBDRUpperBound == 0 {
		// both unset is fine, withDefaults fills them in
	} else if c.SBDRLowerBound >= c.SBDRUpperBound {
		return fmt.Errorf("SBDRLowerBound (%d) must be less than SBDRUpperBound (%d)", c.SBDRLowerBound, c.SBDRUpperBound)
	}
	if c.TrialSuccessScore < 0 || c.TrialSuccessScore > 1 {
		return fmt.Errorf("TrialSuccessScore (%v) must be in [0,1]", c.TrialSuccessScore)
	}
	if c.MaxBits <= 0 {
		return fmt.Errorf("MaxBits must be positive")
	}
	return nil
}

func (c VotingConfig) withDefaults() VotingConfig {
	if c.SBDRLowerBound == 0 {
		c.SBDRLowerBound = DefaultSBDRLowerBound
	}
	if c.SBDRUpperBound == 0 {
		c.SBDRUpperBound = DefaultSBDRUpperBound
	}
	if c.MaxNumTrials == 0 {
		c.MaxNumTrials = DefaultMaxNumTrials
	}
	if c.NumEffectiveTrial == 0 {
		c.NumEffectiveTrial = DefaultNumEffectiveTrial
	}
	if c.TrialSuccessScore == 0 {
		c.TrialSuccessScore = DefaultTrialSuccessScore
	}
	return c
}
