package classify

const (
	// DefaultSBDRLowerBound and DefaultSBDRUpperBound bound the
	// paired-access latency band a conflicting (same-bank) address
	// pair is expected to fall in. Platform-specific; these are
	// reasonable defaults for a modern Intel/AMD desktop part and are
	// always overridable via VotingConfig.
	DefaultSBDRLowerBound = 280
	DefaultSBDRUpperBound = 310

	// DefaultMaxNumTrials bounds how many flipped candidate physical
	// addresses Classify will try to resolve in the pool and measure
	// per mask before giving up.
	DefaultMaxNumTrials = 30

	// DefaultNumEffectiveTrial is the number of trials whose flipped
	// address was pool-resident at which Classify stops early, even
	// if MaxNumTrials has not been reached.
	DefaultNumEffectiveTrial = 10

	// DefaultTrialSuccessScore is the fraction of effective trials
	// that must land in the SBDR band (row) or outside it (column)
	// for Classify to commit to that verdict.
	DefaultTrialSuccessScore = 0.7
)
