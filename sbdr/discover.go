package sbdr

import (
	"fmt"

	"github.com/scale-snu/sudoku/oracle"
	"github.com/scale-snu/sudoku/pool"
)

// DiscoverOrExit calls Discover, passing any error other than
// ErrClusteringStalled to DefaultExitFn. A stalled clustering attempt
// is returned to the caller unchanged, since spec policy is "emit
// retry advice; no crash" even for the OrExit variant.
func DiscoverOrExit(p *pool.Pool, o *oracle.Oracle, cfg Config) ([]Cluster, error) {
	clusters, err := Discover(p, o, cfg)
	if err != nil && err != ErrClusteringStalled {
		DefaultExitFn(fmt.Errorf("failed to discover SBDR clusters - %w", err))
	}
	return clusters, err
}

// Discover samples addresses from p and groups them into clusters of
// addresses that conflict with each other (same bank, different row),
// per spec.md 4.7. It stops once cfg.TargetClusters clusters have at
// least cfg.MinimumSetSize members, or after cfg.MaxAttempts samples,
// whichever comes first.
func Discover(p *pool.Pool, o *oracle.Oracle, cfg Config) ([]Cluster, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var clusters []Cluster
	seen := make(map[uint64]bool)

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if countPopulated(clusters, cfg.MinimumSetSize) >= cfg.TargetClusters {
			return clusters, nil
		}

		c, err := p.SampleAddress()
		if err != nil {
			return clusters, fmt.Errorf("failed to sample candidate address - %w", err)
		}
		if seen[c.PAddr] {
			continue
		}
		seen[c.PAddr] = true

		matched := false
		for i := range clusters {
			if inSBDRBand(o, clusters[i].Canonical(), c, cfg) {
				clusters[i].Members = append(clusters[i].Members, c)
				matched = true
				break
			}
		}

		if !matched {
			clusters = append(clusters, Cluster{Members: []pool.AddressTuple{c}})
		}
	}

	if countPopulated(clusters, cfg.MinimumSetSize) < cfg.TargetClusters {
		return clusters, ErrClusteringStalled
	}
	return clusters, nil
}

func countPopulated(clusters []Cluster, minSize int) int {
	n := 0
	for _, c := range clusters {
		if c.Size() >= minSize {
			n++
		}
	}
	return n
}

func inSBDRBand(o *oracle.Oracle, a, b pool.AddressTuple, cfg Config) bool {
	avg, _, _, _ := o.PairedAccessSummary(a.VAddr, b.VAddr, cfg.ConflictIters)
	latency := uint64(avg)
	return latency >= cfg.SBDRLowerBound && latency <= cfg.SBDRUpperBound
}
