package sbdr

import (
	"github.com/scale-snu/sudoku/oracle"
	"github.com/scale-snu/sudoku/pool"
)

// DiscardUndersized drops every cluster with fewer than minSize
// members. It uses index-based compaction rather than an
// iterator-decrement pattern, so every undersized cluster is removed
// regardless of position (see the Open Question in spec.md 9 about
// the original's erase-during-iteration bug).
func DiscardUndersized(clusters []Cluster, minSize int) []Cluster {
	out := clusters[:0]
	for _, c := range clusters {
		if c.Size() >= minSize {
			out = append(out, c)
		}
	}
	return out
}

// FilterOutliers drops elements from each cluster that look like they
// were mis-clustered: for each element, it counts how many peers in
// the same cluster measure a paired-access latency below lowerBound
// (fast enough that they probably are not in-bank after all), and
// drops the element if that count exceeds filterScore.
func FilterOutliers(clusters []Cluster, o *oracle.Oracle, lowerBound uint64, filterScore int) []Cluster {
	out := make([]Cluster, 0, len(clusters))

	for _, c := range clusters {
		kept := make([]pool.AddressTuple, 0, len(c.Members))
		for i, member := range c.Members {
			fastPeers := 0
			for j, peer := range c.Members {
				if i == j {
					continue
				}
				avg, _, _, _ := o.PairedAccessSummary(member.VAddr, peer.VAddr, 0)
				if uint64(avg) < lowerBound {
					fastPeers++
				}
			}

			if fastPeers <= filterScore {
				kept = append(kept, member)
			}
		}

		out = append(out, Cluster{Members: kept})
	}

	return out
}
