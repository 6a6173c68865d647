package sbdr

import "github.com/scale-snu/sudoku/pool"

// SlidePCIOffset subtracts pciOffset from every member's physical
// address in every cluster, so that subsequent bit arithmetic (mask
// derivation, classification) operates in PCI-normalized space. It is
// a no-op when pciOffset is 0 (the common case on Intel platforms).
func SlidePCIOffset(clusters []Cluster, pciOffset uint64) []Cluster {
	if pciOffset == 0 {
		return clusters
	}

	out := make([]Cluster, len(clusters))
	for i, c := range clusters {
		members := make([]pool.AddressTuple, len(c.Members))
		for j, m := range c.Members {
			members[j] = pool.AddressTuple{VAddr: m.VAddr, PAddr: m.PAddr - pciOffset}
		}
		out[i] = Cluster{Members: members}
	}
	return out
}
