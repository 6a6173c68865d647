package sbdr

import "github.com/scale-snu/sudoku/gf2"

// DeriveFunctions brute-forces every mask with popcount in
// [minBits, maxBits] whose value is below 1<<maxAddrBits, skipping any
// mask that touches a bit below cachelineOffset, and keeps the ones
// that are constant within every cluster (parity(mask & paddr) is the
// same for every member of a given cluster). The accepted masks are
// then reduced over GF(2) into a minimal independent generating set.
//
// Clusters are assumed to already be in PCI-normalized space (see
// SlidePCIOffset).
func DeriveFunctions(clusters []Cluster, minBits, maxBits, cachelineOffset, maxAddrBits int) ([]uint64, error) {
	if len(clusters) == 0 {
		return nil, ErrNoFunctionsFound
	}

	subCachelineMask := (uint64(1) << uint(cachelineOffset)) - 1
	addrSpaceLimit := uint64(1) << uint(maxAddrBits)

	var accepted []uint64

	for b := minBits; b <= maxBits; b++ {
		if b == 0 {
			continue
		}

		mask := (uint64(1) << uint(b)) - 1
		for mask < addrSpaceLimit {
			if mask&subCachelineMask != 0 {
				mask = gf2.NextBitPermutation(mask)
				continue
			}

			if constantAcrossClusters(mask, clusters) {
				accepted = append(accepted, mask)
			}

			mask = gf2.NextBitPermutation(mask)
		}
	}

	if len(accepted) == 0 {
		return nil, ErrNoFunctionsFound
	}

	return gf2.Reduce(accepted), nil
}

func constantAcrossClusters(mask uint64, clusters []Cluster) bool {
	for _, c := range clusters {
		if len(c.Members) == 0 {
			continue
		}

		want := gf2.XorReduce(mask, c.Members[0].PAddr)
		for _, m := range c.Members[1:] {
			if gf2.XorReduce(mask, m.PAddr) != want {
				return false
			}
		}
	}
	return true
}
