package validate

// DisjointSets partitions addressingFns into connected components
// under the "share at least one bit" relation: two functions join the
// same component iff their masks overlap, directly or transitively
// through another function already in the component.
func DisjointSets(addressingFns []uint64) [][]uint64 {
	type component struct {
		mask    uint64
		members []uint64
	}

	var components []component

	for _, f := range addressingFns {
		merged := component{mask: f, members: []uint64{f}}
		remaining := components[:0]

		for _, c := range components {
			if c.mask&merged.mask != 0 {
				merged.mask |= c.mask
				merged.members = append(merged.members, c.members...)
			} else {
				remaining = append(remaining, c)
			}
		}

		components = append(remaining, merged)
	}

	out := make([][]uint64, len(components))
	for i, c := range components {
		out[i] = c.members
	}
	return out
}

// mask ORs together every function in a disjoint set, yielding the
// set's combined bit-mask S used in the rank-nullity check.
func mask(set []uint64) uint64 {
	var m uint64
	for _, f := range set {
		m |= f
	}
	return m
}
