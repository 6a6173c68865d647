package sbdr

import "github.com/scale-snu/sudoku/pool"

// Cluster is a set of AddressTuples believed to share a bank. Members
// are appended in discovery order; the first element is always the
// canonical representative used for cluster-latency comparisons.
type Cluster struct {
	Members []pool.AddressTuple
}

// Canonical returns the cluster's representative element.
func (o Cluster) Canonical() pool.AddressTuple {
	return o.Members[0]
}

// Size returns the number of members in the cluster.
func (o Cluster) Size() int {
	return len(o.Members)
}
