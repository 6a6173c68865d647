// Package classify assigns every used and unused physical-address bit
// to row or column, by flipping candidate bit-masks into a base
// address and voting on the resulting paired-access latency.
package classify
