// Package validate checks that derived addressing functions plus row
// and column bits account for every physical-address bit exactly
// once, via a rank-nullity check over disjoint bit-sets, and repairs
// small shortfalls by greedily assigning unclaimed bits.
package validate
