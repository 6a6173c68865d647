// Package solve implements the constrained address generator: given a
// base physical address and a set of GF(2) functions that must match
// or differ from their value on that base, it produces a second
// physical address satisfying the constraints and maps it back to a
// pool-resident virtual address.
package solve
