// Package gf2 provides the GF(2) bit utilities that every address
// function in this module is built from: parity, subset enumeration,
// next-bit-permutation, and Gaussian elimination over the two-element
// field. A FunctionMask is a uint64 whose set bits are the physical
// address bits an XOR function reads; its value on an address is the
// parity of mask&address.
package gf2
