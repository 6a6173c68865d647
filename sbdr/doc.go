// Package sbdr implements Same-Bank-Different-Row discovery (DRAMA):
// clustering sampled addresses into per-bank equivalence classes by
// conflict latency, then brute-forcing the XOR masks that stay
// constant within every cluster.
package sbdr
