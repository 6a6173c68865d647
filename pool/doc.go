// Package pool manages a set of 1 GiB hugepages, samples uniformly
// random cache-line-aligned addresses from them, and resolves the
// virtual<->physical translation needed to reason about physical
// address bits. The pool is the sole owner of its mappings; every
// AddressTuple handed out is a non-owning reference into pool memory.
package pool
