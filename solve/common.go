package solve

import "log"

// CachelineOffsetBits is the number of low-order physical-address bits
// below the cache-line granularity; the solver never pivots on or
// solves for these.
const CachelineOffsetBits = 6

var (
	// DefaultExitFn is invoked by functions and methods ending in the
	// "OrExit" suffix when an error occurs.
	DefaultExitFn = func(err error) {
		log.Fatalln(err)
	}
)
