package report

import (
	"fmt"
	"log"
)

var (
	// DefaultExitFn is invoked by functions and methods ending in the
	// "OrExit" suffix when an error occurs.
	DefaultExitFn = func(err error) {
		log.Fatalln(err)
	}
)

// HexU64 formats v the way spec.md §6 requires every logged paddr
// value to appear: hex, PCI offset already subtracted by the caller.
func HexU64(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}
