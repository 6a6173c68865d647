package pool

import (
	"fmt"
	"unsafe"
)

// AddressTuple pairs a virtual pointer into pool memory with its
// physical address. It is immutable once created. Pool methods
// produce it; solve and sbdr also assemble tuples, but only from a
// VAddr the pool resolved or an existing tuple's VAddr, so the pool
// remains the sole owner of the mappings every tuple references.
type AddressTuple struct {
	VAddr unsafe.Pointer
	PAddr uint64
}

// HexString formats PAddr as a hex physical address, e.g. "0x12345".
func (o AddressTuple) HexString() string {
	return fmt.Sprintf("0x%x", o.PAddr)
}
