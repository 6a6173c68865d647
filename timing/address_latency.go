package timing

import "unsafe"

// NewAddressLatencyClock returns a Clock whose measured latency is
// computed from the addresses flushed since the previous measurement,
// via latency. It lets the rest of this module - sbdr, classify,
// decompose - be driven against a deterministic synthetic latency
// model instead of real hardware timing, which is how spec.md's S6
// SBDR-derivation scenario is exercised: a fake oracle whose latency
// depends only on whether two addresses agree on a given XOR mask.
func NewAddressLatencyClock(latency func(flushed []unsafe.Pointer) uint64) *AddressLatencyClock {
	return &AddressLatencyClock{latency: latency}
}

// AddressLatencyClock implements Clock. It tracks addresses passed to
// Flush since the last completed measurement and feeds them to its
// latency function on the second Now call of a timedRegion pair - t1
// minus t0 always equals latency(flushed).
type AddressLatencyClock struct {
	latency    func([]unsafe.Pointer) uint64
	pending    []unsafe.Pointer
	now        uint64
	awaitingT1 bool
}

func (o *AddressLatencyClock) Flush(addr unsafe.Pointer) {
	o.pending = append(o.pending, addr)
}

func (o *AddressLatencyClock) MFence() {}

func (o *AddressLatencyClock) LFence() {}

func (o *AddressLatencyClock) Now() uint64 {
	if !o.awaitingT1 {
		o.awaitingT1 = true
		return o.now
	}

	o.now += o.latency(o.pending)
	o.pending = nil
	o.awaitingT1 = false
	return o.now
}
