package timing

import "unsafe"

// NewFakeClock returns a Clock suitable for tests. now is an initial
// timestamp; each call to Now advances it by step unless an override
// is queued with QueueLatency. Flush/MFence/LFence record their calls
// for assertions but otherwise do nothing.
func NewFakeClock(now, step uint64) *FakeClock {
	return &FakeClock{
		now:  now,
		step: step,
	}
}

// FakeClock is a software Clock used by tests and by callers that want
// to exercise the oracle/sbdr/classify pipeline against a synthetic
// latency model (see the S6 scenario: a fake oracle whose latency
// depends only on whether two addresses agree on a given XOR mask).
type FakeClock struct {
	now     uint64
	step    uint64
	queue   []uint64
	Flushes []unsafe.Pointer
}

func (o *FakeClock) Flush(addr unsafe.Pointer) {
	o.Flushes = append(o.Flushes, addr)
}

func (o *FakeClock) MFence() {}

func (o *FakeClock) LFence() {}

// QueueLatency causes the next call to Now to advance by delta instead
// of the default step. Queued deltas are consumed one per Now call, in
// order, so a test scripting the latency a timedRegion call observes
// queues one delta for its first Now call and one for its second.
func (o *FakeClock) QueueLatency(delta uint64) {
	o.queue = append(o.queue, delta)
}

func (o *FakeClock) Now() uint64 {
	if len(o.queue) > 0 {
		delta := o.queue[0]
		o.queue = o.queue[1:]
		o.now += delta
		return o.now
	}

	o.now += o.step
	return o.now
}
