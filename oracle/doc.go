// Package oracle implements the side-channel access oracles this
// module's discovery and classification algorithms are built on:
// timed single and paired accesses, refresh-interval detection, and
// consecutive read-read latency.
//
// Every oracle method follows the same measurement shape: flush the
// participating cache lines, issue a full fence, read a timestamp,
// perform the measured access(es), issue a load fence, read a second
// timestamp. That ordering lives in one place, timedRegion, which every
// method uses except RefreshPairedAccessFine: it issues the same
// sequence inline, with an extra timestamp between its two loads.
package oracle
