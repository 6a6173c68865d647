// Package timing provides the sealed, architecture-specific primitives
// that every side-channel oracle is built from: cache-line flush, memory
// fence, and a monotonic cycle-accurate timestamp.
//
// Real measurements require inline assembly, which only exists for
// amd64 in this package (hardware_amd64.s). Everything above this package
// talks to a Clock interface so that oracle and sbdr logic can be
// exercised with a FakeClock in tests, without touching real hardware.
package timing
