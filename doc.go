// Package sudoku reverse-engineers the address-mapping function of a
// DRAM memory controller by issuing carefully timed memory accesses
// from user space and observing microarchitectural side channels.
//
// Functionality is separated into subpackages, and documented accordingly.
//
// For scripting convenience, "OrExit" functions and methods are provided.
// Any errors encountered by these functions are treated as fatal. In such
// cases, an exit handler function is invoked.
package sudoku
