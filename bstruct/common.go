package bstruct

import "log"

// DefaultExitFn is called by the OrExit variants of this package's
// functions. Tests may override it to avoid exiting the process.
var DefaultExitFn = func(err error) {
	log.Fatalln("fatal:", err)
}
