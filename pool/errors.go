package pool

import "fmt"

// EnvironmentError indicates that the pool's privileged mmap/pagemap
// preconditions are not met (missing hugepages, not running as root,
// pagemap unreadable). Per this module's error-handling policy, an
// EnvironmentError is always fatal - there is nothing a caller can do
// about a hostile environment except stop.
type EnvironmentError struct {
	Op  string
	Err error
}

func (o *EnvironmentError) Error() string {
	return fmt.Sprintf("pool environment error during %s: %v", o.Op, o.Err)
}

func (o *EnvironmentError) Unwrap() error {
	return o.Err
}

func newEnvironmentError(op string, err error) *EnvironmentError {
	return &EnvironmentError{Op: op, Err: err}
}
