//go:build !amd64

package timing

func newHardwareClock() (Clock, error) {
	return nil, ErrUnsupportedArch
}
