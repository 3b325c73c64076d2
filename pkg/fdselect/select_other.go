//go:build !unix && !windows

package fdselect

import (
	"errors"
	"time"
)

// Set is empty on platforms without a select call.
type Set struct{}

// Add always fails on this platform.
func (s *Set) Add(Descriptor) error { return ErrUnsupported }

// Contains always reports false on this platform.
func (s *Set) Contains(Descriptor) bool { return false }

// Clear is a no-op on this platform.
func (s *Set) Clear() {}

// ErrUnsupported is returned on platforms without a select call.
var ErrUnsupported = errors.New("fdselect: select is not available on this platform")

func sysSelect(Descriptor, *Set, *Set, *Set, time.Duration) (int, error) {
	return 0, ErrUnsupported
}

func interrupted(error) bool { return false }
