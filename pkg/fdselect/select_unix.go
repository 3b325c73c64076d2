//go:build unix

package fdselect

import (
	"errors"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

var setSize = len(unix.FdSet{}.Bits) * int(unsafe.Sizeof(unix.FdSet{}.Bits[0])) * 8

// Set is a platform fd_set. The zero value is empty.
type Set struct {
	fds unix.FdSet
}

func inRange(d Descriptor) (int, bool) {
	fd := d.Fd()
	return int(fd), fd < uintptr(setSize)
}

// Add watches d. Descriptors at or above FD_SETSIZE are rejected.
func (s *Set) Add(d Descriptor) error {
	fd, ok := inRange(d)
	if !ok {
		return ErrSetFull
	}
	s.fds.Set(fd)
	return nil
}

// Contains reports whether d is in the set.
func (s *Set) Contains(d Descriptor) bool {
	fd, ok := inRange(d)
	return ok && s.fds.IsSet(fd)
}

// Clear empties the set.
func (s *Set) Clear() {
	s.fds.Zero()
}

func (s *Set) raw() *unix.FdSet {
	if s == nil {
		return nil
	}
	return &s.fds
}

func sysSelect(maxFD Descriptor, read, write, except *Set, timeout time.Duration) (int, error) {
	nfd := setSize
	if maxFD != nil {
		fd, ok := inRange(maxFD)
		if !ok {
			return 0, ErrSetFull
		}
		nfd = fd + 1
	}
	var tv *unix.Timeval
	if timeout >= 0 {
		t := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &t
	}
	return unix.Select(nfd, read.raw(), write.raw(), except.raw(), tv)
}

func interrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}
