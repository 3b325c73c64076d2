package fdselect

import (
	"errors"
	"fmt"
	"syscall"
	"time"
)

// Descriptor is anything that exposes an OS descriptor, for example
// *os.File or the result of FromConn.
type Descriptor interface {
	Fd() uintptr
}

// FD is a raw descriptor value.
type FD uintptr

// Fd implements Descriptor.
func (f FD) Fd() uintptr { return uintptr(f) }

// ErrSetFull is returned by Set.Add, and by Select for maxFD, when the
// descriptor does not fit in the platform fd_set.
var ErrSetFull = errors.New("fdselect: descriptor does not fit in fd_set")

// FromConn returns the descriptor behind a socket such as *net.TCPConn.
// The connection keeps ownership of the descriptor and must stay open
// while the result is in use.
func FromConn(c syscall.Conn) (Descriptor, error) {
	rc, err := c.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("fdselect: syscall conn: %w", err)
	}
	var fd uintptr
	if err := rc.Control(func(f uintptr) { fd = f }); err != nil {
		return nil, fmt.Errorf("fdselect: control: %w", err)
	}
	return FD(fd), nil
}

// Select waits until a descriptor in read, write or except is ready and
// reports whether any was. Nil sets are not watched. maxFD must be the
// highest descriptor in any set; nil lets the whole fd_set range be
// scanned; a maxFD outside the fd_set range fails with ErrSetFull. A
// negative timeout blocks indefinitely, zero polls.
//
// On return the sets hold only the ready descriptors. An interrupted call
// is restarted with the original sets and the remaining timeout.
func Select(maxFD Descriptor, read, write, except *Set, timeout time.Duration) (bool, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	var saved [3]Set
	for i, s := range []*Set{read, write, except} {
		if s != nil {
			saved[i] = *s
		}
	}

	for {
		n, err := sysSelect(maxFD, read, write, except, timeout)
		if err == nil {
			return n > 0, nil
		}
		if !interrupted(err) {
			return false, fmt.Errorf("fdselect: select: %w", err)
		}
		for i, s := range []*Set{read, write, except} {
			if s != nil {
				*s = saved[i]
			}
		}
		if timeout > 0 {
			timeout = time.Until(deadline)
			if timeout < 0 {
				timeout = 0
			}
		}
	}
}
