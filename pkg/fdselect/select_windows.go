//go:build windows

package fdselect

import (
	"errors"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	setSize = 64
	// WSAEINTR
	errInterrupted = syscall.Errno(10004)
)

var (
	ws2        = windows.NewLazySystemDLL("ws2_32.dll")
	procSelect = ws2.NewProc("select")

	startupOnce sync.Once
	startupErr  error
)

// Set mirrors the Winsock fd_set layout. The zero value is empty.
type Set struct {
	count uint32
	array [setSize]windows.Handle
}

// Add watches d. At most 64 sockets fit in a set.
func (s *Set) Add(d Descriptor) error {
	h := windows.Handle(d.Fd())
	for i := uint32(0); i < s.count; i++ {
		if s.array[i] == h {
			return nil
		}
	}
	if s.count == setSize {
		return ErrSetFull
	}
	s.array[s.count] = h
	s.count++
	return nil
}

// Contains reports whether d is in the set.
func (s *Set) Contains(d Descriptor) bool {
	h := windows.Handle(d.Fd())
	for i := uint32(0); i < s.count; i++ {
		if s.array[i] == h {
			return true
		}
	}
	return false
}

// Clear empties the set.
func (s *Set) Clear() {
	s.count = 0
}

func (s *Set) ptr() uintptr {
	if s == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(s))
}

// sysSelect ignores max; Winsock derives the range from the sets.
func sysSelect(_ Descriptor, read, write, except *Set, timeout time.Duration) (int, error) {
	startupOnce.Do(func() {
		var data windows.WSAData
		startupErr = windows.WSAStartup(uint32(0x202), &data)
	})
	if startupErr != nil {
		return 0, startupErr
	}

	var tv *windows.Timeval
	if timeout >= 0 {
		t := windows.NsecToTimeval(timeout.Nanoseconds())
		tv = &t
	}
	r, _, e := procSelect.Call(0, read.ptr(), write.ptr(), except.ptr(), uintptr(unsafe.Pointer(tv)))
	if n := int32(r); n >= 0 {
		return int(n), nil
	}
	if e == nil {
		e = errors.New("select failed")
	}
	return 0, e
}

func interrupted(err error) bool {
	return errors.Is(err, errInterrupted)
}
