// Package handle implements the single-owner discipline shared by every
// native object in the module.
//
// An Owned value is the only owner of one native pointer (or of one
// reference count on it). Borrowing takes a read lock, so Release waits
// for in-flight calls and never frees memory under them. Borrowed views
// such as bn.Ref keep the Owned reachable and check it is still live on
// every access.
package handle

import (
	"errors"
	"runtime"
	"sync"
)

// ErrClosed is returned when a handle is used after it was released or
// moved.
var ErrClosed = errors.New("openssl: use of closed handle")

// Lifetime is implemented by owners that can vouch for borrowed views.
// Hold fails with ErrClosed once the owner is gone; otherwise the owner
// stays live until release is called.
type Lifetime interface {
	Hold() (release func(), err error)
}

// Owned holds one native pointer and the function that frees it.
type Owned[P any] struct {
	mu   sync.RWMutex
	ptr  P
	live bool
	free func(P)
}

// New takes ownership of ptr. free is called exactly once, either by
// Release or by the finalizer if the handle is leaked.
func New[P any](ptr P, free func(P)) *Owned[P] {
	o := &Owned[P]{ptr: ptr, live: true, free: free}
	runtime.SetFinalizer(o, func(o *Owned[P]) {
		o.Release()
	})
	return o
}

func nop() {}

// Borrow returns the pointer and a release func that must be called when
// the native call completes.
func (o *Owned[P]) Borrow() (P, func(), error) {
	var zero P
	if o == nil {
		return zero, nop, ErrClosed
	}
	o.mu.RLock()
	if !o.live {
		o.mu.RUnlock()
		return zero, nop, ErrClosed
	}
	return o.ptr, o.mu.RUnlock, nil
}

// BorrowExclusive is Borrow for native calls that mutate the object, such
// as CMS_verify caching signer certificates. It excludes every other
// borrower until release is called.
func (o *Owned[P]) BorrowExclusive() (P, func(), error) {
	var zero P
	if o == nil {
		return zero, nop, ErrClosed
	}
	o.mu.Lock()
	if !o.live {
		o.mu.Unlock()
		return zero, nop, ErrClosed
	}
	return o.ptr, o.mu.Unlock, nil
}

// Hold implements Lifetime.
func (o *Owned[P]) Hold() (func(), error) {
	_, release, err := o.Borrow()
	return release, err
}

// Live reports whether the handle still owns its pointer.
func (o *Owned[P]) Live() bool {
	if o == nil {
		return false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.live
}

// Release frees the pointer. It is idempotent.
func (o *Owned[P]) Release() {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.live {
		return
	}
	o.live = false
	var zero P
	ptr := o.ptr
	o.ptr = zero
	runtime.SetFinalizer(o, nil)
	if o.free != nil {
		o.free(ptr)
	}
}

// Take moves ownership of the pointer to the caller without freeing it.
// The handle is dead afterwards.
func (o *Owned[P]) Take() (P, error) {
	var zero P
	if o == nil {
		return zero, ErrClosed
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.live {
		return zero, ErrClosed
	}
	o.live = false
	ptr := o.ptr
	o.ptr = zero
	runtime.SetFinalizer(o, nil)
	return ptr, nil
}
