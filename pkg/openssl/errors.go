package openssl

import (
	"errors"

	"github.com/coinbase/openssl-go/pkg/openssl/internal/backend"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/handle"
)

// ErrorStack is the drained OpenSSL error queue of a failed native call.
// Use errors.As to recover it from an adapter error.
type ErrorStack = backend.ErrorStack

// Error is a single entry of an ErrorStack.
type Error = backend.Error

var (
	// ErrNotBuilt reports that the native bindings were not linked into the
	// current binary (cgo disabled or Windows).
	ErrNotBuilt = backend.ErrNotBuilt

	// ErrClosed is returned when a handle, or a view derived from it, is
	// used after Close.
	ErrClosed = handle.ErrClosed

	// ErrNotPrivate is returned when an operation needs a private key but
	// was given a public-only key.
	ErrNotPrivate = errors.New("openssl: private key required")
)

// IsErrorStack reports whether err carries an OpenSSL error stack and
// returns it.
func IsErrorStack(err error) (*ErrorStack, bool) {
	var stack *ErrorStack
	if errors.As(err, &stack) {
		return stack, true
	}
	return nil, false
}
