// Package bn exposes borrowed views of OpenSSL BIGNUM values.
//
// A Ref never owns its BIGNUM. It is created by the handle that does (for
// example dsa.Key.P) and is valid only while that handle is open: every
// accessor first asks the owner to hold itself live and fails with
// openssl.ErrClosed once the owner has been closed.
package bn

import (
	"math/big"

	"github.com/coinbase/openssl-go/pkg/openssl/internal/backend"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/handle"
)

// Ref is a read-only view of a BIGNUM owned by another handle.
type Ref struct {
	ptr   backend.BigNum
	owner handle.Lifetime
}

// Borrow creates a view of ptr tied to owner. It returns nil when ptr is
// nil so that unset values surface as a nil *Ref.
func Borrow(ptr backend.BigNum, owner handle.Lifetime) *Ref {
	if ptr == nil {
		return nil
	}
	return &Ref{ptr: ptr, owner: owner}
}

func (r *Ref) hold() (func(), error) {
	if r == nil || r.owner == nil {
		return func() {}, handle.ErrClosed
	}
	return r.owner.Hold()
}

// NumBits returns the number of significant bits.
func (r *Ref) NumBits() (int, error) {
	release, err := r.hold()
	defer release()
	if err != nil {
		return 0, err
	}
	return backend.BigNumBits(r.ptr), nil
}

// Bytes returns a copy of the big-endian magnitude.
func (r *Ref) Bytes() ([]byte, error) {
	release, err := r.hold()
	defer release()
	if err != nil {
		return nil, err
	}
	return backend.BigNumBytes(r.ptr), nil
}

// BigInt returns a copy of the value as a big.Int.
func (r *Ref) BigInt() (*big.Int, error) {
	b, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// Decimal returns the base-10 representation produced by BN_bn2dec.
func (r *Ref) Decimal() (string, error) {
	release, err := r.hold()
	defer release()
	if err != nil {
		return "", err
	}
	return backend.BigNumDecimal(r.ptr)
}

// String implements fmt.Stringer. A released view prints as "<closed>".
func (r *Ref) String() string {
	s, err := r.Decimal()
	if err != nil {
		return "<closed>"
	}
	return s
}
