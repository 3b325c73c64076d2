//go:build cgo && !windows

package backend

/*
#include "shim.h"
*/
import "C"

import "unsafe"

// BigNum is a borrowed BIGNUM pointer. It is owned by its parent object and
// must never be freed.
type BigNum = *C.BIGNUM

// BigNumBits returns BN_num_bits.
func BigNumBits(b BigNum) int {
	if b == nil {
		return 0
	}
	return int(C.BN_num_bits(b))
}

// BigNumBytes returns the big-endian magnitude of b.
func BigNumBytes(b BigNum) []byte {
	if b == nil {
		return nil
	}
	n := int(C.ossl_go_bn_num_bytes(b))
	if n == 0 {
		return []byte{}
	}
	out := make([]byte, n)
	C.BN_bn2bin(b, (*C.uchar)(unsafe.Pointer(&out[0])))
	return out
}

// BigNumDecimal returns the decimal representation of b.
func BigNumDecimal(b BigNum) (string, error) {
	if b == nil {
		return "", errEmptyInput
	}
	enter()
	defer leave()
	s := C.BN_bn2dec(b)
	if s == nil {
		return "", drain("BN_bn2dec")
	}
	defer C.ossl_go_free(unsafe.Pointer(s))
	return C.GoString(s), nil
}
