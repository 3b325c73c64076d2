package openssl

import "runtime"

// ZeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
//
// This follows the pattern recommended in golang/go#33325. It cannot clear
// copies the garbage collector or other libraries may have made; native
// buffers holding key material are wiped by the bindings with
// OPENSSL_cleanse before they are freed.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
