//go:build cgo && !windows

package backend

/*
#cgo pkg-config: libcrypto
#cgo CFLAGS: -Wno-deprecated-declarations
#include "shim.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

var errEmptyInput = errors.New("openssl/internal/backend: empty input")

// Init runs OPENSSL_init_crypto. It is safe to call more than once.
func Init(loadConfig bool) error {
	opts := C.uint64_t(C.OPENSSL_INIT_LOAD_CRYPTO_STRINGS) |
		C.uint64_t(C.OPENSSL_INIT_ADD_ALL_CIPHERS) |
		C.uint64_t(C.OPENSSL_INIT_ADD_ALL_DIGESTS)
	if loadConfig {
		opts |= C.uint64_t(C.OPENSSL_INIT_LOAD_CONFIG)
	} else {
		opts |= C.uint64_t(C.OPENSSL_INIT_NO_LOAD_CONFIG)
	}

	enter()
	defer leave()
	if C.OPENSSL_init_crypto(opts, nil) != 1 {
		return drain("OPENSSL_init_crypto")
	}
	return nil
}

// Version returns the version string of the linked libcrypto.
func Version() string {
	return C.GoString(C.OpenSSL_version(C.OPENSSL_VERSION))
}

// VersionNumber returns OpenSSL_version_num of the linked libcrypto.
func VersionNumber() uint64 {
	return uint64(C.OpenSSL_version_num())
}

// enter pins the goroutine to its OS thread and clears the thread-local
// error queue. Every native call that may fail is bracketed by enter/leave
// so that drain observes only the errors of that call.
func enter() {
	runtime.LockOSThread()
	C.ERR_clear_error()
}

func leave() {
	runtime.UnlockOSThread()
}

// drain empties the calling thread's error queue into an *ErrorStack.
// Must be called between enter and leave.
func drain(op string) error {
	s := &ErrorStack{Op: op}
	for {
		var file, fn, data *C.char
		var line, flags C.int
		code := C.ossl_go_err_next(&file, &line, &fn, &data, &flags)
		if code == 0 {
			break
		}
		e := Error{Code: uint64(code), Line: int(line)}
		if lib := C.ERR_lib_error_string(code); lib != nil {
			e.Library = C.GoString(lib)
		}
		if reason := C.ERR_reason_error_string(code); reason != nil {
			e.Reason = C.GoString(reason)
		}
		if fn != nil {
			e.Function = C.GoString(fn)
		}
		if file != nil {
			e.File = C.GoString(file)
		}
		if data != nil && C.ossl_go_err_txt_string(flags) != 0 {
			e.Data = C.GoString(data)
		}
		s.Errors = append(s.Errors, e)
	}
	return s
}

// inputBio is a read-only memory BIO over a C copy of a Go buffer. A copy
// is required because the BIO keeps the pointer across calls.
type inputBio struct {
	bio    *C.BIO
	buf    unsafe.Pointer
	n      int
	secret bool
}

func newInputBio(data []byte, secret bool) (*inputBio, error) {
	n := len(data)
	if err := checkInputLen(n); err != nil {
		return nil, err
	}
	size := n
	if size == 0 {
		size = 1
	}
	buf := C.malloc(C.size_t(size))
	if buf == nil {
		return nil, errors.New("openssl/internal/backend: malloc failed")
	}
	if n > 0 {
		C.memcpy(buf, unsafe.Pointer(&data[0]), C.size_t(n))
	}
	bio := C.BIO_new_mem_buf(buf, C.int(n))
	if bio == nil {
		C.free(buf)
		return nil, drain("BIO_new_mem_buf")
	}
	return &inputBio{bio: bio, buf: buf, n: size, secret: secret}, nil
}

func (b *inputBio) free() {
	if b == nil {
		return
	}
	C.BIO_free(b.bio)
	if b.secret {
		C.OPENSSL_cleanse(b.buf, C.size_t(b.n))
	}
	C.free(b.buf)
}

func newOutputBio() (*C.BIO, error) {
	bio := C.BIO_new(C.BIO_s_mem())
	if bio == nil {
		return nil, drain("BIO_new")
	}
	return bio, nil
}

// readBio copies the contents of a memory BIO into Go memory.
func readBio(bio *C.BIO) []byte {
	var p *C.char
	n := C.ossl_go_bio_mem(bio, &p)
	if n <= 0 || p == nil {
		return []byte{}
	}
	return C.GoBytes(unsafe.Pointer(p), C.int(n))
}

// takeDER copies a buffer produced by one of the ossl_go_i2d_* helpers and
// releases the C allocation, wiping it first when it held key material.
func takeDER(p *C.uchar, n C.int, secret bool) []byte {
	out := C.GoBytes(unsafe.Pointer(p), n)
	if secret {
		C.ossl_go_clear_free(unsafe.Pointer(p), C.size_t(n))
	} else {
		C.ossl_go_free(unsafe.Pointer(p))
	}
	return out
}

// derPtr points at Go memory for the duration of a single d2i call.
func derPtr(der []byte) *C.uchar {
	return (*C.uchar)(unsafe.Pointer(&der[0]))
}

// errPassphraseTooLong is returned for passphrases the PEM layer would
// truncate on read.
var errPassphraseTooLong = fmt.Errorf("openssl/internal/backend: passphrase longer than %d bytes", C.PEM_BUFSIZE)

// secretPass copies a passphrase into C memory. The result is passed with
// its length, so embedded NUL bytes are significant.
func secretPass(pass []byte) (*C.uchar, C.int, func(), error) {
	n := len(pass)
	if n > C.PEM_BUFSIZE {
		return nil, 0, func() {}, errPassphraseTooLong
	}
	p := C.malloc(C.size_t(n + 1))
	if n > 0 {
		C.memcpy(p, unsafe.Pointer(&pass[0]), C.size_t(n))
	}
	*(*byte)(unsafe.Add(p, n)) = 0
	return (*C.uchar)(p), C.int(n), func() {
		C.OPENSSL_cleanse(p, C.size_t(n+1))
		C.free(p)
	}, nil
}

// cipherByName resolves an EVP cipher; the result is a static table entry
// and is never freed.
func cipherByName(name string) (*C.EVP_CIPHER, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	c := C.EVP_get_cipherbyname(cname)
	if c == nil {
		return nil, drain("EVP_get_cipherbyname(" + name + ")")
	}
	return c, nil
}
