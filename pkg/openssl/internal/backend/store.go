//go:build cgo && !windows

package backend

/*
#include "shim.h"
*/
import "C"

import "unsafe"

// Store is an owned X509_STORE pointer.
type Store = *C.X509_STORE

// StoreNew returns an empty certificate store.
func StoreNew() (Store, error) {
	enter()
	defer leave()
	s := C.X509_STORE_new()
	if s == nil {
		return nil, drain("X509_STORE_new")
	}
	return s, nil
}

// StoreFree releases s.
func StoreFree(s Store) {
	if s == nil {
		return
	}
	C.X509_STORE_free(s)
}

// StoreAddCert adds x to s. The store takes its own reference on x.
func StoreAddCert(s Store, x X509) error {
	enter()
	defer leave()
	if C.X509_STORE_add_cert(s, x) != 1 {
		return drain("X509_STORE_add_cert")
	}
	return nil
}

// StoreSetDefaultPaths adds the default file and directory lookups, which
// honour SSL_CERT_FILE and SSL_CERT_DIR.
func StoreSetDefaultPaths(s Store) error {
	enter()
	defer leave()
	if C.X509_STORE_set_default_paths(s) != 1 {
		return drain("X509_STORE_set_default_paths")
	}
	return nil
}

// StoreLoadLocations loads a PEM bundle and/or registers a hashed
// certificate directory. Empty arguments are skipped.
func StoreLoadLocations(s Store, file, dir string) error {
	var cfile, cdir *C.char
	if file != "" {
		cfile = C.CString(file)
		defer C.free(unsafe.Pointer(cfile))
	}
	if dir != "" {
		cdir = C.CString(dir)
		defer C.free(unsafe.Pointer(cdir))
	}

	enter()
	defer leave()
	if C.X509_STORE_load_locations(s, cfile, cdir) != 1 {
		return drain("X509_STORE_load_locations")
	}
	return nil
}

// DefaultCertPaths returns the build-time default certificate file and
// directory together with the environment variables that override them.
func DefaultCertPaths() (file, dir, fileEnv, dirEnv string) {
	return C.GoString(C.X509_get_default_cert_file()),
		C.GoString(C.X509_get_default_cert_dir()),
		C.GoString(C.X509_get_default_cert_file_env()),
		C.GoString(C.X509_get_default_cert_dir_env())
}

// StoreVerify validates x against s, using untrusted as intermediate
// candidates. A rejected chain yields a non-nil *VerifyResult and a nil
// error; err reports failures of the verification machinery itself.
func StoreVerify(s Store, x X509, untrusted []X509) (*VerifyResult, error) {
	enter()
	defer leave()

	sk, err := newX509Stack(untrusted)
	if err != nil {
		return nil, err
	}
	defer freeX509Stack(sk)

	ctx := C.X509_STORE_CTX_new()
	if ctx == nil {
		return nil, drain("X509_STORE_CTX_new")
	}
	defer C.X509_STORE_CTX_free(ctx)

	if C.X509_STORE_CTX_init(ctx, s, x, sk) != 1 {
		return nil, drain("X509_STORE_CTX_init")
	}

	rc := C.X509_verify_cert(ctx)
	switch {
	case rc == 1:
		return nil, nil
	case rc == 0:
		code := C.X509_STORE_CTX_get_error(ctx)
		// The error queue holds a duplicate of the chain error.
		C.ERR_clear_error()
		return &VerifyResult{
			Code:   int(code),
			Depth:  int(C.X509_STORE_CTX_get_error_depth(ctx)),
			Reason: C.GoString(C.X509_verify_cert_error_string(C.long(code))),
		}, nil
	default:
		return nil, drain("X509_verify_cert")
	}
}

// StoreCertificates returns a new reference to every certificate object
// currently held by s. Certificates behind lazy directory lookups are only
// included once they have been loaded.
func StoreCertificates(s Store) ([]X509, error) {
	enter()
	defer leave()

	sk := C.ossl_go_store_certs(s)
	if sk == nil {
		return nil, drain("X509_STORE_get0_objects")
	}
	defer C.ossl_go_sk_x509_free(sk)

	n := int(C.ossl_go_sk_x509_num(sk))
	out := make([]X509, n)
	for i := range out {
		out[i] = C.ossl_go_sk_x509_value(sk, C.int(i))
	}
	return out, nil
}
