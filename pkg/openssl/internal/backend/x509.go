//go:build cgo && !windows

package backend

/*
#include "shim.h"
*/
import "C"

// X509 is an owned certificate pointer (one reference).
type X509 = *C.X509

// X509Free releases one reference on x.
func X509Free(x X509) {
	if x == nil {
		return
	}
	C.X509_free(x)
}

// X509UpRef returns x with an extra reference for a new owner.
func X509UpRef(x X509) (X509, error) {
	enter()
	defer leave()
	if C.X509_up_ref(x) != 1 {
		return nil, drain("X509_up_ref")
	}
	return x, nil
}

// X509FromPEM reads the first "CERTIFICATE" block of pem.
func X509FromPEM(pem []byte) (X509, error) {
	enter()
	defer leave()

	in, err := newInputBio(pem, false)
	if err != nil {
		return nil, err
	}
	defer in.free()

	x := C.PEM_read_bio_X509(in.bio, nil, nil, nil)
	if x == nil {
		return nil, drain("PEM_read_bio_X509")
	}
	return x, nil
}

// X509FromDER decodes a DER certificate.
func X509FromDER(der []byte) (X509, error) {
	if len(der) == 0 {
		return nil, errEmptyInput
	}
	enter()
	defer leave()
	x := C.ossl_go_d2i_x509(derPtr(der), C.long(len(der)))
	if x == nil {
		return nil, drain("d2i_X509")
	}
	return x, nil
}

// X509ToPEM encodes x as a "CERTIFICATE" block.
func X509ToPEM(x X509) ([]byte, error) {
	enter()
	defer leave()

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	if C.PEM_write_bio_X509(out, x) != 1 {
		return nil, drain("PEM_write_bio_X509")
	}
	return readBio(out), nil
}

// X509ToDER encodes x as DER.
func X509ToDER(x X509) ([]byte, error) {
	enter()
	defer leave()
	var p *C.uchar
	n := C.ossl_go_i2d_x509(x, &p)
	if n <= 0 {
		return nil, drain("i2d_X509")
	}
	return takeDER(p, n, false), nil
}

// X509SubjectHash returns X509_subject_name_hash, the value that names
// files in a hashed certificate directory.
func X509SubjectHash(x X509) uint32 {
	return uint32(C.X509_subject_name_hash(x))
}

// X509Subject renders the subject name in RFC 2253 form.
func X509Subject(x X509) (string, error) {
	enter()
	defer leave()

	out, err := newOutputBio()
	if err != nil {
		return "", err
	}
	defer C.BIO_free(out)

	if C.ossl_go_x509_subject_rfc2253(out, x) < 0 {
		return "", drain("X509_NAME_print_ex")
	}
	return string(readBio(out)), nil
}

type x509Stack = *C.struct_stack_st_X509

// newX509Stack builds a non-owning STACK_OF(X509) over certs. The caller
// keeps its references and releases the stack with freeX509Stack. Must be
// called between enter and leave.
func newX509Stack(certs []X509) (x509Stack, error) {
	sk := C.ossl_go_sk_x509_new()
	if sk == nil {
		return nil, drain("sk_X509_new_null")
	}
	for _, x := range certs {
		if C.ossl_go_sk_x509_push(sk, x) <= 0 {
			err := drain("sk_X509_push")
			C.ossl_go_sk_x509_free(sk)
			return nil, err
		}
	}
	return sk, nil
}

func freeX509Stack(sk x509Stack) {
	if sk != nil {
		C.ossl_go_sk_x509_free(sk)
	}
}
