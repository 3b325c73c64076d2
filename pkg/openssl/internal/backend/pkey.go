//go:build cgo && !windows

package backend

/*
#include "shim.h"
*/
import "C"

// PKey is an owned EVP_PKEY pointer.
type PKey = *C.EVP_PKEY

// PKeyFree releases one reference on k.
func PKeyFree(k PKey) {
	if k == nil {
		return
	}
	C.EVP_PKEY_free(k)
}

// PrivateKeyFromPEM reads any private key PEM block OpenSSL understands
// (PKCS#8, encrypted PKCS#8 or a traditional per-algorithm block).
func PrivateKeyFromPEM(pem, pass []byte) (PKey, error) {
	enter()
	defer leave()

	in, err := newInputBio(pem, true)
	if err != nil {
		return nil, err
	}
	defer in.free()

	cpass, passlen, release, err := secretPass(pass)
	defer release()
	if err != nil {
		return nil, err
	}

	k := C.ossl_go_pkey_read_private_pem(in.bio, cpass, passlen)
	if k == nil {
		return nil, drain("PEM_read_bio_PrivateKey")
	}
	return k, nil
}

// PublicKeyFromPEM reads a SubjectPublicKeyInfo "PUBLIC KEY" block.
func PublicKeyFromPEM(pem []byte) (PKey, error) {
	enter()
	defer leave()

	in, err := newInputBio(pem, false)
	if err != nil {
		return nil, err
	}
	defer in.free()

	k := C.PEM_read_bio_PUBKEY(in.bio, nil, nil, nil)
	if k == nil {
		return nil, drain("PEM_read_bio_PUBKEY")
	}
	return k, nil
}

// PrivateKeyFromDER decodes PKCS#8 or a traditional private key structure.
func PrivateKeyFromDER(der []byte) (PKey, error) {
	if len(der) == 0 {
		return nil, errEmptyInput
	}
	enter()
	defer leave()
	k := C.ossl_go_d2i_private_key(derPtr(der), C.long(len(der)))
	if k == nil {
		return nil, drain("d2i_AutoPrivateKey")
	}
	return k, nil
}

// PublicKeyFromDER decodes a SubjectPublicKeyInfo structure.
func PublicKeyFromDER(der []byte) (PKey, error) {
	if len(der) == 0 {
		return nil, errEmptyInput
	}
	enter()
	defer leave()
	k := C.ossl_go_d2i_pubkey(derPtr(der), C.long(len(der)))
	if k == nil {
		return nil, drain("d2i_PUBKEY")
	}
	return k, nil
}

// PKeyFromDSA wraps d in a new EVP_PKEY. The EVP_PKEY takes its own
// reference on d; the caller keeps ownership of d.
func PKeyFromDSA(d DSA) (PKey, error) {
	enter()
	defer leave()

	k := C.EVP_PKEY_new()
	if k == nil {
		return nil, drain("EVP_PKEY_new")
	}
	if C.EVP_PKEY_set1_DSA(k, d) != 1 {
		err := drain("EVP_PKEY_set1_DSA")
		C.EVP_PKEY_free(k)
		return nil, err
	}
	return k, nil
}

// PKeyType returns the short name of the key algorithm, e.g. "RSA".
func PKeyType(k PKey) string {
	sn := C.OBJ_nid2sn(C.EVP_PKEY_base_id(k))
	if sn == nil {
		return "UNDEF"
	}
	return C.GoString(sn)
}

// PKeyBits returns EVP_PKEY_bits.
func PKeyBits(k PKey) int {
	return int(C.EVP_PKEY_bits(k))
}

// PrivateKeyToPEM writes an unencrypted private key block.
func PrivateKeyToPEM(k PKey) ([]byte, error) {
	enter()
	defer leave()

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	if C.PEM_write_bio_PrivateKey(out, k, nil, nil, 0, nil, nil) != 1 {
		return nil, drain("PEM_write_bio_PrivateKey")
	}
	return readBio(out), nil
}

// PublicKeyToPEM writes a SubjectPublicKeyInfo "PUBLIC KEY" block.
func PublicKeyToPEM(k PKey) ([]byte, error) {
	enter()
	defer leave()

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	if C.PEM_write_bio_PUBKEY(out, k) != 1 {
		return nil, drain("PEM_write_bio_PUBKEY")
	}
	return readBio(out), nil
}

// PublicKeyToDER encodes a SubjectPublicKeyInfo structure.
func PublicKeyToDER(k PKey) ([]byte, error) {
	enter()
	defer leave()
	var p *C.uchar
	n := C.ossl_go_i2d_pubkey(k, &p)
	if n <= 0 {
		return nil, drain("i2d_PUBKEY")
	}
	return takeDER(p, n, false), nil
}
