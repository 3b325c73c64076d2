//go:build cgo && !windows

package backend

/*
#include "shim.h"
*/
import "C"

// DSA is an owned DSA pointer.
type DSA = *C.DSA

// DSAFree releases one reference on d.
func DSAFree(d DSA) {
	if d == nil {
		return
	}
	C.DSA_free(d)
}

// DSAGenerate creates a fresh key pair whose prime p has the given length.
// The partially constructed DSA is freed when either generation step fails.
func DSAGenerate(bits int) (DSA, error) {
	enter()
	defer leave()

	d := C.DSA_new()
	if d == nil {
		return nil, drain("DSA_new")
	}
	if C.DSA_generate_parameters_ex(d, C.int(bits), nil, 0, nil, nil, nil) != 1 {
		err := drain("DSA_generate_parameters_ex")
		C.DSA_free(d)
		return nil, err
	}
	if C.DSA_generate_key(d) != 1 {
		err := drain("DSA_generate_key")
		C.DSA_free(d)
		return nil, err
	}
	return d, nil
}

// DSAP, DSAQ and DSAG return borrowed views of the domain parameters, or
// nil when unset.
func DSAP(d DSA) BigNum { return BigNum(C.ossl_go_dsa_p(d)) }
func DSAQ(d DSA) BigNum { return BigNum(C.ossl_go_dsa_q(d)) }
func DSAG(d DSA) BigNum { return BigNum(C.ossl_go_dsa_g(d)) }

// DSAHasPublicKey reports whether the public component is present.
func DSAHasPublicKey(d DSA) bool { return C.ossl_go_dsa_has_public(d) != 0 }

// DSAHasPrivateKey reports whether the private component is present.
func DSAHasPrivateKey(d DSA) bool { return C.ossl_go_dsa_has_private(d) != 0 }

// DSASize returns DSA_size, the maximum DER signature length.
func DSASize(d DSA) int { return int(C.DSA_size(d)) }

// DSAPrivateKeyFromPEM reads a traditional "DSA PRIVATE KEY" block. pass is
// used for encrypted blocks; a nil pass never falls back to a terminal
// prompt.
func DSAPrivateKeyFromPEM(pem, pass []byte) (DSA, error) {
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

	d := C.ossl_go_dsa_read_private_pem(in.bio, cpass, passlen)
	if d == nil {
		return nil, drain("PEM_read_bio_DSAPrivateKey")
	}
	return d, nil
}

// DSAPublicKeyFromPEM reads a SubjectPublicKeyInfo "PUBLIC KEY" block.
func DSAPublicKeyFromPEM(pem []byte) (DSA, error) {
	enter()
	defer leave()

	in, err := newInputBio(pem, false)
	if err != nil {
		return nil, err
	}
	defer in.free()

	d := C.PEM_read_bio_DSA_PUBKEY(in.bio, nil, nil, nil)
	if d == nil {
		return nil, drain("PEM_read_bio_DSA_PUBKEY")
	}
	return d, nil
}

// DSAPrivateKeyFromDER decodes a DSAPrivateKey structure.
func DSAPrivateKeyFromDER(der []byte) (DSA, error) {
	if len(der) == 0 {
		return nil, errEmptyInput
	}
	enter()
	defer leave()
	d := C.ossl_go_d2i_dsa_private(derPtr(der), C.long(len(der)))
	if d == nil {
		return nil, drain("d2i_DSAPrivateKey")
	}
	return d, nil
}

// DSAPublicKeyFromDER decodes a DSAPublicKey structure.
func DSAPublicKeyFromDER(der []byte) (DSA, error) {
	if len(der) == 0 {
		return nil, errEmptyInput
	}
	enter()
	defer leave()
	d := C.ossl_go_d2i_dsa_public(derPtr(der), C.long(len(der)))
	if d == nil {
		return nil, drain("d2i_DSAPublicKey")
	}
	return d, nil
}

// DSAPrivateKeyToPEM writes a traditional "DSA PRIVATE KEY" block,
// encrypted with cipher when cipher is non-empty.
func DSAPrivateKeyToPEM(d DSA, cipher string, pass []byte) ([]byte, error) {
	enter()
	defer leave()

	var enc *C.EVP_CIPHER
	if cipher != "" {
		c, err := cipherByName(cipher)
		if err != nil {
			return nil, err
		}
		enc = c
	}

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	var rc C.int
	if enc != nil {
		cpass, passlen, release, err := secretPass(pass)
		defer release()
		if err != nil {
			return nil, err
		}
		rc = C.ossl_go_dsa_write_private_pem(out, d, enc, cpass, passlen)
	} else {
		rc = C.ossl_go_dsa_write_private_pem(out, d, nil, nil, 0)
	}
	if rc != 1 {
		return nil, drain("PEM_write_bio_DSAPrivateKey")
	}
	return readBio(out), nil
}

// DSAPublicKeyToPEM writes a SubjectPublicKeyInfo "PUBLIC KEY" block.
func DSAPublicKeyToPEM(d DSA) ([]byte, error) {
	enter()
	defer leave()

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	if C.PEM_write_bio_DSA_PUBKEY(out, d) != 1 {
		return nil, drain("PEM_write_bio_DSA_PUBKEY")
	}
	return readBio(out), nil
}

// DSAPrivateKeyToDER encodes a DSAPrivateKey structure.
func DSAPrivateKeyToDER(d DSA) ([]byte, error) {
	enter()
	defer leave()
	var p *C.uchar
	n := C.ossl_go_i2d_dsa_private(d, &p)
	if n <= 0 {
		return nil, drain("i2d_DSAPrivateKey")
	}
	return takeDER(p, n, true), nil
}

// DSAPublicKeyToDER encodes a DSAPublicKey structure.
func DSAPublicKeyToDER(d DSA) ([]byte, error) {
	enter()
	defer leave()
	var p *C.uchar
	n := C.ossl_go_i2d_dsa_public(d, &p)
	if n <= 0 {
		return nil, drain("i2d_DSAPublicKey")
	}
	return takeDER(p, n, false), nil
}
