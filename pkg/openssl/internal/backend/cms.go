//go:build cgo && !windows

package backend

/*
#include "shim.h"
*/
import "C"

// CMS is an owned CMS_ContentInfo pointer.
type CMS = *C.CMS_ContentInfo

// CMSFree releases c.
func CMSFree(c CMS) {
	if c == nil {
		return
	}
	C.CMS_ContentInfo_free(c)
}

// CMSReadSMIME parses an SMIME message. Detached content, if any, is not
// returned.
func CMSReadSMIME(smime []byte) (CMS, error) {
	enter()
	defer leave()

	in, err := newInputBio(smime, false)
	if err != nil {
		return nil, err
	}
	defer in.free()

	c := C.SMIME_read_CMS(in.bio, nil)
	if c == nil {
		return nil, drain("SMIME_read_CMS")
	}
	return c, nil
}

// CMSFromDER decodes a DER ContentInfo.
func CMSFromDER(der []byte) (CMS, error) {
	if len(der) == 0 {
		return nil, errEmptyInput
	}
	enter()
	defer leave()
	c := C.ossl_go_d2i_cms(derPtr(der), C.long(len(der)))
	if c == nil {
		return nil, drain("d2i_CMS_ContentInfo")
	}
	return c, nil
}

// CMSFromPEM reads a "CMS" PEM block.
func CMSFromPEM(pem []byte) (CMS, error) {
	enter()
	defer leave()

	in, err := newInputBio(pem, false)
	if err != nil {
		return nil, err
	}
	defer in.free()

	c := C.PEM_read_bio_CMS(in.bio, nil, nil, nil)
	if c == nil {
		return nil, drain("PEM_read_bio_CMS")
	}
	return c, nil
}

// CMSToDER encodes c as DER.
func CMSToDER(c CMS) ([]byte, error) {
	enter()
	defer leave()
	var p *C.uchar
	n := C.ossl_go_i2d_cms(c, &p)
	if n <= 0 {
		return nil, drain("i2d_CMS_ContentInfo")
	}
	return takeDER(p, n, false), nil
}

// CMSToPEM encodes c as a "CMS" PEM block.
func CMSToPEM(c CMS) ([]byte, error) {
	enter()
	defer leave()

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	if C.PEM_write_bio_CMS(out, c) != 1 {
		return nil, drain("PEM_write_bio_CMS")
	}
	return readBio(out), nil
}

// CMSToSMIME writes c as an SMIME message. data is the detached content
// for multipart/signed output and may be nil otherwise.
func CMSToSMIME(c CMS, data []byte, flags uint32) ([]byte, error) {
	enter()
	defer leave()

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	var dataBio *C.BIO
	if data != nil {
		in, err := newInputBio(data, false)
		if err != nil {
			return nil, err
		}
		defer in.free()
		dataBio = in.bio
	}

	if C.SMIME_write_CMS(out, c, dataBio, C.int(flags)) != 1 {
		return nil, drain("SMIME_write_CMS")
	}
	return readBio(out), nil
}

// CMSSign creates SignedData over data. certs are extra certificates to
// embed; the structure takes its own references on every certificate.
func CMSSign(signcert X509, key PKey, certs []X509, data []byte, flags uint32) (CMS, error) {
	enter()
	defer leave()

	sk, err := newX509Stack(certs)
	if err != nil {
		return nil, err
	}
	defer freeX509Stack(sk)

	in, err := newInputBio(data, false)
	if err != nil {
		return nil, err
	}
	defer in.free()

	c := C.CMS_sign(signcert, key, sk, in.bio, C.uint(flags))
	if c == nil {
		return nil, drain("CMS_sign")
	}
	return c, nil
}

// CMSEncrypt creates EnvelopedData over data for recipients using the named
// content cipher.
func CMSEncrypt(recipients []X509, data []byte, cipher string, flags uint32) (CMS, error) {
	enter()
	defer leave()

	enc, err := cipherByName(cipher)
	if err != nil {
		return nil, err
	}

	sk, err := newX509Stack(recipients)
	if err != nil {
		return nil, err
	}
	defer freeX509Stack(sk)

	in, err := newInputBio(data, true)
	if err != nil {
		return nil, err
	}
	defer in.free()

	c := C.CMS_encrypt(sk, in.bio, enc, C.uint(flags))
	if c == nil {
		return nil, drain("CMS_encrypt")
	}
	return c, nil
}

// CMSDecrypt decrypts EnvelopedData with key. cert selects the matching
// recipient and may be nil, in which case every recipient is tried.
func CMSDecrypt(c CMS, key PKey, cert X509, flags uint32) ([]byte, error) {
	enter()
	defer leave()

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	if C.CMS_decrypt(c, key, cert, nil, out, C.uint(flags)) != 1 {
		return nil, drain("CMS_decrypt")
	}
	return readBio(out), nil
}

// CMSVerify verifies SignedData and returns the signed content. store may
// be nil only when flags skip certificate verification. detached is the
// external content for detached signatures and nil otherwise.
func CMSVerify(c CMS, certs []X509, store Store, detached []byte, flags uint32) ([]byte, error) {
	enter()
	defer leave()

	sk, err := newX509Stack(certs)
	if err != nil {
		return nil, err
	}
	defer freeX509Stack(sk)

	var dcont *C.BIO
	if detached != nil {
		in, err := newInputBio(detached, false)
		if err != nil {
			return nil, err
		}
		defer in.free()
		dcont = in.bio
	}

	out, err := newOutputBio()
	if err != nil {
		return nil, err
	}
	defer C.BIO_free(out)

	if C.CMS_verify(c, sk, store, dcont, out, C.uint(flags)) != 1 {
		return nil, drain("CMS_verify")
	}
	return readBio(out), nil
}

// CMSContentType returns the short name of the outer content type.
func CMSContentType(c CMS) string {
	obj := C.CMS_get0_type(c)
	if obj == nil {
		return "UNDEF"
	}
	sn := C.OBJ_nid2sn(C.OBJ_obj2nid(obj))
	if sn == nil {
		return "UNDEF"
	}
	return C.GoString(sn)
}
