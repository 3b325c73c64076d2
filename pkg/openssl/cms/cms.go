package cms

import (
	"context"
	"errors"
	"fmt"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/backend"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/handle"
	"github.com/coinbase/openssl-go/pkg/openssl/pkey"
	"github.com/coinbase/openssl-go/pkg/openssl/x509"
)

// DefaultCipher is the content cipher used by Encrypt when none is named.
const DefaultCipher = "aes-256-cbc"

// ContentInfo is an owned CMS_ContentInfo.
type ContentInfo struct {
	h *handle.Owned[backend.CMS]
}

func newContentInfo(c backend.CMS) *ContentInfo {
	return &ContentInfo{h: handle.New(c, backend.CMSFree)}
}

// ReadSMIME parses an SMIME message. The content of a multipart/signed
// message is not returned; pass it to Verify as detached content.
func ReadSMIME(smime []byte) (*ContentInfo, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	c, err := backend.CMSReadSMIME(smime)
	if err != nil {
		return nil, fmt.Errorf("cms: read SMIME: %w", err)
	}
	return newContentInfo(c), nil
}

// FromDER decodes a DER ContentInfo.
func FromDER(der []byte) (*ContentInfo, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	c, err := backend.CMSFromDER(der)
	if err != nil {
		return nil, fmt.Errorf("cms: parse DER: %w", err)
	}
	return newContentInfo(c), nil
}

// FromPEM reads a "CMS" PEM block.
func FromPEM(pem []byte) (*ContentInfo, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	c, err := backend.CMSFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("cms: parse PEM: %w", err)
	}
	return newContentInfo(c), nil
}

// Sign creates SignedData over data with signcert and its private key.
// certs are additional chain certificates to embed and may be nil. With
// Detached the content is left out of the structure.
func Sign(signcert *x509.Certificate, key *pkey.PKey, certs []*x509.Certificate, data []byte, flags Flags) (*ContentInfo, error) {
	if err := flags.check(); err != nil {
		return nil, err
	}
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}

	k, releaseKey, err := key.PrivatePtr()
	defer releaseKey()
	if err != nil {
		return nil, err
	}
	sc, releaseCert, err := signcert.Ptr()
	defer releaseCert()
	if err != nil {
		return nil, err
	}

	extra := make([]*x509.Certificate, 0, len(certs))
	for _, c := range certs {
		if c != signcert {
			extra = append(extra, c)
		}
	}
	ptrs, releaseAll, err := x509.BorrowAll(extra)
	defer releaseAll()
	if err != nil {
		return nil, err
	}

	openssl.Logger().Debug(context.Background(), "cms sign",
		"bytes", len(data),
		"chain", len(ptrs),
		"flags", flags.String(),
	)
	c, err := backend.CMSSign(sc, k, ptrs, data, uint32(flags))
	if err != nil {
		return nil, fmt.Errorf("cms: sign: %w", err)
	}
	return newContentInfo(c), nil
}

// Encrypt creates EnvelopedData over data for every recipient. cipher is
// an OpenSSL cipher name; empty selects DefaultCipher.
func Encrypt(recipients []*x509.Certificate, data []byte, cipher string, flags Flags) (*ContentInfo, error) {
	if len(recipients) == 0 {
		return nil, errors.New("cms: encrypt: no recipients")
	}
	if err := flags.check(); err != nil {
		return nil, err
	}
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	if cipher == "" {
		cipher = DefaultCipher
	}

	ptrs, releaseAll, err := x509.BorrowAll(recipients)
	defer releaseAll()
	if err != nil {
		return nil, err
	}

	openssl.Logger().Debug(context.Background(), "cms encrypt",
		"bytes", len(data),
		"recipients", len(ptrs),
		"cipher", cipher,
	)
	c, err := backend.CMSEncrypt(ptrs, data, cipher, uint32(flags))
	if err != nil {
		return nil, fmt.Errorf("cms: encrypt: %w", err)
	}
	return newContentInfo(c), nil
}

func (ci *ContentInfo) ptr() (backend.CMS, func(), error) {
	if ci == nil {
		return nil, func() {}, openssl.ErrClosed
	}
	return ci.h.Borrow()
}

// mut borrows for CMS_verify and CMS_decrypt, which write signer and key
// state into the structure.
func (ci *ContentInfo) mut() (backend.CMS, func(), error) {
	if ci == nil {
		return nil, func() {}, openssl.ErrClosed
	}
	return ci.h.BorrowExclusive()
}

// Close frees the structure. It is safe to call Close multiple times.
func (ci *ContentInfo) Close() error {
	if ci == nil {
		return nil
	}
	ci.h.Release()
	return nil
}

// Decrypt decrypts EnvelopedData with the recipient's private key and
// certificate. A nil cert behaves like DecryptWithoutCert.
func (ci *ContentInfo) Decrypt(key *pkey.PKey, cert *x509.Certificate) ([]byte, error) {
	if cert == nil {
		return ci.DecryptWithoutCert(key)
	}
	c, release, err := ci.mut()
	defer release()
	if err != nil {
		return nil, err
	}
	k, releaseKey, err := key.PrivatePtr()
	defer releaseKey()
	if err != nil {
		return nil, err
	}
	x, releaseCert, err := cert.Ptr()
	defer releaseCert()
	if err != nil {
		return nil, err
	}

	out, err := backend.CMSDecrypt(c, k, x, 0)
	if err != nil {
		return nil, fmt.Errorf("cms: decrypt: %w", err)
	}
	return out, nil
}

// DecryptWithoutCert decrypts EnvelopedData by trying key against every
// recipient. It is slower than Decrypt and cannot tell a wrong key from
// corrupt content.
func (ci *ContentInfo) DecryptWithoutCert(key *pkey.PKey) ([]byte, error) {
	c, release, err := ci.mut()
	defer release()
	if err != nil {
		return nil, err
	}
	k, releaseKey, err := key.PrivatePtr()
	defer releaseKey()
	if err != nil {
		return nil, err
	}

	out, err := backend.CMSDecrypt(c, k, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("cms: decrypt: %w", err)
	}
	return out, nil
}

// Verify checks the signatures of SignedData and returns the signed
// content. certs are extra candidate signer certificates. store validates
// the signer chains and may be nil only when flags include NoVerify.
// detached is the external content for detached signatures.
func (ci *ContentInfo) Verify(certs []*x509.Certificate, store *x509.Store, detached []byte, flags Flags) ([]byte, error) {
	if err := flags.check(); err != nil {
		return nil, err
	}
	c, release, err := ci.mut()
	defer release()
	if err != nil {
		return nil, err
	}

	var st backend.Store
	if store != nil {
		s, releaseStore, err := store.Ptr()
		defer releaseStore()
		if err != nil {
			return nil, err
		}
		st = s
	} else if flags&NoVerify == 0 {
		return nil, errors.New("cms: verify: a store is required unless NoVerify is set")
	}

	ptrs, releaseAll, err := x509.BorrowAll(certs)
	defer releaseAll()
	if err != nil {
		return nil, err
	}

	out, err := backend.CMSVerify(c, ptrs, st, detached, uint32(flags))
	if err != nil {
		return nil, fmt.Errorf("cms: verify: %w", err)
	}
	return out, nil
}

// ToDER encodes the structure as DER.
func (ci *ContentInfo) ToDER() ([]byte, error) {
	c, release, err := ci.ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.CMSToDER(c)
	if err != nil {
		return nil, fmt.Errorf("cms: encode DER: %w", err)
	}
	return out, nil
}

// ToPEM encodes the structure as a "CMS" PEM block.
func (ci *ContentInfo) ToPEM() ([]byte, error) {
	c, release, err := ci.ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.CMSToPEM(c)
	if err != nil {
		return nil, fmt.Errorf("cms: encode PEM: %w", err)
	}
	return out, nil
}

// ToSMIME writes an SMIME message. For a detached signature pass the
// signed content as data together with the Detached flag to get a
// multipart/signed message; otherwise data may be nil.
func (ci *ContentInfo) ToSMIME(data []byte, flags Flags) ([]byte, error) {
	if err := flags.check(); err != nil {
		return nil, err
	}
	c, release, err := ci.ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.CMSToSMIME(c, data, uint32(flags))
	if err != nil {
		return nil, fmt.Errorf("cms: encode SMIME: %w", err)
	}
	return out, nil
}

// ContentType returns the short name of the outer content type, for
// example "pkcs7-signedData".
func (ci *ContentInfo) ContentType() (string, error) {
	c, release, err := ci.ptr()
	defer release()
	if err != nil {
		return "", err
	}
	return backend.CMSContentType(c), nil
}
