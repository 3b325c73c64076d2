// Package pkey wraps OpenSSL EVP_PKEY handles, the algorithm-independent
// keys consumed by the cms package.
package pkey

import (
	"crypto"
	stdx509 "crypto/x509"
	"fmt"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/dsa"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/backend"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/handle"
)

// PKey is an owned EVP_PKEY. Whether it carries private material is fixed
// at construction.
type PKey struct {
	h       *handle.Owned[backend.PKey]
	private bool
}

func newPKey(k backend.PKey, private bool) *PKey {
	return &PKey{h: handle.New(k, backend.PKeyFree), private: private}
}

// PrivateKeyFromPEM parses an unencrypted private key in PKCS#8 or
// traditional PEM form. Encrypted keys fail instead of prompting.
func PrivateKeyFromPEM(pem []byte) (*PKey, error) {
	return PrivateKeyFromPEMPassphrase(pem, nil)
}

// PrivateKeyFromPEMPassphrase parses a private key PEM block, decrypting it
// with passphrase when it is encrypted.
func PrivateKeyFromPEMPassphrase(pem, passphrase []byte) (*PKey, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	k, err := backend.PrivateKeyFromPEM(pem, passphrase)
	if err != nil {
		return nil, fmt.Errorf("pkey: parse private key PEM: %w", err)
	}
	return newPKey(k, true), nil
}

// PrivateKeyFromDER parses a PKCS#8 or traditional DER private key.
func PrivateKeyFromDER(der []byte) (*PKey, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	k, err := backend.PrivateKeyFromDER(der)
	if err != nil {
		return nil, fmt.Errorf("pkey: parse private key DER: %w", err)
	}
	return newPKey(k, true), nil
}

// PublicKeyFromPEM parses a SubjectPublicKeyInfo PUBLIC KEY block.
func PublicKeyFromPEM(pem []byte) (*PKey, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	k, err := backend.PublicKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("pkey: parse public key PEM: %w", err)
	}
	return newPKey(k, false), nil
}

// PublicKeyFromDER parses a DER SubjectPublicKeyInfo.
func PublicKeyFromDER(der []byte) (*PKey, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	k, err := backend.PublicKeyFromDER(der)
	if err != nil {
		return nil, fmt.Errorf("pkey: parse public key DER: %w", err)
	}
	return newPKey(k, false), nil
}

// FromPrivateKey converts a Go private key (*rsa.PrivateKey,
// *ecdsa.PrivateKey, ed25519.PrivateKey) through its PKCS#8 encoding. The
// intermediate encoding is wiped before returning.
func FromPrivateKey(key crypto.PrivateKey) (*PKey, error) {
	der, err := stdx509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("pkey: marshal PKCS#8: %w", err)
	}
	defer openssl.ZeroizeBytes(der)
	return PrivateKeyFromDER(der)
}

// FromDSA returns an EVP_PKEY sharing the native DSA key of k. The PKey
// holds its own reference, so k and the PKey are closed independently.
func FromDSA(k *dsa.Key) (*PKey, error) {
	d, release, err := k.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	private := backend.DSAHasPrivateKey(d)
	p, err := backend.PKeyFromDSA(d)
	if err != nil {
		return nil, fmt.Errorf("pkey: from DSA: %w", err)
	}
	return newPKey(p, private), nil
}

// Ptr borrows the native pointer for use by sibling adapter packages. The
// returned release func must be called once the native call completes.
func (k *PKey) Ptr() (backend.PKey, func(), error) {
	if k == nil {
		return nil, func() {}, openssl.ErrClosed
	}
	return k.h.Borrow()
}

// PrivatePtr is Ptr for operations that need private key material.
func (k *PKey) PrivatePtr() (backend.PKey, func(), error) {
	if k != nil && !k.private {
		return nil, func() {}, openssl.ErrNotPrivate
	}
	return k.Ptr()
}

// Close releases the key. It is safe to call Close multiple times.
func (k *PKey) Close() error {
	if k == nil {
		return nil
	}
	k.h.Release()
	return nil
}

// IsPrivate reports whether the key carries private material.
func (k *PKey) IsPrivate() bool {
	return k != nil && k.private && k.h.Live()
}

// Type returns the algorithm short name, e.g. "RSA" or "DSA".
func (k *PKey) Type() (string, error) {
	p, release, err := k.Ptr()
	defer release()
	if err != nil {
		return "", err
	}
	return backend.PKeyType(p), nil
}

// Bits returns the key size in bits.
func (k *PKey) Bits() (int, error) {
	p, release, err := k.Ptr()
	defer release()
	if err != nil {
		return 0, err
	}
	return backend.PKeyBits(p), nil
}

// PrivateKeyToPEM writes the key as an unencrypted private key block.
func (k *PKey) PrivateKeyToPEM() ([]byte, error) {
	p, release, err := k.PrivatePtr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.PrivateKeyToPEM(p)
	if err != nil {
		return nil, fmt.Errorf("pkey: encode private key PEM: %w", err)
	}
	return out, nil
}

// PublicKeyToPEM writes the public half as a PUBLIC KEY block.
func (k *PKey) PublicKeyToPEM() ([]byte, error) {
	p, release, err := k.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.PublicKeyToPEM(p)
	if err != nil {
		return nil, fmt.Errorf("pkey: encode public key PEM: %w", err)
	}
	return out, nil
}

// PublicKeyToDER writes the public half as a DER SubjectPublicKeyInfo.
func (k *PKey) PublicKeyToDER() ([]byte, error) {
	p, release, err := k.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.PublicKeyToDER(p)
	if err != nil {
		return nil, fmt.Errorf("pkey: encode public key DER: %w", err)
	}
	return out, nil
}

// PublicKey parses the public half into a crypto.PublicKey.
func (k *PKey) PublicKey() (crypto.PublicKey, error) {
	der, err := k.PublicKeyToDER()
	if err != nil {
		return nil, err
	}
	return stdx509.ParsePKIXPublicKey(der)
}
