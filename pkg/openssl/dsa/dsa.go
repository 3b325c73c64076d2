package dsa

import (
	"context"
	"fmt"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/bn"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/backend"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/handle"
	"github.com/coinbase/openssl-go/pkg/openssl/logging"
)

// Key is an owned DSA key. Depending on how it was built it holds domain
// parameters only, a public key, or a full key pair.
type Key struct {
	h *handle.Owned[backend.DSA]
}

func newKey(d backend.DSA) *Key {
	return &Key{h: handle.New(d, backend.DSAFree)}
}

// MaxBits is the largest prime length OpenSSL accepts for DSA
// (OPENSSL_DSA_MAX_MODULUS_BITS).
const MaxBits = 10000

// Generate creates domain parameters with a prime p of the given bit
// length and a fresh key pair over them. bits must be in (0, MaxBits].
func Generate(bits int) (*Key, error) {
	if bits <= 0 || bits > MaxBits {
		return nil, fmt.Errorf("dsa: invalid key size %d", bits)
	}
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	openssl.Logger().Debug(context.Background(), "generating DSA key", "bits", bits)
	d, err := backend.DSAGenerate(bits)
	if err != nil {
		return nil, fmt.Errorf("dsa: generate: %w", err)
	}
	return newKey(d), nil
}

// PrivateKeyFromPEM parses an unencrypted "DSA PRIVATE KEY" or PKCS#8
// block. An encrypted block fails with an error instead of prompting.
func PrivateKeyFromPEM(pem []byte) (*Key, error) {
	return PrivateKeyFromPEMPassphrase(pem, nil)
}

// PrivateKeyFromPEMPassphrase parses a private key block, decrypting it
// with passphrase when the block is encrypted.
func PrivateKeyFromPEMPassphrase(pem, passphrase []byte) (*Key, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	d, err := backend.DSAPrivateKeyFromPEM(pem, passphrase)
	if err != nil {
		return nil, fmt.Errorf("dsa: parse private key PEM: %w", err)
	}
	return newKey(d), nil
}

// PublicKeyFromPEM parses a SubjectPublicKeyInfo "PUBLIC KEY" block.
func PublicKeyFromPEM(pem []byte) (*Key, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	d, err := backend.DSAPublicKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("dsa: parse public key PEM: %w", err)
	}
	return newKey(d), nil
}

// PrivateKeyFromDER parses a DER DSAPrivateKey structure.
func PrivateKeyFromDER(der []byte) (*Key, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	d, err := backend.DSAPrivateKeyFromDER(der)
	if err != nil {
		return nil, fmt.Errorf("dsa: parse private key DER: %w", err)
	}
	return newKey(d), nil
}

// PublicKeyFromDER parses a DER DSAPublicKey as written by PublicKeyToDER:
// either the bare public INTEGER or the SEQUENCE that also carries p, q
// and g. P, Q and G are nil for the bare form.
func PublicKeyFromDER(der []byte) (*Key, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	d, err := backend.DSAPublicKeyFromDER(der)
	if err != nil {
		return nil, fmt.Errorf("dsa: parse public key DER: %w", err)
	}
	return newKey(d), nil
}

// Ptr borrows the native DSA for sibling adapter packages. release must
// be called once the native call completes.
func (k *Key) Ptr() (backend.DSA, func(), error) {
	if k == nil {
		return nil, func() {}, openssl.ErrClosed
	}
	return k.h.Borrow()
}

// Close frees the key. Views obtained from P, Q and G fail afterwards.
func (k *Key) Close() error {
	if k == nil {
		return nil
	}
	k.h.Release()
	return nil
}

// P returns the prime modulus, or nil when unset or closed.
func (k *Key) P() *bn.Ref { return k.param(backend.DSAP) }

// Q returns the subgroup order, or nil when unset or closed.
func (k *Key) Q() *bn.Ref { return k.param(backend.DSAQ) }

// G returns the generator, or nil when unset or closed.
func (k *Key) G() *bn.Ref { return k.param(backend.DSAG) }

func (k *Key) param(get func(backend.DSA) backend.BigNum) *bn.Ref {
	d, release, err := k.Ptr()
	defer release()
	if err != nil {
		return nil
	}
	return bn.Borrow(get(d), k.h)
}

// HasPublicKey reports whether the public value is set.
func (k *Key) HasPublicKey() bool {
	d, release, err := k.Ptr()
	defer release()
	return err == nil && backend.DSAHasPublicKey(d)
}

// HasPrivateKey reports whether the private value is set.
func (k *Key) HasPrivateKey() bool {
	d, release, err := k.Ptr()
	defer release()
	return err == nil && backend.DSAHasPrivateKey(d)
}

// Size returns the maximum DER signature size in bytes. ok is false when
// q is unset or the key is closed.
func (k *Key) Size() (n int, ok bool) {
	d, release, err := k.Ptr()
	defer release()
	if err != nil || backend.DSAQ(d) == nil {
		return 0, false
	}
	n = backend.DSASize(d)
	return n, n > 0
}

// PrivateKeyToPEM writes an unencrypted "DSA PRIVATE KEY" block.
func (k *Key) PrivateKeyToPEM() ([]byte, error) {
	return k.PrivateKeyToPEMPassphrase("", nil)
}

// PrivateKeyToPEMPassphrase writes a "DSA PRIVATE KEY" block encrypted
// with the named cipher, for example "aes-256-cbc". An empty cipher
// writes the block unencrypted.
func (k *Key) PrivateKeyToPEMPassphrase(cipher string, passphrase []byte) ([]byte, error) {
	d, release, err := k.private()
	defer release()
	if err != nil {
		return nil, err
	}
	if cipher != "" {
		openssl.Logger().Debug(context.Background(), "encrypting DSA private key",
			"cipher", cipher,
			logging.Redacted("passphrase"),
		)
	}
	out, err := backend.DSAPrivateKeyToPEM(d, cipher, passphrase)
	if err != nil {
		return nil, fmt.Errorf("dsa: encode private key PEM: %w", err)
	}
	return out, nil
}

// PrivateKeyToDER encodes the DSAPrivateKey structure.
func (k *Key) PrivateKeyToDER() ([]byte, error) {
	d, release, err := k.private()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.DSAPrivateKeyToDER(d)
	if err != nil {
		return nil, fmt.Errorf("dsa: encode private key DER: %w", err)
	}
	return out, nil
}

// PublicKeyToPEM writes a SubjectPublicKeyInfo "PUBLIC KEY" block.
func (k *Key) PublicKeyToPEM() ([]byte, error) {
	d, release, err := k.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.DSAPublicKeyToPEM(d)
	if err != nil {
		return nil, fmt.Errorf("dsa: encode public key PEM: %w", err)
	}
	return out, nil
}

// PublicKeyToDER encodes the raw DSAPublicKey value.
func (k *Key) PublicKeyToDER() ([]byte, error) {
	d, release, err := k.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.DSAPublicKeyToDER(d)
	if err != nil {
		return nil, fmt.Errorf("dsa: encode public key DER: %w", err)
	}
	return out, nil
}

func (k *Key) private() (backend.DSA, func(), error) {
	d, release, err := k.Ptr()
	if err != nil {
		return d, release, err
	}
	if !backend.DSAHasPrivateKey(d) {
		release()
		return nil, func() {}, openssl.ErrNotPrivate
	}
	return d, release, nil
}

// String never prints key material.
func (k *Key) String() string { return "DSA" }
