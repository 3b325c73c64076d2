package x509

import (
	stdx509 "crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/backend"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/handle"
)

// Certificate is an owned OpenSSL X509 certificate.
type Certificate struct {
	h *handle.Owned[backend.X509]
}

func newCertificate(x backend.X509) *Certificate {
	return &Certificate{h: handle.New(x, backend.X509Free)}
}

// FromPEM parses the first CERTIFICATE block in data.
func FromPEM(data []byte) (*Certificate, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	x, err := backend.X509FromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("x509: parse PEM: %w", err)
	}
	return newCertificate(x), nil
}

// FromDER parses a DER-encoded certificate.
func FromDER(der []byte) (*Certificate, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	x, err := backend.X509FromDER(der)
	if err != nil {
		return nil, fmt.Errorf("x509: parse DER: %w", err)
	}
	return newCertificate(x), nil
}

// FromCertificate converts a crypto/x509 certificate through its raw DER.
func FromCertificate(c *stdx509.Certificate) (*Certificate, error) {
	if c == nil {
		return nil, errors.New("x509: nil certificate")
	}
	return FromDER(c.Raw)
}

// ParsePEMBundle parses every CERTIFICATE block in data. Other block types
// are skipped. On error, certificates parsed so far are closed.
func ParsePEMBundle(data []byte) ([]*Certificate, error) {
	var certs []*Certificate
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		c, err := FromDER(block.Bytes)
		if err != nil {
			CloseAll(certs)
			return nil, err
		}
		certs = append(certs, c)
	}
	if len(certs) == 0 {
		return nil, errors.New("x509: no CERTIFICATE block found")
	}
	return certs, nil
}

// CloseAll closes every certificate in certs.
func CloseAll(certs []*Certificate) {
	for _, c := range certs {
		_ = c.Close()
	}
}

// Ptr borrows the native pointer for use by sibling adapter packages. The
// returned release func must be called once the native call completes.
func (c *Certificate) Ptr() (backend.X509, func(), error) {
	if c == nil {
		return nil, func() {}, openssl.ErrClosed
	}
	return c.h.Borrow()
}

// Close releases the certificate. It is safe to call Close multiple times.
func (c *Certificate) Close() error {
	if c == nil {
		return nil
	}
	c.h.Release()
	return nil
}

// Clone returns an independent owner of the same native certificate.
func (c *Certificate) Clone() (*Certificate, error) {
	x, release, err := c.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	dup, err := backend.X509UpRef(x)
	if err != nil {
		return nil, fmt.Errorf("x509: clone: %w", err)
	}
	return newCertificate(dup), nil
}

// ToPEM encodes the certificate as a CERTIFICATE block.
func (c *Certificate) ToPEM() ([]byte, error) {
	x, release, err := c.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.X509ToPEM(x)
	if err != nil {
		return nil, fmt.Errorf("x509: encode PEM: %w", err)
	}
	return out, nil
}

// ToDER encodes the certificate as DER.
func (c *Certificate) ToDER() ([]byte, error) {
	x, release, err := c.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	out, err := backend.X509ToDER(x)
	if err != nil {
		return nil, fmt.Errorf("x509: encode DER: %w", err)
	}
	return out, nil
}

// Subject returns the subject name in RFC 2253 form.
func (c *Certificate) Subject() (string, error) {
	x, release, err := c.Ptr()
	defer release()
	if err != nil {
		return "", err
	}
	s, err := backend.X509Subject(x)
	if err != nil {
		return "", fmt.Errorf("x509: subject: %w", err)
	}
	return s, nil
}

// SubjectHash returns OpenSSL's subject name hash. A hashed certificate
// directory stores the certificate as HashedName(hash, 0).
func (c *Certificate) SubjectHash() (uint32, error) {
	x, release, err := c.Ptr()
	defer release()
	if err != nil {
		return 0, err
	}
	return backend.X509SubjectHash(x), nil
}

// HashedName is the file name LoadLocations expects for the n-th
// certificate with the given subject hash in a certificate directory.
func HashedName(hash uint32, n int) string {
	h := strconv.FormatUint(uint64(hash), 16)
	return strings.Repeat("0", 8-len(h)) + h + "." + strconv.Itoa(n)
}

// Certificate parses the native certificate into a crypto/x509 value.
func (c *Certificate) Certificate() (*stdx509.Certificate, error) {
	der, err := c.ToDER()
	if err != nil {
		return nil, err
	}
	return stdx509.ParseCertificate(der)
}

// BorrowAll borrows the native pointers of certs for a single native call.
// Duplicates are skipped so a handle is never read-locked twice by the same
// call. The returned release func is non-nil even on error.
func BorrowAll(certs []*Certificate) ([]backend.X509, func(), error) {
	ptrs := make([]backend.X509, 0, len(certs))
	releases := make([]func(), 0, len(certs))
	releaseAll := func() {
		for _, r := range releases {
			r()
		}
	}
	seen := make(map[*Certificate]struct{}, len(certs))
	for _, c := range certs {
		if c == nil {
			releaseAll()
			return nil, func() {}, errors.New("x509: nil certificate in list")
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		x, release, err := c.Ptr()
		if err != nil {
			release()
			releaseAll()
			return nil, func() {}, err
		}
		ptrs = append(ptrs, x)
		releases = append(releases, release)
	}
	return ptrs, releaseAll, nil
}
