package x509

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/backend"
	"github.com/coinbase/openssl-go/pkg/openssl/internal/handle"
)

// ErrConsumed is returned by StoreBuilder methods after Build.
var ErrConsumed = errors.New("x509: store builder already built")

// VerifyError reports a certificate chain rejected by the store.
type VerifyError struct {
	// Code is the X509_V_ERR_* value.
	Code int
	// Depth is the chain position of the offending certificate; 0 is the
	// leaf.
	Depth int
	// Reason is OpenSSL's description of Code.
	Reason string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("x509: certificate verify failed at depth %d: %s (code %d)", e.Depth, e.Reason, e.Code)
}

// StoreBuilder assembles a certificate store. It is not safe for concurrent
// use.
type StoreBuilder struct {
	h *handle.Owned[backend.Store]
}

// NewStoreBuilder returns a builder for an initially empty store.
func NewStoreBuilder() (*StoreBuilder, error) {
	if err := openssl.EnsureInit(); err != nil {
		return nil, err
	}
	s, err := backend.StoreNew()
	if err != nil {
		return nil, fmt.Errorf("x509: new store: %w", err)
	}
	return &StoreBuilder{h: handle.New(s, backend.StoreFree)}, nil
}

func (b *StoreBuilder) borrow() (backend.Store, func(), error) {
	if b == nil {
		return nil, func() {}, ErrConsumed
	}
	s, release, err := b.h.Borrow()
	if errors.Is(err, handle.ErrClosed) {
		return nil, release, ErrConsumed
	}
	return s, release, err
}

// AddCert adds cert to the store. The store keeps its own reference, so
// the caller still owns cert and must close it as usual.
func (b *StoreBuilder) AddCert(cert *Certificate) error {
	s, release, err := b.borrow()
	defer release()
	if err != nil {
		return err
	}
	x, releaseCert, err := cert.Ptr()
	defer releaseCert()
	if err != nil {
		return err
	}
	if err := backend.StoreAddCert(s, x); err != nil {
		return fmt.Errorf("x509: add certificate: %w", err)
	}
	return nil
}

// SetDefaultPaths loads certificates from their default locations. These
// are read from the SSL_CERT_FILE and SSL_CERT_DIR environment variables if
// present, or the defaults chosen when OpenSSL was built otherwise.
func (b *StoreBuilder) SetDefaultPaths() error {
	s, release, err := b.borrow()
	defer release()
	if err != nil {
		return err
	}

	file, dir, fileEnv, dirEnv := backend.DefaultCertPaths()
	if v := os.Getenv(fileEnv); v != "" {
		file = v
	}
	if v := os.Getenv(dirEnv); v != "" {
		dir = v
	}
	openssl.Logger().Debug(context.Background(), "loading default trust locations", "file", file, "dir", dir)

	if err := backend.StoreSetDefaultPaths(s); err != nil {
		return fmt.Errorf("x509: set default paths: %w", err)
	}
	return nil
}

// LoadLocations loads the PEM bundle at file and registers dir as a hashed
// certificate directory. Either may be empty, but not both.
func (b *StoreBuilder) LoadLocations(file, dir string) error {
	if file == "" && dir == "" {
		return errors.New("x509: load locations: file and dir are both empty")
	}
	s, release, err := b.borrow()
	defer release()
	if err != nil {
		return err
	}
	if err := backend.StoreLoadLocations(s, file, dir); err != nil {
		return fmt.Errorf("x509: load locations: %w", err)
	}
	openssl.Logger().Debug(context.Background(), "loaded trust locations", "file", file, "dir", dir)
	return nil
}

// Build freezes the builder into a Store. The builder is consumed: every
// later call on it returns ErrConsumed.
func (b *StoreBuilder) Build() (*Store, error) {
	if b == nil {
		return nil, ErrConsumed
	}
	s, err := b.h.Take()
	if err != nil {
		return nil, ErrConsumed
	}
	return &Store{h: handle.New(s, backend.StoreFree)}, nil
}

// Close releases the builder's store if Build was never called.
func (b *StoreBuilder) Close() error {
	if b == nil {
		return nil
	}
	b.h.Release()
	return nil
}

// Store is an immutable certificate store used for chain validation.
type Store struct {
	h *handle.Owned[backend.Store]
}

// Ptr borrows the native pointer for use by sibling adapter packages. The
// returned release func must be called once the native call completes.
func (s *Store) Ptr() (backend.Store, func(), error) {
	if s == nil {
		return nil, func() {}, openssl.ErrClosed
	}
	return s.h.Borrow()
}

// Close releases the store. It is safe to call Close multiple times.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.h.Release()
	return nil
}

// Verify validates the chain of cert against the store, using untrusted as
// candidate intermediates. A rejected chain returns a *VerifyError.
func (s *Store) Verify(cert *Certificate, untrusted []*Certificate) error {
	st, release, err := s.Ptr()
	defer release()
	if err != nil {
		return err
	}
	x, releaseCert, err := cert.Ptr()
	defer releaseCert()
	if err != nil {
		return err
	}

	extra := make([]*Certificate, 0, len(untrusted))
	for _, u := range untrusted {
		if u != cert {
			extra = append(extra, u)
		}
	}
	ptrs, releaseAll, err := BorrowAll(extra)
	defer releaseAll()
	if err != nil {
		return err
	}

	res, err := backend.StoreVerify(st, x, ptrs)
	if err != nil {
		return fmt.Errorf("x509: verify: %w", err)
	}
	if res != nil {
		return &VerifyError{Code: res.Code, Depth: res.Depth, Reason: res.Reason}
	}
	return nil
}

// Certificates returns owned copies of the certificates loaded into the
// store. Certificates reachable only through a lazily-read hashed directory
// are not listed. The caller must close the returned certificates.
func (s *Store) Certificates() ([]*Certificate, error) {
	st, release, err := s.Ptr()
	defer release()
	if err != nil {
		return nil, err
	}
	ptrs, err := backend.StoreCertificates(st)
	if err != nil {
		return nil, fmt.Errorf("x509: list certificates: %w", err)
	}
	out := make([]*Certificate, len(ptrs))
	for i, x := range ptrs {
		out[i] = newCertificate(x)
	}
	return out, nil
}
