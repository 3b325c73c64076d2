//go:build cgo && !windows

package x509_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/openssl-go/internal/testpki"
	"github.com/coinbase/openssl-go/pkg/openssl/x509"
)

// X509_V_ERR_UNABLE_TO_GET_ISSUER_CERT_LOCALLY
const errIssuerLocally = 20

func load(t *testing.T, id *testpki.Identity) *x509.Certificate {
	t.Helper()
	c, err := x509.FromDER(id.CertDER)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestStoreVerify(t *testing.T) {
	pki := testpki.Get(t)
	root := load(t, pki.Root)
	inter := load(t, pki.Intermediate)
	leaf := load(t, pki.Leaf)

	b, err := x509.NewStoreBuilder()
	require.NoError(t, err)
	require.NoError(t, b.AddCert(root))
	store, err := b.Build()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Verify(inter, nil))
	require.NoError(t, store.Verify(leaf, []*x509.Certificate{inter, leaf}))

	err = store.Verify(leaf, nil)
	var verr *x509.VerifyError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, errIssuerLocally, verr.Code)
	assert.Equal(t, 0, verr.Depth)
	assert.NotEmpty(t, verr.Reason)

	// The chain error must not leak into the next call.
	require.NoError(t, store.Verify(leaf, []*x509.Certificate{inter}))
}

func TestStoreBuilderConsumed(t *testing.T) {
	pki := testpki.Get(t)
	root := load(t, pki.Root)

	b, err := x509.NewStoreBuilder()
	require.NoError(t, err)
	store, err := b.Build()
	require.NoError(t, err)
	defer store.Close()

	assert.ErrorIs(t, b.AddCert(root), x509.ErrConsumed)
	assert.ErrorIs(t, b.SetDefaultPaths(), x509.ErrConsumed)
	_, err = b.Build()
	assert.ErrorIs(t, err, x509.ErrConsumed)
	require.NoError(t, b.Close())
}

func TestStoreCertificates(t *testing.T) {
	pki := testpki.Get(t)
	root := load(t, pki.Root)

	b, err := x509.NewStoreBuilder()
	require.NoError(t, err)
	require.NoError(t, b.AddCert(root))
	store, err := b.Build()
	require.NoError(t, err)

	certs, err := store.Certificates()
	require.NoError(t, err)
	require.Len(t, certs, 1)

	// Listed certificates are owned independently of the store.
	require.NoError(t, store.Close())
	der, err := certs[0].ToDER()
	require.NoError(t, err)
	assert.Equal(t, pki.Root.CertDER, der)
	x509.CloseAll(certs)

	_, err = store.Certificates()
	require.Error(t, err)
}

func TestStoreLoadLocations(t *testing.T) {
	pki := testpki.Get(t)
	leaf := load(t, pki.Leaf)
	inter := load(t, pki.Intermediate)

	file := filepath.Join(t.TempDir(), "roots.pem")
	require.NoError(t, os.WriteFile(file, pki.Root.CertPEM, 0o600))

	b, err := x509.NewStoreBuilder()
	require.NoError(t, err)
	require.Error(t, b.LoadLocations("", ""))
	require.NoError(t, b.LoadLocations(file, ""))
	require.Error(t, b.LoadLocations(filepath.Join(t.TempDir(), "missing.pem"), ""))
	store, err := b.Build()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Verify(leaf, []*x509.Certificate{inter}))
}

func TestStoreSetDefaultPaths(t *testing.T) {
	pki := testpki.Get(t)
	leaf := load(t, pki.Leaf)
	inter := load(t, pki.Intermediate)

	dir := t.TempDir()
	file := filepath.Join(dir, "roots.pem")
	require.NoError(t, os.WriteFile(file, pki.Root.CertPEM, 0o600))
	t.Setenv("SSL_CERT_FILE", file)
	t.Setenv("SSL_CERT_DIR", t.TempDir())

	b, err := x509.NewStoreBuilder()
	require.NoError(t, err)
	require.NoError(t, b.SetDefaultPaths())
	store, err := b.Build()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Verify(leaf, []*x509.Certificate{inter}))
}

func TestStoreHashedDirectoryConcurrent(t *testing.T) {
	pki := testpki.Get(t)
	root := load(t, pki.Root)
	inter := load(t, pki.Intermediate)
	leaf := load(t, pki.Leaf)

	hash, err := root.SubjectHash()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, x509.HashedName(hash, 0)), pki.Root.CertPEM, 0o600))

	b, err := x509.NewStoreBuilder()
	require.NoError(t, err)
	require.NoError(t, b.LoadLocations("", dir))
	store, err := b.Build()
	require.NoError(t, err)
	defer store.Close()

	// The directory is read lazily, so nothing is listed before a lookup.
	certs, err := store.Certificates()
	require.NoError(t, err)
	assert.Empty(t, certs)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.NoError(t, store.Verify(leaf, []*x509.Certificate{inter}))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				certs, err := store.Certificates()
				if assert.NoError(t, err) {
					x509.CloseAll(certs)
				}
			}
		}()
	}
	wg.Wait()

	certs, err = store.Certificates()
	require.NoError(t, err)
	defer x509.CloseAll(certs)
	require.NotEmpty(t, certs)
	der, err := certs[0].ToDER()
	require.NoError(t, err)
	assert.Equal(t, pki.Root.CertDER, der)
}
