//go:build cgo && !windows

package x509_test

import (
	"bytes"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/openssl-go/internal/testpki"
	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/x509"
)

func TestCertificateEncodings(t *testing.T) {
	pki := testpki.Get(t)

	c, err := x509.FromPEM(pki.Leaf.CertPEM)
	require.NoError(t, err)
	defer c.Close()

	der, err := c.ToDER()
	require.NoError(t, err)
	assert.Equal(t, pki.Leaf.CertDER, der)

	out, err := c.ToPEM()
	require.NoError(t, err)
	block, _ := pem.Decode(out)
	require.NotNil(t, block)
	assert.Equal(t, "CERTIFICATE", block.Type)
	assert.Equal(t, pki.Leaf.CertDER, block.Bytes)

	fromDER, err := x509.FromDER(pki.Leaf.CertDER)
	require.NoError(t, err)
	defer fromDER.Close()
	again, err := fromDER.ToDER()
	require.NoError(t, err)
	assert.Equal(t, der, again)

	std, err := c.Certificate()
	require.NoError(t, err)
	assert.True(t, std.Equal(pki.Leaf.Cert))
}

func TestFromCertificate(t *testing.T) {
	pki := testpki.Get(t)

	c, err := x509.FromCertificate(pki.Root.Cert)
	require.NoError(t, err)
	defer c.Close()

	subject, err := c.Subject()
	require.NoError(t, err)
	assert.Contains(t, subject, "CN=Test Root CA")
	assert.Contains(t, subject, "O=openssl-go")

	_, err = x509.FromCertificate(nil)
	require.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	_, err := x509.FromPEM([]byte("not a certificate"))
	require.Error(t, err)
	_, ok := openssl.IsErrorStack(err)
	assert.True(t, ok)

	_, err = x509.FromDER(nil)
	require.Error(t, err)
	_, err = x509.FromDER([]byte{0x30, 0x00})
	require.Error(t, err)
}

func TestParsePEMBundle(t *testing.T) {
	pki := testpki.Get(t)

	var bundle bytes.Buffer
	bundle.Write(pki.Root.CertPEM)
	bundle.Write(pki.Leaf.KeyPEM)
	bundle.Write(pki.Intermediate.CertPEM)

	certs, err := x509.ParsePEMBundle(bundle.Bytes())
	require.NoError(t, err)
	defer x509.CloseAll(certs)
	require.Len(t, certs, 2)

	der, err := certs[1].ToDER()
	require.NoError(t, err)
	assert.Equal(t, pki.Intermediate.CertDER, der)
}

func TestCloneOutlivesOriginal(t *testing.T) {
	pki := testpki.Get(t)

	c, err := x509.FromDER(pki.Leaf.CertDER)
	require.NoError(t, err)
	clone, err := c.Clone()
	require.NoError(t, err)
	defer clone.Close()

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	_, err = c.ToDER()
	assert.ErrorIs(t, err, openssl.ErrClosed)
	_, err = c.Clone()
	assert.ErrorIs(t, err, openssl.ErrClosed)

	der, err := clone.ToDER()
	require.NoError(t, err)
	assert.Equal(t, pki.Leaf.CertDER, der)
}

func TestBorrowAll(t *testing.T) {
	pki := testpki.Get(t)

	c, err := x509.FromDER(pki.Leaf.CertDER)
	require.NoError(t, err)
	defer c.Close()

	ptrs, release, err := x509.BorrowAll([]*x509.Certificate{c, c})
	require.NoError(t, err)
	assert.Len(t, ptrs, 1)
	release()

	_, release, err = x509.BorrowAll([]*x509.Certificate{c, nil})
	release()
	require.Error(t, err)
}

func TestHashedName(t *testing.T) {
	assert.Equal(t, "00000000.0", x509.HashedName(0, 0))
	assert.Equal(t, "0000abcd.1", x509.HashedName(0xabcd, 1))
	assert.Equal(t, "ffffffff.12", x509.HashedName(0xffffffff, 12))
}

func TestSubjectHashStable(t *testing.T) {
	pki := testpki.Get(t)
	a, err := x509.FromDER(pki.Root.CertDER)
	require.NoError(t, err)
	defer a.Close()
	b, err := x509.FromPEM(pki.Root.CertPEM)
	require.NoError(t, err)
	defer b.Close()
	c, err := x509.FromDER(pki.Leaf.CertDER)
	require.NoError(t, err)
	defer c.Close()

	ha, err := a.SubjectHash()
	require.NoError(t, err)
	hb, err := b.SubjectHash()
	require.NoError(t, err)
	hc, err := c.SubjectHash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)

	require.NoError(t, a.Close())
	_, err = a.SubjectHash()
	assert.ErrorIs(t, err, openssl.ErrClosed)
}
