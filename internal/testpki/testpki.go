// Package testpki builds a small certificate hierarchy for tests: a root
// CA, an intermediate CA and an S/MIME leaf issued by the intermediate.
// Everything is generated with crypto/x509 at run time.
package testpki

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Identity is one certificate with its key in every encoding the tests use.
type Identity struct {
	Key     *rsa.PrivateKey
	Cert    *x509.Certificate
	CertPEM []byte
	CertDER []byte
	// KeyPEM is a PKCS#8 "PRIVATE KEY" block.
	KeyPEM []byte
	KeyDER []byte
}

// PKI is the generated hierarchy.
type PKI struct {
	Root         *Identity
	Intermediate *Identity
	Leaf         *Identity
}

var (
	once   sync.Once
	shared *PKI
	genErr error
)

// Get returns a hierarchy shared by all tests in the binary.
func Get(tb testing.TB) *PKI {
	tb.Helper()
	once.Do(func() {
		shared, genErr = generate()
	})
	if genErr != nil {
		tb.Fatalf("testpki: %v", genErr)
	}
	return shared
}

// NewLeaf issues another S/MIME leaf from the intermediate of p.
func (p *PKI) NewLeaf(tb testing.TB, cn string) *Identity {
	tb.Helper()
	id, err := issue(leafTemplate(cn), p.Intermediate)
	if err != nil {
		tb.Fatalf("testpki: issue %s: %v", cn, err)
	}
	return id
}

func generate() (*PKI, error) {
	root, err := issue(caTemplate("Test Root CA", 1), nil)
	if err != nil {
		return nil, err
	}
	inter, err := issue(caTemplate("Test Intermediate CA", 0), root)
	if err != nil {
		return nil, err
	}
	leaf, err := issue(leafTemplate("alice@example.com"), inter)
	if err != nil {
		return nil, err
	}
	return &PKI{Root: root, Intermediate: inter, Leaf: leaf}, nil
}

var serial atomic.Int64

func nextSerial() *big.Int {
	return big.NewInt(serial.Add(1))
}

func caTemplate(cn string, pathLen int) *x509.Certificate {
	return &x509.Certificate{
		Subject:               pkix.Name{CommonName: cn, Organization: []string{"openssl-go"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLen:            pathLen,
		MaxPathLenZero:        pathLen == 0,
	}
}

func leafTemplate(cn string) *x509.Certificate {
	return &x509.Certificate{
		Subject:               pkix.Name{CommonName: cn, Organization: []string{"openssl-go"}},
		EmailAddresses:        []string{cn},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageEmailProtection},
		BasicConstraintsValid: true,
	}
}

// issue signs tmpl with parent, or self-signs when parent is nil.
func issue(tmpl *x509.Certificate, parent *Identity) (*Identity, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	tmpl.SerialNumber = nextSerial()

	signer, signerKey := tmpl, key
	if parent != nil {
		signer, signerKey = parent.Cert, parent.Key
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, signer, &key.PublicKey, signerKey)
	if err != nil {
		return nil, err
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}
	return &Identity{
		Key:     key,
		Cert:    cert,
		CertDER: der,
		CertPEM: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		KeyDER:  keyDER,
		KeyPEM:  pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}),
	}, nil
}
