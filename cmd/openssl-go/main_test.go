//go:build cgo && !windows

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/openssl-go/internal/testpki"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type files struct {
	dir     string
	root    string
	inter   string
	leaf    string
	leafKey string
}

func writePKI(t *testing.T) files {
	t.Helper()
	pki := testpki.Get(t)
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, data, 0o600))
		return p
	}
	return files{
		dir:     dir,
		root:    write("root.pem", pki.Root.CertPEM),
		inter:   write("inter.pem", pki.Intermediate.CertPEM),
		leaf:    write("leaf.pem", pki.Leaf.CertPEM),
		leafKey: write("leaf.key", pki.Leaf.KeyPEM),
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "openssl-go:")
	assert.Contains(t, out, "OpenSSL")
}

func TestDSAGenerateInspect(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "dsa.key")
	pub := filepath.Join(dir, "dsa.pub")
	t.Setenv("TEST_DSA_PASS", "s3cret")

	_, err := run(t, "dsa", "generate", "--bits", "1024", "--out", key, "--pubout", pub, "--passphrase-env", "TEST_DSA_PASS")
	require.NoError(t, err)

	info, err := os.Stat(key)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := run(t, "dsa", "inspect", key, "--passphrase-env", "TEST_DSA_PASS")
	require.NoError(t, err)
	assert.Contains(t, out, "p: 1024 bits")
	assert.Contains(t, out, "private key: true")

	out, err = run(t, "dsa", "inspect", pub)
	require.NoError(t, err)
	assert.Contains(t, out, "private key: false")

	_, err = run(t, "dsa", "inspect", key)
	require.Error(t, err)
}

func TestCMSSignVerify(t *testing.T) {
	f := writePKI(t)
	in := filepath.Join(f.dir, "msg.txt")
	require.NoError(t, os.WriteFile(in, []byte("hello\n"), 0o600))
	sig := filepath.Join(f.dir, "msg.eml")
	content := filepath.Join(f.dir, "content.txt")

	_, err := run(t, "cms", "sign", "--cert", f.leaf, "--key", f.leafKey, "--chain", f.inter,
		"--in", in, "--out", sig, "--detached", "--smime")
	require.NoError(t, err)

	out, err := run(t, "cms", "verify", sig, "--smime", "--data", in, "--ca", f.root, "--out", content)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Verification successful")
	got, err := os.ReadFile(content)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))

	_, err = run(t, "cms", "verify", sig, "--smime", "--data", in)
	require.Error(t, err)
}

func TestCMSEncryptDecrypt(t *testing.T) {
	f := writePKI(t)
	in := filepath.Join(f.dir, "secret.txt")
	require.NoError(t, os.WriteFile(in, []byte("top secret"), 0o600))
	enc := filepath.Join(f.dir, "secret.p7m")
	dec := filepath.Join(f.dir, "plain.txt")

	_, err := run(t, "cms", "encrypt", "-r", f.leaf, "--in", in, "--out", enc)
	require.NoError(t, err)
	_, err = run(t, "cms", "decrypt", "--key", f.leafKey, "--cert", f.leaf, "--in", enc, "--out", dec)
	require.NoError(t, err)

	got, err := os.ReadFile(dec)
	require.NoError(t, err)
	assert.Equal(t, "top secret", string(got))
}

func TestStoreVerify(t *testing.T) {
	f := writePKI(t)

	out, err := run(t, "store", "verify", f.leaf, "--ca", f.root, "--untrusted", f.inter)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	_, err = run(t, "store", "verify", f.leaf, "--ca", f.root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to get local issuer certificate")
}

func TestConfigFile(t *testing.T) {
	f := writePKI(t)
	cfgPath := filepath.Join(f.dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("trust:\n  ca_files: ["+f.root+"]\n"), 0o600))

	_, err := run(t, "--config", cfgPath, "store", "verify", f.leaf, "--untrusted", f.inter)
	require.NoError(t, err)

	_, err = run(t, "--log-level", "loud", "version")
	require.Error(t, err)
}
