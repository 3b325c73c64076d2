package main

import (
	"fmt"
	"io"
	"os"

	"github.com/coinbase/openssl-go/pkg/openssl/pkey"
	"github.com/coinbase/openssl-go/pkg/openssl/x509"
)

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is "-". Files
// holding secrets are created with mode 0600.
func writeOutput(stdout io.Writer, path string, data []byte, secret bool) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	mode := os.FileMode(0o644)
	if secret {
		mode = 0o600
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// passphraseFromEnv returns the value of the named environment variable,
// or nil when name is empty.
func passphraseFromEnv(name string) ([]byte, error) {
	if name == "" {
		return nil, nil
	}
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil, fmt.Errorf("environment variable %s is not set or empty", name)
	}
	return []byte(v), nil
}

func loadCertificate(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}
	cert, err := x509.FromPEM(data)
	if err != nil {
		if c, derErr := x509.FromDER(data); derErr == nil {
			return c, nil
		}
		return nil, fmt.Errorf("failed to parse certificate %s: %w", path, err)
	}
	return cert, nil
}

func loadCertificates(paths []string) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			x509.CloseAll(certs)
			return nil, fmt.Errorf("failed to read certificate: %w", err)
		}
		bundle, err := x509.ParsePEMBundle(data)
		if err != nil {
			x509.CloseAll(certs)
			return nil, fmt.Errorf("failed to parse %s: %w", p, err)
		}
		certs = append(certs, bundle...)
	}
	return certs, nil
}

func loadPrivateKey(path, passphraseEnv string) (*pkey.PKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	pass, err := passphraseFromEnv(passphraseEnv)
	if err != nil {
		return nil, err
	}
	key, err := pkey.PrivateKeyFromPEMPassphrase(data, pass)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key %s: %w", path, err)
	}
	return key, nil
}

// trustFlags are the trust anchor flags shared by cms verify and store
// verify. They extend the trust section of the config file.
type trustFlags struct {
	caFiles      []string
	caDir        string
	defaultPaths bool
}

func (a *app) buildStore(f trustFlags) (*x509.Store, error) {
	files := append(append([]string{}, a.cfg.Trust.CAFiles...), f.caFiles...)
	dir := a.cfg.Trust.CADir
	if f.caDir != "" {
		dir = f.caDir
	}

	b, err := x509.NewStoreBuilder()
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if f.defaultPaths || a.cfg.Trust.DefaultPaths {
		if err := b.SetDefaultPaths(); err != nil {
			return nil, err
		}
	}
	for _, file := range files {
		if err := b.LoadLocations(file, ""); err != nil {
			return nil, err
		}
	}
	if dir != "" {
		if err := b.LoadLocations("", dir); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
