//go:build !cgo || windows

package x509_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/x509"
)

func TestNotBuilt(t *testing.T) {
	_, err := x509.NewStoreBuilder()
	assert.ErrorIs(t, err, openssl.ErrNotBuilt)
	_, err = x509.FromDER([]byte{0x30, 0x00})
	assert.ErrorIs(t, err, openssl.ErrNotBuilt)
}
