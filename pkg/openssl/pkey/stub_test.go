//go:build !cgo || windows

package pkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/pkey"
)

func TestNotBuilt(t *testing.T) {
	_, err := pkey.PrivateKeyFromDER([]byte{0x30, 0x00})
	assert.ErrorIs(t, err, openssl.ErrNotBuilt)
}
