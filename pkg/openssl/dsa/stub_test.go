//go:build !cgo || windows

package dsa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/dsa"
)

func TestGenerateNotBuilt(t *testing.T) {
	_, err := dsa.Generate(1024)
	assert.ErrorIs(t, err, openssl.ErrNotBuilt)
}
