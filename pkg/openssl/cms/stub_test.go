//go:build !cgo || windows

package cms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/cms"
)

func TestNotBuilt(t *testing.T) {
	_, err := cms.FromDER([]byte{0x30, 0x00})
	assert.ErrorIs(t, err, openssl.ErrNotBuilt)
}
