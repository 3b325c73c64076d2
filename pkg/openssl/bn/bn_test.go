package bn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinbase/openssl-go/pkg/openssl"
	"github.com/coinbase/openssl-go/pkg/openssl/bn"
)

func TestNilRef(t *testing.T) {
	var r *bn.Ref
	_, err := r.NumBits()
	assert.ErrorIs(t, err, openssl.ErrClosed)
	_, err = r.BigInt()
	assert.ErrorIs(t, err, openssl.ErrClosed)
	assert.Equal(t, "<closed>", r.String())
	assert.Nil(t, bn.Borrow(nil, nil))
}
