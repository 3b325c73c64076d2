//go:build cgo && !windows

package bn_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/openssl-go/pkg/openssl/dsa"
)

func TestRefAccessors(t *testing.T) {
	k, err := dsa.Generate(1024)
	require.NoError(t, err)
	defer k.Close()

	g := k.G()
	require.NotNil(t, g)

	n, err := g.NumBits()
	require.NoError(t, err)
	b, err := g.Bytes()
	require.NoError(t, err)
	assert.Equal(t, (n+7)/8, len(b))

	v, err := g.BigInt()
	require.NoError(t, err)
	assert.Zero(t, new(big.Int).SetBytes(b).Cmp(v))

	dec, err := g.Decimal()
	require.NoError(t, err)
	assert.Equal(t, v.String(), dec)
	assert.Equal(t, dec, g.String())
}
