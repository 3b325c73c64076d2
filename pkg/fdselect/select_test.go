//go:build unix

package fdselect

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	var s Set
	require.NoError(t, s.Add(FD(3)))
	assert.True(t, s.Contains(FD(3)))
	assert.False(t, s.Contains(FD(4)))
	s.Clear()
	assert.False(t, s.Contains(FD(3)))
	assert.ErrorIs(t, s.Add(FD(uintptr(setSize))), ErrSetFull)
	assert.False(t, s.Contains(FD(uintptr(setSize))))
}

func TestSelectMaxOutOfRange(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var guarded struct {
		read  Set
		guard [512]byte
	}
	for i := range guarded.guard {
		guarded.guard[i] = 0xff
	}
	require.NoError(t, guarded.read.Add(r))

	for _, fd := range []uintptr{uintptr(setSize), uintptr(setSize) + 1000} {
		_, err = Select(FD(fd), &guarded.read, nil, nil, 0)
		assert.ErrorIs(t, err, ErrSetFull, "maxFD %d", fd)
	}
	for i, b := range guarded.guard {
		require.Equal(t, byte(0xff), b, "guard byte %d", i)
	}
	assert.True(t, guarded.read.Contains(r))
}

func TestSelectPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var read Set
	require.NoError(t, read.Add(r))
	ready, err := Select(r, &read, nil, nil, 20*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.False(t, read.Contains(r))

	_, err = w.Write([]byte("x"))
	require.NoError(t, err)

	read.Clear()
	require.NoError(t, read.Add(r))
	ready, err = Select(r, &read, nil, nil, time.Second)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.True(t, read.Contains(r))
}

func TestSelectWritable(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var write Set
	require.NoError(t, write.Add(w))
	ready, err := Select(w, nil, &write, nil, 0)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.True(t, write.Contains(w))
}

func TestSelectNilMax(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	_, err = w.Write([]byte("x"))
	require.NoError(t, err)

	var read Set
	require.NoError(t, read.Add(r))
	ready, err := Select(nil, &read, nil, nil, time.Second)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestFromConn(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- c
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer client.Close()
	server, ok := <-accepted
	require.True(t, ok)
	defer server.Close()

	fd, err := FromConn(server.(*net.TCPConn))
	require.NoError(t, err)

	var read Set
	require.NoError(t, read.Add(fd))
	ready, err := Select(fd, &read, nil, nil, 20*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ready)

	_, err = client.Write([]byte("ping"))
	require.NoError(t, err)

	read.Clear()
	require.NoError(t, read.Add(fd))
	ready, err = Select(fd, &read, nil, nil, 2*time.Second)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.True(t, read.Contains(fd))
}
