//go:build cgo && !windows

package openssl

import (
	"strings"
	"testing"
)

func TestLibraryVersion(t *testing.T) {
	if err := EnsureInit(); err != nil {
		t.Fatalf("init: %v", err)
	}
	v := LibraryVersion()
	if !strings.HasPrefix(v, "OpenSSL") && !strings.HasPrefix(v, "LibreSSL") {
		t.Fatalf("unexpected version string %q", v)
	}
	if n := LibraryVersionNumber(); n < 0x10100000 {
		t.Fatalf("linked libcrypto too old: %#x", n)
	}
}

func TestInitIsOnce(t *testing.T) {
	first := EnsureInit()
	if err := Init(Config{LoadConfigFile: true}); err != first {
		t.Fatalf("second Init returned %v, want %v", err, first)
	}
}
