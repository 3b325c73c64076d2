//go:build !cgo || windows

package openssl

import (
	"errors"
	"testing"
)

func TestInitNotBuilt(t *testing.T) {
	if err := EnsureInit(); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
	if got := LibraryVersion(); got != "unavailable" {
		t.Fatalf("expected unavailable, got %q", got)
	}
}
