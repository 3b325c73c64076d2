package openssl

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapperVersion(t *testing.T) {
	if got := WrapperVersion(); got != Version {
		t.Fatalf("expected %q, got %q", Version, got)
	}
}

func TestZeroizeBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	ZeroizeBytes(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not cleared: %d", i, v)
		}
	}
	ZeroizeBytes(nil)
}

func TestIsErrorStack(t *testing.T) {
	stack := &ErrorStack{Op: "d2i_X509", Errors: []Error{{Library: "asn1 encoding routines", Reason: "too long"}}}
	wrapped := fmt.Errorf("x509: parse DER: %w", stack)

	got, ok := IsErrorStack(wrapped)
	if !ok || got != stack {
		t.Fatalf("expected wrapped stack, got %v, %v", got, ok)
	}
	if _, ok := IsErrorStack(errors.New("plain")); ok {
		t.Fatal("plain error reported as stack")
	}
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("expected default logger")
	}
}
