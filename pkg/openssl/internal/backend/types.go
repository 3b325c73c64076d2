package backend

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotBuilt reports that the native bindings were not linked into the
// current binary.
var ErrNotBuilt = errors.New("openssl/internal/backend: native bindings not built")

var errInputTooLarge = errors.New("openssl/internal/backend: input larger than 2 GiB")

// checkInputLen rejects buffers whose length does not fit in a C int.
func checkInputLen(n int) error {
	if n > math.MaxInt32 {
		return errInputTooLarge
	}
	return nil
}

// Error is a single entry of the OpenSSL error queue.
type Error struct {
	Code     uint64
	Library  string
	Reason   string
	Function string
	File     string
	Line     int
	Data     string
}

func (e Error) String() string {
	var b strings.Builder
	code := strings.ToUpper(strconv.FormatUint(e.Code, 16))
	b.WriteString("error:" + strings.Repeat("0", max(0, 8-len(code))) + code)
	if e.Library != "" {
		b.WriteString(":" + e.Library)
	}
	if e.Function != "" {
		b.WriteString(":" + e.Function)
	}
	if e.Reason != "" {
		b.WriteString(":" + e.Reason)
	}
	if e.File != "" {
		fmt.Fprintf(&b, ":%s:%d", e.File, e.Line)
	}
	if e.Data != "" {
		b.WriteString(":" + e.Data)
	}
	return b.String()
}

// ErrorStack is the drained OpenSSL error queue of a failed call. Op names
// the native function that reported the failure.
type ErrorStack struct {
	Op     string
	Errors []Error
}

func (s *ErrorStack) Error() string {
	if s == nil {
		return "openssl: <nil>"
	}
	if len(s.Errors) == 0 {
		return fmt.Sprintf("openssl: %s failed with an empty error queue", s.Op)
	}
	parts := make([]string, len(s.Errors))
	for i, e := range s.Errors {
		parts[i] = e.String()
	}
	return fmt.Sprintf("openssl: %s: %s", s.Op, strings.Join(parts, "; "))
}

// VerifyResult describes a certificate chain rejected by X509_verify_cert.
type VerifyResult struct {
	Code   int
	Depth  int
	Reason string
}
