package openssl

import "github.com/coinbase/openssl-go/pkg/openssl/internal/backend"

// Version is the wrapper's semantic version, populated at build time via
// ldflags.
var Version = "v0.0.0-in-progress"

// WrapperVersion returns Version.
func WrapperVersion() string {
	return Version
}

// LibraryVersion returns the version string reported by the linked
// libcrypto, or "unavailable" when the bindings are not built.
func LibraryVersion() string {
	if v := backend.Version(); v != "" {
		return v
	}
	return "unavailable"
}

// LibraryVersionNumber returns OpenSSL_version_num of the linked libcrypto,
// or 0 when the bindings are not built.
func LibraryVersionNumber() uint64 {
	return backend.VersionNumber()
}
