package openssl

import "github.com/coinbase/openssl-go/pkg/openssl/logging"

// Config expresses the knobs used when initializing libcrypto.
type Config struct {
	// LoadConfigFile makes OpenSSL read its configuration file
	// (OPENSSL_CONF or the build-time default) during initialization.
	LoadConfigFile bool

	// Logger receives debug output from the adapters. Nil selects
	// slog.Default().
	Logger logging.Logger
}
