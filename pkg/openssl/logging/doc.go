// Package logging provides a minimal logging facade for the OpenSSL
// bindings.
//
// The Logger interface wraps the subset of log/slog used by the adapters.
// It is intentionally small so applications can plug in their own
// implementation for testing, redaction, or integration with an existing
// logging system.
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	_ = openssl.Init(openssl.Config{Logger: logging.New(slog.New(handler))})
//
// # Redaction
//
// Adapters never log key material. When an attribute would carry a secret
// (a passphrase, a private key) it is replaced with Redacted:
//
//	logger.Debug(ctx, "private key exported", logging.Redacted("pem"))
//	// Logs: pem="[redacted]"
package logging
