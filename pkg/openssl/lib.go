package openssl

import (
	"context"
	"sync"

	"github.com/coinbase/openssl-go/pkg/openssl/internal/backend"
	"github.com/coinbase/openssl-go/pkg/openssl/logging"
)

var (
	initOnce sync.Once
	initErr  error

	logMu  sync.RWMutex
	logger = logging.New(nil)
)

// Init initializes libcrypto with cfg. Only the first call of Init or
// EnsureInit has an effect; later calls return the first result.
func Init(cfg Config) error {
	initOnce.Do(func() {
		if cfg.Logger != nil {
			SetLogger(cfg.Logger)
		}
		initErr = backend.Init(cfg.LoadConfigFile)
		if initErr != nil {
			Logger().Error(context.Background(), "libcrypto initialization failed", "error", initErr)
			return
		}
		Logger().Debug(context.Background(), "libcrypto initialized",
			"version", LibraryVersion(),
			"load_config", cfg.LoadConfigFile,
		)
	})
	return initErr
}

// EnsureInit initializes libcrypto with the default Config unless Init has
// already run. Every constructor in the adapter packages calls it.
func EnsureInit() error {
	return Init(Config{})
}

// Logger returns the package logger used by the adapters.
func Logger() logging.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// SetLogger replaces the package logger. Nil restores slog.Default().
func SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.New(nil)
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}
