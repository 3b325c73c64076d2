// Package internalcheck holds repository policy tests for the openssl
// packages.
//
// # Internal Use Only
//
// The package has no API. Its tests load the module's own sources with
// golang.org/x/tools/go/packages and fail when a policy is broken: cgo
// confined to internal/backend, no hex formatting of secrets, and no ==
// on byte slices.
package internalcheck
