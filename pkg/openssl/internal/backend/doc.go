// Package backend hosts the thin cgo layer that links the Go API to
// OpenSSL's libcrypto. It is the only package in the module that imports
// "C". The real implementation lives behind the `cgo && !windows` build
// constraint; other builds get stubs that report ErrNotBuilt so the rest of
// the repository compiles without a C toolchain.
//
// # Ownership
//
// Functions returning a native pointer (DSA, X509, PKey, CMS, Store) hand
// the caller exactly one reference, to be released with the matching
// *Free function. Functions taking native pointers borrow them for the
// duration of the call only. BigNum values are borrowed views into their
// parent object and must never be freed.
//
// # Errors
//
// Each fallible call runs on a locked OS thread after clearing the OpenSSL
// error queue; on failure the queue is drained into an *ErrorStack.
package backend
