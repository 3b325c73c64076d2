// Package openssl is the root of a cgo binding layer over OpenSSL's
// libcrypto. It owns library initialization, the structured error stack
// returned by every native call, and version reporting. The adapters live
// in sub-packages:
//
//   - cms: CMS / SMIME messages (sign, verify, encrypt, decrypt, DER/PEM/SMIME)
//   - dsa: DSA key pairs (generation, parameters, PEM/DER import and export)
//   - x509: certificates and the certificate store builder/store pair
//   - pkey: generic EVP_PKEY handles used by cms
//   - bn: borrowed views of BIGNUM values owned by other handles
//
// Every native object is wrapped by exactly one owning Go value with a
// Close method. Views derived from an owner, such as the DSA parameters,
// fail with ErrClosed once the owner has been closed. A finalizer releases
// leaked handles, but callers should always Close explicitly.
//
// Without cgo, or on Windows, the package compiles against stubs and every
// native operation returns ErrNotBuilt.
package openssl
