// Package x509 wraps OpenSSL certificates (X509) and certificate stores
// (X509_STORE).
//
// A Certificate owns one reference on its native X509. Clone takes a
// second reference for an independent owner.
//
// Stores are assembled with a StoreBuilder and frozen with Build, which
// moves the native store into an immutable Store and consumes the
// builder:
//
//	b, err := x509.NewStoreBuilder()
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//	if err := b.AddCert(ca); err != nil {
//	    return err
//	}
//	store, err := b.Build()
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
// A StoreBuilder must be used from one goroutine at a time. A Store may be
// shared freely; its Verify and Certificates methods only read the store.
package x509
