// Package cms wraps OpenSSL CMS_ContentInfo structures: SignedData and
// EnvelopedData in DER, PEM and SMIME form.
//
// Signing needs a certificate from the x509 package and a private key from
// the pkey package:
//
//	ci, err := cms.Sign(cert, key, nil, data, cms.Binary)
//	if err != nil {
//		return err
//	}
//	defer ci.Close()
//	der, err := ci.ToDER()
//
// Every ContentInfo must be closed. Encoding methods may run concurrently;
// Verify and Decrypt are serialized per ContentInfo. Close waits for all of
// them.
package cms
