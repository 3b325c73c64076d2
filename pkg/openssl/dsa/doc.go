// Package dsa wraps OpenSSL DSA keys.
//
// A Key owns one native DSA structure. The domain parameters returned by
// P, Q and G are borrowed bn.Ref views of that structure: they stay valid
// while the Key is open and report openssl.ErrClosed afterwards.
//
//	k, err := dsa.Generate(2048)
//	if err != nil {
//		return err
//	}
//	defer k.Close()
//	pemBytes, err := k.PublicKeyToPEM()
//
// Private PEM import never prompts for a passphrase. Encrypted blocks are
// read with PrivateKeyFromPEMPassphrase.
package dsa
