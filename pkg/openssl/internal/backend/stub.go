//go:build !cgo || windows

package backend

import "unsafe"

// Stub implementations for non-CGO builds or Windows.
// These allow the package to compile but return ErrNotBuilt when called.

type (
	BigNum = unsafe.Pointer
	DSA    = unsafe.Pointer
	X509   = unsafe.Pointer
	PKey   = unsafe.Pointer
	CMS    = unsafe.Pointer
	Store  = unsafe.Pointer
)

func Init(bool) error { return ErrNotBuilt }
func Version() string { return "" }
func VersionNumber() uint64 { return 0 }

func BigNumBits(BigNum) int { return 0 }
func BigNumBytes(BigNum) []byte { return nil }
func BigNumDecimal(BigNum) (string, error) { return "", ErrNotBuilt }

func DSAFree(DSA) {}
func DSAGenerate(int) (DSA, error) { return nil, ErrNotBuilt }
func DSAP(DSA) BigNum { return nil }
func DSAQ(DSA) BigNum { return nil }
func DSAG(DSA) BigNum { return nil }
func DSAHasPublicKey(DSA) bool { return false }
func DSAHasPrivateKey(DSA) bool { return false }
func DSASize(DSA) int { return 0 }
func DSAPrivateKeyFromPEM([]byte, []byte) (DSA, error) { return nil, ErrNotBuilt }
func DSAPublicKeyFromPEM([]byte) (DSA, error) { return nil, ErrNotBuilt }
func DSAPrivateKeyFromDER([]byte) (DSA, error) { return nil, ErrNotBuilt }
func DSAPublicKeyFromDER([]byte) (DSA, error) { return nil, ErrNotBuilt }
func DSAPrivateKeyToPEM(DSA, string, []byte) ([]byte, error) {
	return nil, ErrNotBuilt
}
func DSAPublicKeyToPEM(DSA) ([]byte, error) { return nil, ErrNotBuilt }
func DSAPrivateKeyToDER(DSA) ([]byte, error) { return nil, ErrNotBuilt }
func DSAPublicKeyToDER(DSA) ([]byte, error) { return nil, ErrNotBuilt }

func X509Free(X509) {}
func X509UpRef(X509) (X509, error) { return nil, ErrNotBuilt }
func X509FromPEM([]byte) (X509, error) { return nil, ErrNotBuilt }
func X509FromDER([]byte) (X509, error) { return nil, ErrNotBuilt }
func X509ToPEM(X509) ([]byte, error) { return nil, ErrNotBuilt }
func X509ToDER(X509) ([]byte, error) { return nil, ErrNotBuilt }
func X509Subject(X509) (string, error) { return "", ErrNotBuilt }
func X509SubjectHash(X509) uint32 { return 0 }

func PKeyFree(PKey) {}
func PrivateKeyFromPEM([]byte, []byte) (PKey, error) { return nil, ErrNotBuilt }
func PublicKeyFromPEM([]byte) (PKey, error) { return nil, ErrNotBuilt }
func PrivateKeyFromDER([]byte) (PKey, error) { return nil, ErrNotBuilt }
func PublicKeyFromDER([]byte) (PKey, error) { return nil, ErrNotBuilt }
func PKeyFromDSA(DSA) (PKey, error) { return nil, ErrNotBuilt }
func PKeyType(PKey) string { return "UNDEF" }
func PKeyBits(PKey) int { return 0 }
func PrivateKeyToPEM(PKey) ([]byte, error) { return nil, ErrNotBuilt }
func PublicKeyToPEM(PKey) ([]byte, error) { return nil, ErrNotBuilt }
func PublicKeyToDER(PKey) ([]byte, error) { return nil, ErrNotBuilt }

func CMSFree(CMS) {}
func CMSReadSMIME([]byte) (CMS, error) { return nil, ErrNotBuilt }
func CMSFromDER([]byte) (CMS, error) { return nil, ErrNotBuilt }
func CMSFromPEM([]byte) (CMS, error) { return nil, ErrNotBuilt }
func CMSToDER(CMS) ([]byte, error) { return nil, ErrNotBuilt }
func CMSToPEM(CMS) ([]byte, error) { return nil, ErrNotBuilt }
func CMSToSMIME(CMS, []byte, uint32) ([]byte, error) { return nil, ErrNotBuilt }
func CMSSign(X509, PKey, []X509, []byte, uint32) (CMS, error) {
	return nil, ErrNotBuilt
}
func CMSEncrypt([]X509, []byte, string, uint32) (CMS, error) { return nil, ErrNotBuilt }
func CMSDecrypt(CMS, PKey, X509, uint32) ([]byte, error) { return nil, ErrNotBuilt }
func CMSVerify(CMS, []X509, Store, []byte, uint32) ([]byte, error) {
	return nil, ErrNotBuilt
}
func CMSContentType(CMS) string { return "UNDEF" }

func StoreNew() (Store, error) { return nil, ErrNotBuilt }
func StoreFree(Store) {}
func StoreAddCert(Store, X509) error { return ErrNotBuilt }
func StoreSetDefaultPaths(Store) error { return ErrNotBuilt }
func StoreLoadLocations(Store, string, string) error { return ErrNotBuilt }
func DefaultCertPaths() (file, dir, fileEnv, dirEnv string) {
	return "", "", "SSL_CERT_FILE", "SSL_CERT_DIR"
}
func StoreVerify(Store, X509, []X509) (*VerifyResult, error) { return nil, ErrNotBuilt }
func StoreCertificates(Store) ([]X509, error) { return nil, ErrNotBuilt }
