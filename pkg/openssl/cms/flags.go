package cms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Flags mirrors the CMS_* option bits accepted by the OpenSSL CMS
// functions. Each function honors only the subset OpenSSL documents for it.
type Flags uint32

const (
	Text               Flags = 0x1
	NoCerts            Flags = 0x2
	NoContentVerify    Flags = 0x4
	NoAttrVerify       Flags = 0x8
	NoSigs                   = NoContentVerify | NoAttrVerify
	NoIntern           Flags = 0x10
	NoSignerCertVerify Flags = 0x20
	NoVerify           Flags = 0x20
	Detached           Flags = 0x40
	Binary             Flags = 0x80
	NoAttr             Flags = 0x100
	NoSmimeCap         Flags = 0x200
	NoOldMimeType      Flags = 0x400
	CRLFEOL            Flags = 0x800
	Stream             Flags = 0x1000
	NoCRL              Flags = 0x2000
	Partial            Flags = 0x4000
	ReuseDigest        Flags = 0x8000
	UseKeyID           Flags = 0x10000
	DebugDecrypt       Flags = 0x20000
	KeyParam           Flags = 0x40000
	ASCIICRLF          Flags = 0x80000
)

// ErrUnsupportedFlags is returned for Stream and Partial. Both leave the
// structure waiting for a finalization step this package does not expose.
var ErrUnsupportedFlags = errors.New("cms: Stream and Partial flags are not supported")

var flagNames = []struct {
	f    Flags
	name string
}{
	{Text, "Text"},
	{NoCerts, "NoCerts"},
	{NoContentVerify, "NoContentVerify"},
	{NoAttrVerify, "NoAttrVerify"},
	{NoIntern, "NoIntern"},
	{NoVerify, "NoVerify"},
	{Detached, "Detached"},
	{Binary, "Binary"},
	{NoAttr, "NoAttr"},
	{NoSmimeCap, "NoSmimeCap"},
	{NoOldMimeType, "NoOldMimeType"},
	{CRLFEOL, "CRLFEOL"},
	{Stream, "Stream"},
	{NoCRL, "NoCRL"},
	{Partial, "Partial"},
	{ReuseDigest, "ReuseDigest"},
	{UseKeyID, "UseKeyID"},
	{DebugDecrypt, "DebugDecrypt"},
	{KeyParam, "KeyParam"},
	{ASCIICRLF, "ASCIICRLF"},
}

// String lists the set bits, e.g. "Detached|Binary".
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	rest := f
	for _, n := range flagNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
			rest &^= n.f
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

// ParseFlags combines flag names as printed by String, for example
// "Detached" or "NoVerify". Matching ignores case.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, name := range names {
		if strings.EqualFold(name, "NoSigs") {
			f |= NoSigs
			continue
		}
		found := false
		for _, n := range flagNames {
			if strings.EqualFold(name, n.name) {
				f |= n.f
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("cms: unknown flag %q", name)
		}
	}
	return f, nil
}

func (f Flags) check() error {
	if f&(Stream|Partial) != 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedFlags, f)
	}
	return nil
}
