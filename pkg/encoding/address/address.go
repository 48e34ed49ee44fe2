// Package address implements conversion between Uint160 handles and the
// base58check string form used on the CLI surface.
package address

import (
	"crypto/sha256"
	"errors"

	"github.com/fortuna-dev/ftapt/pkg/util"
	"github.com/mr-tron/base58"
)

// Prefix is the byte used to prepend to addresses when encoding them, it
// distinguishes them from other base58check payloads.
const Prefix = 0x46

// Uint160ToString returns the "FTAPT address" from the given Uint160.
func Uint160ToString(u util.Uint160) string {
	// Dont forget to prepend the address version.
	b := append([]byte{Prefix}, u.BytesBE()...)
	return checkEncode(b)
}

// StringToUint160 attempts to decode the given address string
// into a Uint160.
func StringToUint160(s string) (u util.Uint160, err error) {
	b, err := checkDecode(s)
	if err != nil {
		return u, err
	}
	if b[0] != Prefix {
		return u, errors.New("wrong address prefix")
	}
	return util.Uint160DecodeBytesBE(b[1:21])
}

func checkEncode(b []byte) string {
	b = append(b, checksum(b)...)
	return base58.Encode(b)
}

func checkDecode(s string) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) < 25 {
		return nil, errors.New("invalid base58check length")
	}
	payload := b[:len(b)-4]
	if string(b[len(b)-4:]) != string(checksum(payload)) {
		return nil, errors.New("invalid base58check checksum")
	}
	return payload, nil
}

func checksum(b []byte) []byte {
	h := sha256.Sum256(b)
	h = sha256.Sum256(h[:])
	return h[:4]
}
