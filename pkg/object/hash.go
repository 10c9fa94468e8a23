package object

import (
	"fmt"
	"strings"

	"github.com/odvcencio/simplevcs/pkg/digest"
)

// Hash is a 40-character lowercase hex digest identifying an object.
type Hash string

// Short returns the first 8 characters of h, the form used in one-line output.
func (h Hash) Short() string {
	if len(h) > 8 {
		return string(h[:8])
	}
	return string(h)
}

// ParseHash validates s as a full hex digest.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimSpace(s)
	if !digest.IsHex(s) {
		return "", fmt.Errorf("%w: %q is not a %d-character hex digest", ErrInvalidHash, s, digest.HexSize)
	}
	return Hash(s), nil
}

// HashBytes computes the digest of data with fn.
func HashBytes(fn digest.Func, data []byte) Hash {
	return Hash(digest.Hex(fn, data))
}
