// Package digest provides the fixed-width content hash used to key objects.
//
// Every algorithm registered here produces exactly Size bytes, so the object
// store contract (bytes in, HexSize lowercase hex characters out) holds no
// matter which one a repository is configured with. SHA-1 is the default and
// is only suitable for a local, non-adversarial trust model.
package digest

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

const (
	// Size is the digest length in bytes (160 bits).
	Size = 20
	// HexSize is the length of a hex-encoded digest.
	HexSize = 2 * Size
)

// Algorithm names accepted by Lookup.
const (
	AlgSHA1    = "sha1"
	AlgBLAKE2b = "blake2b"
	AlgBLAKE3  = "blake3"
)

// Default is the algorithm used when a repository does not configure one.
const Default = AlgSHA1

// Func computes the Size-byte digest of data.
type Func func(data []byte) [Size]byte

var registry = map[string]Func{
	AlgSHA1:    SHA1,
	AlgBLAKE2b: blake2b160,
	AlgBLAKE3:  blake3160,
}

// Lookup returns the digest function registered under name.
func Lookup(name string) (Func, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("digest: unknown algorithm %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return fn, nil
}

// Names lists the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hex applies fn to data and returns the lowercase hex encoding.
func Hex(fn Func, data []byte) string {
	sum := fn(data)
	return hex.EncodeToString(sum[:])
}

// IsHex reports whether s looks like a hex-encoded digest: exactly HexSize
// lowercase hexadecimal characters.
func IsHex(s string) bool {
	if len(s) != HexSize {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func blake2b160(data []byte) [Size]byte {
	h, err := blake2b.New(Size, nil)
	if err != nil {
		// Only reachable with an invalid size or key.
		panic(err)
	}
	h.Write(data)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

func blake3160(data []byte) [Size]byte {
	sum := blake3.Sum256(data)
	var out [Size]byte
	copy(out[:], sum[:Size])
	return out
}
