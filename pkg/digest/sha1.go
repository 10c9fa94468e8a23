package digest

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

// BlockSize is the SHA-1 block size in bytes.
const BlockSize = 64

const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
	init4 = 0xC3D2E1F0
)

const (
	k0 = 0x5A827999
	k1 = 0x6ED9EBA1
	k2 = 0x8F1BBCDC
	k3 = 0xCA62C1D6
)

// sha1 is a streaming SHA-1 state.
type sha1 struct {
	h   [5]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

// NewSHA1 returns a hash.Hash computing the SHA-1 checksum.
func NewSHA1() hash.Hash {
	d := new(sha1)
	d.Reset()
	return d
}

func (d *sha1) Reset() {
	d.h = [5]uint32{init0, init1, init2, init3, init4}
	d.nx = 0
	d.len = 0
}

func (d *sha1) Size() int { return Size }

func (d *sha1) BlockSize() int { return BlockSize }

func (d *sha1) Write(p []byte) (int, error) {
	n := len(p)
	d.len += uint64(n)
	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		if d.nx == BlockSize {
			d.block(d.x[:])
			d.nx = 0
		}
		p = p[c:]
	}
	for len(p) >= BlockSize {
		d.block(p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return n, nil
}

// Sum appends the current digest to b without changing the running state.
func (d *sha1) Sum(b []byte) []byte {
	d0 := *d
	sum := d0.checkSum()
	return append(b, sum[:]...)
}

// checkSum pads the message with a single 1 bit, zero bits up to 448 mod 512,
// and the 64-bit big-endian bit length, then serializes the five state words.
func (d *sha1) checkSum() [Size]byte {
	bitLen := d.len << 3

	var tmp [BlockSize + 8]byte
	tmp[0] = 0x80
	var pad uint64
	if d.len%BlockSize < 56 {
		pad = 56 - d.len%BlockSize
	} else {
		pad = BlockSize + 56 - d.len%BlockSize
	}
	binary.BigEndian.PutUint64(tmp[pad:], bitLen)
	d.Write(tmp[:pad+8])

	if d.nx != 0 {
		panic("digest: sha1 padding did not end on a block boundary")
	}

	var out [Size]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

// block processes one 512-bit chunk.
func (d *sha1) block(p []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, dd, e := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4]
	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & c) | (^b & dd)
			k = k0
		case i < 40:
			f = b ^ c ^ dd
			k = k1
		case i < 60:
			f = (b & c) | (b & dd) | (c & dd)
			k = k2
		default:
			f = b ^ c ^ dd
			k = k3
		}
		t := bits.RotateLeft32(a, 5) + f + e + k + w[i]
		e = dd
		dd = c
		c = bits.RotateLeft32(b, 30)
		b = a
		a = t
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += dd
	d.h[4] += e
}

// SHA1 returns the SHA-1 checksum of data.
func SHA1(data []byte) [Size]byte {
	var d sha1
	d.Reset()
	d.Write(data)
	return d.checkSum()
}
