// Package rfc6979 implements the stateful HMAC-SHA256 pseudo-random
// generator from [RFC-6979] section 3.2. Unlike the usual single-shot
// nonce derivation, the generator keeps its K/V state between calls so a
// single seed can deterministically produce an arbitrarily long stream of
// candidate scalars, one 32-byte block at a time.
//
// [RFC-6979]: https://datatracker.ietf.org/doc/html/rfc6979
package rfc6979

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Generator is a deterministic byte stream keyed by a caller-provided
// seed. It is not safe for concurrent use.
type Generator struct {
	k [sha256.Size]byte
	v [sha256.Size]byte

	// retry tracks whether at least one output block has been produced.
	// Per [RFC-6979], every block after the first is preceded by a K/V
	// re-keying step.
	retry bool
}

// New instantiates a Generator keyed with the provided seed.
//
// From [RFC-6979] section 3.2, steps b-g:
//
//	V = 0x01 0x01 ... 0x01
//	K = 0x00 0x00 ... 0x00
//	K = HMAC_K(V || 0x00 || seed)
//	V = HMAC_K(V)
//	K = HMAC_K(V || 0x01 || seed)
//	V = HMAC_K(V)
func New(seed []byte) *Generator {
	g := &Generator{}

	for i := range g.v {
		g.v[i] = 0x01
	}
	// g.k is already all zero.

	g.k = g.mac(g.v[:], []byte{0x00}, seed)
	g.v = g.mac(g.v[:])
	g.k = g.mac(g.v[:], []byte{0x01}, seed)
	g.v = g.mac(g.v[:])

	return g
}

// Generate fills out with the next bytes of the stream.
func (g *Generator) Generate(out []byte) {
	if g.retry {
		g.k = g.mac(g.v[:], []byte{0x00})
		g.v = g.mac(g.v[:])
	}

	for len(out) > 0 {
		g.v = g.mac(g.v[:])
		n := copy(out, g.v[:])
		out = out[n:]
	}

	g.retry = true
}

// Wipe clears the generator state. The generator must not be used
// afterwards.
func (g *Generator) Wipe() {
	for i := range g.k {
		g.k[i] = 0
		g.v[i] = 0
	}
	g.retry = false
}

func (g *Generator) mac(data ...[]byte) [sha256.Size]byte {
	h := hmac.New(sha256.New, g.k[:])
	for _, d := range data {
		h.Write(d)
	}

	var out [sha256.Size]byte
	h.Sum(out[:0])
	return out
}
