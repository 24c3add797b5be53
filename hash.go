package aggsig

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
)

// computePrehash computes the digest every signer commits to: the ordered
// roster public keys in 33-byte compressed form, followed by the
// compressed aggregate public nonce, followed by the message digest.
//
// The nonce point must already be the quadratic-residue-y representative;
// the prehash binds the exact point that verification will recover from
// the signature's x coordinate.
func computePrehash(
	roster []*btcec.PublicKey,
	nonce *btcec.JacobianPoint,
	msgHash *[MessageHashSize]byte,
) [sha256.Size]byte {
	h := sha256.New()
	for _, pubKey := range roster {
		h.Write(pubKey.SerializeCompressed())
	}
	h.Write(serializeCompressed(nonce))
	h.Write(msgHash[:])

	var out [sha256.Size]byte
	h.Sum(out[:0])
	return out
}

// computeChallenge derives the per-index challenge scalar
// e_i = SHA256(varint7(index) || prehash), where varint7 emits the index
// as successive low-to-high 7-bit limbs, one byte each. Index 0 emits no
// bytes at all; this quirk is load-bearing for wire compatibility and
// must not be "fixed".
//
// Returns ErrChallengeOverflow when the digest is not a canonical scalar,
// in which case the whole ceremony is aborted.
func computeChallenge(
	challenge *btcec.ModNScalar,
	prehash *[sha256.Size]byte,
	index int,
) error {
	h := sha256.New()
	for i := index; i > 0; i >>= 7 {
		h.Write([]byte{byte(i) & 0x7f})
	}
	h.Write(prehash[:])

	var digest [sha256.Size]byte
	h.Sum(digest[:0])

	if overflow := challenge.SetBytes(&digest); overflow != 0 {
		challenge.Zero()
		return ErrChallengeOverflow
	}
	return nil
}
