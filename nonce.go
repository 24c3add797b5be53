package aggsig

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// GenerateNonce draws the secret nonce for the given signer index from
// the session's deterministic generator, canonicalises its public point
// to the quadratic-residue-y representative, and folds that point into
// the running aggregate nonce.
//
// The index must not already hold a nonce. On success the index advances
// to the "ours" state and becomes eligible for PartialSign once every
// other index holds a nonce too.
func (s *Session) GenerateNonce(index int) error {
	if s.destroyed() {
		return ErrSessionDestroyed
	}
	if index < 0 || index >= len(s.slots) {
		return ErrIndexOutOfRange
	}

	slot := &s.slots[index]
	if slot.progress != nonceProgressUnknown {
		return ErrNonceAlreadyGenerated
	}

	var buf [SeedSize]byte
	var k btcec.ModNScalar
	for {
		s.rng.Generate(buf[:])
		overflow := k.SetBytes(&buf) != 0
		if !overflow && !k.IsZero() {
			break
		}
		// Reaching this redraw requires an HMAC-SHA256 output at or
		// above the group order, or exactly zero.
	}
	zeroBytes(buf[:])

	var pubNonce btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&k, &pubNonce)

	// Negate the nonce if needed so that the public point's y is a
	// quadratic residue. Every summand of pubNonceSum is canonical; only
	// the sum itself may still land on the wrong representative.
	if !hasQuadY(&pubNonce) {
		k.Negate()
		negatePoint(&pubNonce)
	}

	btcec.AddNonConst(&s.pubNonceSum, &pubNonce, &s.pubNonceSum)

	slot.secNonce.Set(&k)
	k.Zero()
	slot.progress = nonceProgressOurs

	return nil
}
