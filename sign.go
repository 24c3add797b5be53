package aggsig

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// PartialSign produces signer index's partial signature
// s_i = x_i*e_i + k_i over the 32-byte message digest, where x_i is the
// secret key matching roster[index], e_i the per-index challenge, and k_i
// the session's secret nonce for the index.
//
// Signing is admissible only once every index holds a public nonce and
// only while the target index's own nonce is unused; afterwards the index
// is marked signed and can never sign again within this session.
//
// When the aggregate public nonce lands on the non-quadratic-residue
// representative, the stored secret nonce is negated in place before use.
// All signers take the same branch, and Combine negates the public sum to
// match. The mutation is permanent for the index: even if a later step of
// this call fails, a retry would sign with the flipped nonce, which is
// why the signed gate, not the caller, is what prevents re-signing.
func (s *Session) PartialSign(
	msgHash *[MessageHashSize]byte,
	secKey *[SecretKeySize]byte,
	index int,
) (PartialSignature, error) {
	var partial PartialSignature

	if s.destroyed() {
		return partial, ErrSessionDestroyed
	}
	if msgHash == nil || secKey == nil {
		return partial, ErrArgumentRequired
	}
	if index < 0 || index >= len(s.slots) {
		return partial, ErrIndexOutOfRange
	}

	for i := range s.slots {
		if s.slots[i].progress == nonceProgressUnknown {
			return partial, ErrNoncesIncomplete
		}
	}

	slot := &s.slots[index]
	switch slot.progress {
	case nonceProgressOurs:
		// proceed
	case nonceProgressSigned:
		return partial, ErrNonceAlreadyUsed
	default:
		return partial, ErrNonceNotOurs
	}

	// Sign against the quadratic-residue representative of the
	// aggregate nonce. If the sum has the wrong sign, negate our secret
	// nonce; everyone negates the public sum at combine time.
	aggNonce := s.pubNonceSum
	if !hasQuadY(&s.pubNonceSum) {
		if !slot.flipped {
			slot.secNonce.Negate()
			slot.flipped = true
		}
		negatePoint(&aggNonce)
	}

	prehash := computePrehash(s.roster, &aggNonce, msgHash)

	var challenge btcec.ModNScalar
	if err := computeChallenge(&challenge, &prehash, index); err != nil {
		return partial, err
	}

	var sec btcec.ModNScalar
	if overflow := sec.SetBytes(secKey); overflow != 0 {
		sec.Zero()
		return partial, ErrSecretKeyOverflow
	}

	sec.Mul(&challenge)
	sec.Add(&slot.secNonce)
	sec.PutBytes((*[PartialSignatureSize]byte)(&partial))
	sec.Zero()

	slot.progress = nonceProgressSigned

	return partial, nil
}

// Combine sums the partial signatures of all signers, in roster order,
// into the final 64-byte signature: the aggregate scalar s big-endian in
// bytes 0..31 and the x coordinate of the aggregate public nonce in
// bytes 32..63.
//
// The aggregate nonce written out is always the quadratic-residue-y
// representative; each signer already compensated for the sign during
// PartialSign.
func (s *Session) Combine(partials []PartialSignature) ([SignatureSize]byte, error) {
	var sig [SignatureSize]byte

	if s.destroyed() {
		return sig, ErrSessionDestroyed
	}
	if len(partials) != len(s.slots) {
		return sig, ErrPartialCount
	}

	var sum btcec.ModNScalar
	for i := range partials {
		var term btcec.ModNScalar
		if overflow := term.SetBytes((*[PartialSignatureSize]byte)(&partials[i])); overflow != 0 {
			return sig, ErrPartialOverflow
		}
		sum.Add(&term)
	}

	aggNonce := s.pubNonceSum
	if isInfinity(&aggNonce) {
		return sig, ErrAggregateNonceUnavailable
	}
	if !hasQuadY(&aggNonce) {
		negatePoint(&aggNonce)
	}
	aggNonce.ToAffine()

	sum.PutBytesUnchecked(sig[:PartialSignatureSize])
	aggNonce.X.PutBytesUnchecked(sig[PartialSignatureSize:])

	return sig, nil
}
