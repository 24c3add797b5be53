package aggsig

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// ecmultMultiMaxN bounds the number of terms handed to a single
// multi-scalar multiplication call, which in turn bounds the fixed
// scratch arrays the verifier keeps on the stack.
const ecmultMultiMaxN = 32

// Verify checks a combined 64-byte signature over the message digest
// against the full roster. It returns nil for a valid signature and a
// descriptive error otherwise; every error other than argument violations
// wraps ErrSignatureInvalid.
//
// The aggregate nonce R is recovered from the transmitted x coordinate as
// the unique curve point with quadratic-residue y, then the verifier
// checks s*G - Σ e_i*P_i = R with a chunked multi-scalar multiplication.
// No sign flips happen here: signing already fixed the aggregate to the
// quadratic-residue representative, so the identities align by
// construction.
func Verify(
	sig *[SignatureSize]byte,
	msgHash *[MessageHashSize]byte,
	roster []*btcec.PublicKey,
) error {
	if sig == nil || msgHash == nil {
		return ErrArgumentRequired
	}
	if len(roster) == 0 {
		return ErrRosterRequired
	}
	for _, pubKey := range roster {
		if pubKey == nil {
			return ErrNilRosterKey
		}
	}

	var sc [ecmultMultiMaxN]btcec.ModNScalar
	var pt [ecmultMultiMaxN]btcec.JacobianPoint

	// Term 0 of the first chunk is s*G.
	if overflow := sc[0].SetByteSlice(sig[:PartialSignatureSize]); overflow {
		return fmt.Errorf("s overflows the group order: %w", ErrSignatureInvalid)
	}
	var one btcec.ModNScalar
	one.SetInt(1)
	btcec.ScalarBaseMultNonConst(&one, &pt[0])

	var rx btcec.FieldVal
	if overflow := rx.SetByteSlice(sig[PartialSignatureSize:]); overflow {
		return fmt.Errorf("r.x is not a canonical field element: %w", ErrSignatureInvalid)
	}
	var r btcec.JacobianPoint
	if !setXQuad(&rx, &r) {
		return fmt.Errorf("r.x is not on the curve: %w", ErrSignatureInvalid)
	}

	prehash := computePrehash(roster, &r, msgHash)

	// Accumulate s*G - Σ e_i*P_i in chunks of at most ecmultMultiMaxN
	// terms; the first chunk carries the extra s*G term.
	var pkSum btcec.JacobianPoint
	i := 0
	offset := 1
	for i < len(roster) {
		n := len(roster) - i
		if n > ecmultMultiMaxN-offset {
			n = ecmultMultiMaxN - offset
		}

		for j := 0; j < n; j++ {
			if err := computeChallenge(&sc[j+offset], &prehash, i+j); err != nil {
				return fmt.Errorf("challenge for index %d: %w", i+j, ErrSignatureInvalid)
			}
			sc[j+offset].Negate()
			roster[i+j].AsJacobian(&pt[j+offset])
		}

		var multi btcec.JacobianPoint
		ecmultMulti(&multi, sc[:n+offset], pt[:n+offset])
		btcec.AddNonConst(&pkSum, &multi, &pkSum)

		i += n
		offset = 0
	}

	negatePoint(&r)
	btcec.AddNonConst(&pkSum, &r, &pkSum)

	if !isInfinity(&pkSum) {
		return ErrSignatureInvalid
	}
	return nil
}

// ecmultMulti sets result to Σ scalars[i]*points[i]. The scalar
// multiplications go through the group library, which applies its
// endomorphism-based decomposition internally, so the chunker above books
// exactly one term per point.
func ecmultMulti(
	result *btcec.JacobianPoint,
	scalars []btcec.ModNScalar,
	points []btcec.JacobianPoint,
) {
	result.X.SetInt(0)
	result.Y.SetInt(0)
	result.Z.SetInt(0)

	var term btcec.JacobianPoint
	for i := range scalars {
		btcec.ScalarMultNonConst(&scalars[i], &points[i], &term)
		btcec.AddNonConst(result, &term, result)
	}
}
