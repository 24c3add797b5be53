package aggsig

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// hasQuadY reports whether the affine y coordinate of p is a quadratic
// residue in the base field. The point at infinity has no such
// representative and reports false.
//
// For a Jacobian point the affine y is Y/Z³, and since squares contribute
// nothing to residuosity, y is a quadratic residue exactly when Y*Z is.
// This avoids the field inversion an affine conversion would cost.
func hasQuadY(p *btcec.JacobianPoint) bool {
	var yz btcec.FieldVal
	yz.Mul2(&p.Y, &p.Z).Normalize()
	if yz.IsZero() {
		return false
	}

	var sqrt btcec.FieldVal
	return sqrt.SquareRootVal(&yz)
}

// negatePoint replaces p with -p.
func negatePoint(p *btcec.JacobianPoint) {
	p.Y.Normalize().Negate(1).Normalize()
}

// isInfinity reports whether p is the point at infinity.
func isInfinity(p *btcec.JacobianPoint) bool {
	var z btcec.FieldVal
	z.Set(&p.Z).Normalize()
	return z.IsZero()
}

// setXQuad recovers the affine point whose x coordinate is x and whose y
// coordinate is a quadratic residue, returning false when no point on the
// curve has that x. For any x on the curve exactly one of the two
// candidate points qualifies, which is what makes the 32-byte x encoding
// of the aggregate nonce unambiguous.
func setXQuad(x *btcec.FieldVal, result *btcec.JacobianPoint) bool {
	// y² = x³ + 7
	var x3PlusB btcec.FieldVal
	x3PlusB.SquareVal(x).Mul(x).AddInt(7)

	// The principal square root c^((p+1)/4) is itself a quadratic
	// residue for the secp256k1 field prime (p ≡ 7 mod 8), so no sign
	// correction is needed.
	var y btcec.FieldVal
	if !y.SquareRootVal(&x3PlusB) {
		return false
	}

	result.X.Set(x)
	result.Y.Set(y.Normalize())
	result.Z.SetInt(1)
	return true
}

// serializeCompressed returns the 33-byte compressed encoding of a point.
// The point must not be the point at infinity.
func serializeCompressed(p *btcec.JacobianPoint) []byte {
	affine := *p
	affine.ToAffine()
	return btcec.NewPublicKey(&affine.X, &affine.Y).SerializeCompressed()
}
