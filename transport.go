package aggsig

import (
	"errors"

	"threshold.network/aggsig/ephemeral"
)

// ErrSealedPartialMalformed is returned when an opened transport envelope
// does not contain exactly one partial signature.
var ErrSealedPartialMalformed = errors.New("sealed partial signature is malformed")

// SealPartial encrypts a partial signature under the symmetric key the
// signer shares with the collecting party, so the partial can cross
// untrusted transport on its way to Combine. The key comes from an
// ephemeral Diffie-Hellman exchange between the two parties.
func SealPartial(key *ephemeral.SymmetricKey, partial PartialSignature) ([]byte, error) {
	return key.Seal(partial[:])
}

// OpenPartial authenticates and decrypts a sealed partial signature
// produced by SealPartial on the other side of the exchange.
func OpenPartial(key *ephemeral.SymmetricKey, sealed []byte) (PartialSignature, error) {
	var partial PartialSignature

	plaintext, err := key.Open(sealed)
	if err != nil {
		return partial, err
	}
	if len(plaintext) != PartialSignatureSize {
		return partial, ErrSealedPartialMalformed
	}

	copy(partial[:], plaintext)
	zeroBytes(plaintext)
	return partial, nil
}
