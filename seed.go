package aggsig

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/zeebo/blake3"
)

// deriveSeedContext domain-separates session seed derivation from every
// other blake3 key derivation.
const deriveSeedContext = "threshold.network/aggsig 2024-06-18T00:00:00Z session seed"

// DeriveSeed expands 32 bytes of fresh caller entropy into a session seed
// bound to the roster. Two ceremonies over different rosters can never
// share a seed, even when the caller's entropy source misbehaves and
// repeats itself. The entropy must still be fresh per ceremony: for equal
// rosters the derivation is deterministic, and a repeated session seed
// repeats nonces, which leaks secret keys.
func DeriveSeed(entropy *[SeedSize]byte, roster []*btcec.PublicKey) ([SeedSize]byte, error) {
	var seed [SeedSize]byte

	if entropy == nil {
		return seed, ErrSeedRequired
	}
	if len(roster) == 0 {
		return seed, ErrRosterRequired
	}

	key := make([]byte, 32)
	blake3.DeriveKey(deriveSeedContext, entropy[:], key)

	hasher, err := blake3.NewKeyed(key)
	if err != nil {
		return seed, err
	}
	zeroBytes(key)

	for _, pubKey := range roster {
		if pubKey == nil {
			return seed, ErrNilRosterKey
		}
		_, _ = hasher.Write(pubKey.SerializeCompressed())
	}

	copy(seed[:], hasher.Sum(nil))
	return seed, nil
}
